package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// Тестовый календарь: 9-18, шаг 30 минут, воскресенье выходной
func testCalendar() domain.BusinessCalendar {
	return domain.BusinessCalendar{
		OpenHour:               9,
		CloseHour:              18,
		SlotGranularityMinutes: 30,
		ClosedWeekdays:         []time.Weekday{time.Sunday},
		AllowOverrunPastClose:  true,
	}
}

func testItem(duration int) *domain.BookableItem {
	return &domain.BookableItem{
		ID:                  1,
		Name:                "Стрижка + укладка",
		Type:                domain.ItemTypeService,
		DurationMinutes:     duration,
		ComponentServiceIDs: []int64{10},
	}
}

func employeeE1() domain.Employee {
	return domain.Employee{ID: 1, FullName: "Анна Иванова", QualifiedServiceIDs: []int64{10, 11}}
}

func employeeE2() domain.Employee {
	return domain.Employee{ID: 2, FullName: "Мария Петрова", QualifiedServiceIDs: []int64{10}}
}

func reservation(employeeID int64, start types.TimeString, duration int, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{
		ID:              100,
		EmployeeID:      employeeID,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

// futureTuesday будущий вторник относительно now
var (
	now           = time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC) // вторник 10:15
	futureTuesday = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)   // следующий вторник
	sunday        = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

// Сценарий A: час длительности, один мастер, без записей - 18 слотов 09:00..17:00
func TestComputeSlots_FullDay(t *testing.T) {
	slots, err := ComputeSlots(testItem(60), futureTuesday, nil,
		[]domain.Employee{employeeE1()}, nil, testCalendar(), now)

	require.NoError(t, err)
	require.Len(t, slots, 18)

	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), slots[17].StartTime)
	for _, s := range slots {
		assert.Equal(t, int64(1), s.EmployeeID)
		assert.Equal(t, "Анна Иванова", s.EmployeeName)
	}
}

// Сценарий B: воскресенье - пустой список без ошибки
func TestComputeSlots_ClosedWeekday(t *testing.T) {
	slots, err := ComputeSlots(testItem(60), sunday, nil,
		[]domain.Employee{employeeE1()}, nil, testCalendar(), now)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

// Сценарий C: запрос на сегодня в 10:15 - остаются только слоты строго позже 10:15
func TestComputeSlots_TodayCutoff(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(testItem(60), today, nil,
		[]domain.Employee{employeeE1()}, nil, testCalendar(), now)

	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("10:30"), slots[0].StartTime)
	for _, s := range slots {
		assert.True(t, s.StartTime.IsAfter(types.TimeString("10:15")),
			"slot %s must start strictly after 10:15", s.StartTime)
	}
	// 10:30 .. 17:00 - 14 слотов
	assert.Len(t, slots, 14)
}

// На будущую дату текущее время не влияет: утренние слоты доступны
func TestComputeSlots_FutureDateIgnoresNow(t *testing.T) {
	lateNow := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(testItem(60), futureTuesday, nil,
		[]domain.Employee{employeeE1()}, nil, testCalendar(), lateNow)

	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
}

// Сценарий D: подтверждённая запись 10:00-11:00 выбивает слоты 09:30, 10:00, 10:30
func TestComputeSlots_ConflictExcludesOverlapping(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "10:00", 60, domain.StatusConfirmed),
	}

	slots, err := ComputeSlots(testItem(60), futureTuesday, nil,
		[]domain.Employee{employeeE1()}, reservations, testCalendar(), now)

	require.NoError(t, err)

	starts := make(map[types.TimeString]bool)
	for _, s := range slots {
		starts[s.StartTime] = true
	}

	// 09:00 заканчивается ровно в 10:00 - граница, не пересечение
	assert.True(t, starts["09:00"])
	// 09:30-10:30, 10:00-11:00, 10:30-11:30 пересекаются с записью
	assert.False(t, starts["09:30"])
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:30"])
	// 11:00 начинается ровно в конце записи - снова граница
	assert.True(t, starts["11:00"])

	assert.Len(t, slots, 15)
}

// Сценарий E: та же запись со статусом "отменена" ничего не блокирует
func TestComputeSlots_CancelledReservationIgnored(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledBySalon,
	} {
		reservations := []domain.Reservation{
			reservation(1, "10:00", 60, status),
		}

		slots, err := ComputeSlots(testItem(60), futureTuesday, nil,
			[]domain.Employee{employeeE1()}, reservations, testCalendar(), now)

		require.NoError(t, err)
		assert.Len(t, slots, 18, "status %s must not block slots", status)
	}
}

// Сценарий F: два мастера без фильтра - 36 слотов, отсортированы по времени,
// на каждом времени присутствуют оба мастера
func TestComputeSlots_TwoEmployees(t *testing.T) {
	slots, err := ComputeSlots(testItem(60), futureTuesday, nil,
		[]domain.Employee{employeeE1(), employeeE2()}, nil, testCalendar(), now)

	require.NoError(t, err)
	require.Len(t, slots, 36)

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].StartTime.IsBefore(slots[i-1].StartTime),
			"slots must be sorted by start time")
	}

	// Стабильная сортировка: на каждом времени мастера идут в порядке ростера
	for i := 0; i < len(slots); i += 2 {
		assert.Equal(t, slots[i].StartTime, slots[i+1].StartTime)
		assert.Equal(t, int64(1), slots[i].EmployeeID)
		assert.Equal(t, int64(2), slots[i+1].EmployeeID)
	}
}

// Фильтр по мастеру ограничивает кандидатов им одним
func TestComputeSlots_EmployeeFilter(t *testing.T) {
	e2 := employeeE2()

	slots, err := ComputeSlots(testItem(60), futureTuesday, &e2,
		[]domain.Employee{employeeE1(), e2}, nil, testCalendar(), now)

	require.NoError(t, err)
	require.Len(t, slots, 18)
	for _, s := range slots {
		assert.Equal(t, int64(2), s.EmployeeID)
	}
}

// Нет квалифицированных мастеров - пустой список
// Комбо требует все компоненты: мастер, умеющий только часть, не подходит
func TestComputeSlots_NoQualifiedEmployees(t *testing.T) {
	combo := &domain.BookableItem{
		ID:                  2,
		Name:                "Маникюр + педикюр",
		Type:                domain.ItemTypeCombo,
		DurationMinutes:     90,
		ComponentServiceIDs: []int64{10, 99},
	}

	// employeeE1 умеет 10 и 11, но не 99
	slots, err := ComputeSlots(combo, futureTuesday, nil,
		[]domain.Employee{employeeE1()}, nil, testCalendar(), now)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

// Фильтр на неквалифицированного мастера - пустой список
func TestComputeSlots_FilterUnqualified(t *testing.T) {
	item := testItem(60)
	item.ComponentServiceIDs = []int64{11}
	e2 := employeeE2() // умеет только 10

	slots, err := ComputeSlots(item, futureTuesday, &e2,
		[]domain.Employee{employeeE1(), e2}, nil, testCalendar(), now)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

// Конфликт учитывается только для того же мастера
func TestComputeSlots_ConflictIsPerEmployee(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "10:00", 60, domain.StatusConfirmed),
	}

	slots, err := ComputeSlots(testItem(60), futureTuesday, nil,
		[]domain.Employee{employeeE1(), employeeE2()}, reservations, testCalendar(), now)

	require.NoError(t, err)

	// У второго мастера все 18 слотов на месте
	countE2 := 0
	for _, s := range slots {
		if s.EmployeeID == 2 {
			countE2++
		}
	}
	assert.Equal(t, 18, countE2)
	assert.Len(t, slots, 15+18)
}

// Последний слот 17:30 при длительности 60 минут заканчивается в 18:30 -
// разрешено при AllowOverrunPastClose, отбрасывается без него
func TestComputeSlots_OverrunPastClose(t *testing.T) {
	item := testItem(45)

	calendar := testCalendar()
	slots, err := ComputeSlots(item, futureTuesday, nil,
		[]domain.Employee{employeeE1()}, nil, calendar, now)
	require.NoError(t, err)
	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("17:30"), slots[17].StartTime) // конец 18:15

	calendar.AllowOverrunPastClose = false
	slots, err = ComputeSlots(item, futureTuesday, nil,
		[]domain.Employee{employeeE1()}, nil, calendar, now)
	require.NoError(t, err)
	require.Len(t, slots, 17)
	assert.Equal(t, types.TimeString("17:00"), slots[16].StartTime) // конец 17:45
}

// Детерминизм: два вызова с одинаковыми входами дают идентичные последовательности
func TestComputeSlots_Deterministic(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "10:00", 60, domain.StatusConfirmed),
		reservation(2, "14:30", 30, domain.StatusPending),
	}
	employees := []domain.Employee{employeeE1(), employeeE2()}

	first, err := ComputeSlots(testItem(60), futureTuesday, nil, employees, reservations, testCalendar(), now)
	require.NoError(t, err)

	second, err := ComputeSlots(testItem(60), futureTuesday, nil, employees, reservations, testCalendar(), now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Инвариант непересечения: ни один выданный слот не пересекается
// с неотменённой записью того же мастера
func TestComputeSlots_NoOverlapInvariant(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "09:30", 90, domain.StatusConfirmed),
		reservation(1, "13:00", 30, domain.StatusNoShow), // no_show блокирует: слот был отдан
		reservation(2, "11:00", 120, domain.StatusInProgress),
	}
	employees := []domain.Employee{employeeE1(), employeeE2()}
	item := testItem(30)

	slots, err := ComputeSlots(item, futureTuesday, nil, employees, reservations, testCalendar(), now)
	require.NoError(t, err)

	for _, s := range slots {
		slotStart, _ := s.StartTime.Minutes()
		slotEnd := slotStart + item.DurationMinutes

		for _, r := range reservations {
			if r.EmployeeID != s.EmployeeID || !r.BlocksAvailability() {
				continue
			}
			resStart, _ := r.StartTime.Minutes()
			resEnd := resStart + r.DurationMinutes

			assert.False(t, slotStart < resEnd && slotEnd > resStart,
				"slot %s (employee %d) overlaps reservation %s-%d",
				s.StartTime, s.EmployeeID, r.StartTime, r.DurationMinutes)
		}
	}
}

// Некорректные входы дают ошибку, а не бессмысленный результат
func TestComputeSlots_InvalidInput(t *testing.T) {
	calendar := testCalendar()
	employees := []domain.Employee{employeeE1()}

	t.Run("nil item", func(t *testing.T) {
		_, err := ComputeSlots(nil, futureTuesday, nil, employees, nil, calendar, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		_, err := ComputeSlots(testItem(0), futureTuesday, nil, employees, nil, calendar, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := ComputeSlots(testItem(60), time.Time{}, nil, employees, nil, calendar, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("broken calendar", func(t *testing.T) {
		bad := calendar
		bad.OpenHour = 20 // позже закрытия
		_, err := ComputeSlots(testItem(60), futureTuesday, nil, employees, nil, bad, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unparsable reservation time", func(t *testing.T) {
		broken := []domain.Reservation{reservation(1, "25:99", 30, domain.StatusConfirmed)}
		_, err := ComputeSlots(testItem(60), futureTuesday, nil, employees, broken, calendar, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
