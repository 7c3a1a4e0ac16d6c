package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных:
	// неположительная длительность, нулевая дата, невалидный календарь или время записи
	ErrInvalidInput = errors.New("availability: invalid input")
)

// ComputeSlots вычисляет доступные слоты на день для позиции каталога
//
// Чистая функция без I/O: все данные (мастера, записи, календарь, текущее время)
// передаются снаружи, повторный вызов с теми же входами даёт тот же результат.
// Гонка между показом слотов и созданием записи разрешается не здесь, а в
// usecase создания записи (сериализуемая транзакция с повторной проверкой).
//
// Правила:
//   - выходной день салона - пустой список без ошибки;
//   - мастер подходит, если умеет все компоненты позиции; при заданном
//     employeeFilter набор кандидатов - только он;
//   - кандидаты на начало: от открытия до закрытия (не включая) с шагом календаря;
//   - на сегодня слоты со стартом не позже текущего времени отбрасываются,
//     на будущие даты это правило не действует;
//   - слот конфликтует с неотменённой записью того же мастера при реальном
//     пересечении полуоткрытых интервалов: start < res.end && end > res.start;
//   - при выключенном AllowOverrunPastClose слот не может заканчиваться позже закрытия;
//   - результат отсортирован по времени начала, при равном времени порядок
//     следования мастеров сохраняется (стабильная сортировка)
func ComputeSlots(
	item *domain.BookableItem,
	date time.Time,
	employeeFilter *domain.Employee,
	employees []domain.Employee,
	reservations []domain.Reservation,
	calendar domain.BusinessCalendar,
	now time.Time,
) ([]domain.TimeSlot, error) {
	if item == nil || item.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: item duration must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := calendar.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid business calendar: %v", ErrInvalidInput, err)
	}

	// Выходной день - слотов нет
	if calendar.IsClosedOn(date.Weekday()) {
		return []domain.TimeSlot{}, nil
	}

	eligible := eligibleEmployees(item, employeeFilter, employees)
	if len(eligible) == 0 {
		return []domain.TimeSlot{}, nil
	}

	// Занятые интервалы по мастерам, в минутах от начала суток
	busy, err := busyIntervalsByEmployee(reservations)
	if err != nil {
		return nil, err
	}

	openMin := calendar.OpenHour * 60
	closeMin := calendar.CloseHour * 60

	isToday := isSameDay(date, now)
	nowMin := now.Hour()*60 + now.Minute()

	slots := make([]domain.TimeSlot, 0)

	for _, employee := range eligible {
		for start := openMin; start < closeMin; start += calendar.SlotGranularityMinutes {
			end := start + item.DurationMinutes

			if !calendar.AllowOverrunPastClose && end > closeMin {
				continue
			}

			// На сегодня показываем только слоты строго позже текущего времени
			if isToday && start <= nowMin {
				continue
			}

			if overlapsAny(start, end, busy[employee.ID]) {
				continue
			}

			startTime, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				return nil, fmt.Errorf("%w: slot start: %v", ErrInvalidInput, err)
			}

			slots = append(slots, domain.TimeSlot{
				StartTime:    startTime,
				EmployeeID:   employee.ID,
				EmployeeName: employee.FullName,
			})
		}
	}

	// Стабильная сортировка по времени начала: при равном времени сохраняется
	// порядок вставки (по мастерам), что делает результат детерминированным
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// eligibleEmployees возвращает мастеров, способных выполнить позицию
// При заданном фильтре кандидатом остаётся только он (и только если квалифицирован)
func eligibleEmployees(item *domain.BookableItem, filter *domain.Employee, employees []domain.Employee) []domain.Employee {
	if filter != nil {
		if filter.IsQualifiedFor(item) {
			return []domain.Employee{*filter}
		}
		return nil
	}

	eligible := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if e.IsQualifiedFor(item) {
			eligible = append(eligible, e)
		}
	}
	return eligible
}

// interval занятый интервал в минутах от начала суток, полуоткрытый [start, end)
type interval struct {
	start int
	end   int
}

// busyIntervalsByEmployee группирует неотменённые записи по мастерам
// Отменённые записи доступность не блокируют
func busyIntervalsByEmployee(reservations []domain.Reservation) (map[int64][]interval, error) {
	busy := make(map[int64][]interval, len(reservations))

	for i := range reservations {
		r := &reservations[i]
		if !r.BlocksAvailability() {
			continue
		}

		start, err := r.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: reservation id=%d start time: %v", ErrInvalidInput, r.ID, err)
		}
		if r.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: reservation id=%d duration must be positive", ErrInvalidInput, r.ID)
		}

		busy[r.EmployeeID] = append(busy[r.EmployeeID], interval{start: start, end: start + r.DurationMinutes})
	}

	return busy, nil
}

// overlapsAny проверяет реальное пересечение слота с занятыми интервалами
// Граничащие интервалы (конец одного равен началу другого) пересечением не считаются
func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if start < b.end && end > b.start {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
