package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonix/SLX-BookingService/internal/domain"
	reservationRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/reservation"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
	"github.com/salonix/SLX-BookingService/internal/integrations/userservice"
	catalogService "github.com/salonix/SLX-BookingService/internal/service/catalog"
	"github.com/salonix/SLX-BookingService/pkg/ptr"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// Фейки

type fakeCatalog struct {
	items map[int64]*domain.BookableItem
}

func (f *fakeCatalog) GetBookableItem(_ context.Context, _ int64, itemID int64, _ domain.ItemType) (*domain.BookableItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, catalogService.ErrItemNotFound
	}
	result := *item
	return &result, nil
}

type fakeStaff struct {
	employees []domain.Employee
}

func (f *fakeStaff) GetByID(_ context.Context, salonID, employeeID int64) (*domain.Employee, error) {
	for _, e := range f.employees {
		if e.ID == employeeID && e.SalonID == salonID {
			result := e
			return &result, nil
		}
	}
	return nil, staffRepo.ErrEmployeeNotFound
}

func (f *fakeStaff) ListActiveBySalon(_ context.Context, salonID int64) ([]domain.Employee, error) {
	active := make([]domain.Employee, 0)
	for _, e := range f.employees {
		if e.SalonID == salonID && e.IsActive {
			active = append(active, e)
		}
	}
	return active, nil
}

type fakeReservations struct {
	reservations []*domain.Reservation
	nextID       int64
	createErr    error
}

func (f *fakeReservations) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	reservation.ID = f.nextID
	stored := *reservation
	f.reservations = append(f.reservations, &stored)
	return reservation, nil
}

func (f *fakeReservations) GetBySalonWithFilter(_ context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.SalonID != filter.SalonID {
			continue
		}
		if filter.StartDate != nil && !r.Date.Equal(*filter.StartDate) {
			continue
		}
		if filter.IncludeBlocking && r.IsCancelled() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

type fakeCalendar struct {
	calendar domain.BusinessCalendar
}

func (f *fakeCalendar) GetDomainBySalon(_ context.Context, _ int64) (*domain.BusinessCalendar, error) {
	calendar := f.calendar
	return &calendar, nil
}

type fakeUserClient struct {
	profile *userservice.CustomerProfile
	err     error
}

func (f *fakeUserClient) GetCustomerProfileWithGracefulDegradation(_ context.Context, _ int64) (*userservice.CustomerProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeDrafts struct {
	deleted []string
}

func (f *fakeDrafts) Delete(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeTxManager struct {
	commitErr error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if m.commitErr != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", m.commitErr)
	}
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

type fixture struct {
	catalog      *fakeCatalog
	staff        *fakeStaff
	reservations *fakeReservations
	calendar     *fakeCalendar
	userClient   *fakeUserClient
	drafts       *fakeDrafts
	txManager    *fakeTxManager
	uc           *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		catalog: &fakeCatalog{
			items: map[int64]*domain.BookableItem{
				7: {
					ID: 7, SalonID: 101, Name: "Стрижка", Type: domain.ItemTypeService,
					DurationMinutes: 60, ComponentServiceIDs: []int64{7}, Price: 1500, IsActive: true,
				},
			},
		},
		staff: &fakeStaff{
			employees: []domain.Employee{
				{ID: 1, SalonID: 101, FullName: "Анна", QualifiedServiceIDs: []int64{7}, IsActive: true},
				{ID: 2, SalonID: 101, FullName: "Борис", QualifiedServiceIDs: []int64{7}, IsActive: true},
			},
		},
		reservations: &fakeReservations{},
		calendar:     &fakeCalendar{calendar: domain.DefaultBusinessCalendar()},
		userClient: &fakeUserClient{
			profile: &userservice.CustomerProfile{ID: 42, FullName: "Мария Иванова", Phone: "+79990001122"},
		},
		drafts:    &fakeDrafts{},
		txManager: &fakeTxManager{},
	}

	f.uc = NewUseCase(f.catalog, f.staff, f.reservations, f.calendar, f.userClient, f.drafts, f.txManager, noopLogger{})
	f.uc.timeProvider = &fixedTime{now: now}
	return f
}

func mustTime(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		CustomerID: 42,
		SalonID:    101,
		ItemID:     7,
		ItemType:   domain.ItemTypeService,
		Date:       time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), // вторник
		StartTime:  mustTime(t, "10:00"),
	}
}

// Тесты

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	// Мастер не выбран - назначается первый свободный из ростера
	assert.Equal(t, int64(1), resp.EmployeeID)
	assert.Equal(t, "Анна", resp.EmployeeName)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Стрижка", resp.ItemName)
	assert.Equal(t, 1500.0, resp.ItemPrice)
	require.NotNil(t, resp.CustomerName)
	assert.Equal(t, "Мария Иванова", *resp.CustomerName)
}

func TestUseCase_Execute_EmployeePreference(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest(t)
	req.EmployeeID = ptr.Ptr(int64(2))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.EmployeeID)
	assert.Equal(t, "Борис", resp.EmployeeName)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	// Оба мастера заняты на 10:00 - слот недоступен целиком
	for _, employeeID := range []int64{1, 2} {
		f.reservations.reservations = append(f.reservations.reservations, &domain.Reservation{
			ID: 100 + employeeID, SalonID: 101, EmployeeID: employeeID, Date: date,
			StartTime: mustTime(t, "10:00"), DurationMinutes: 60,
			Status: domain.StatusConfirmed,
		})
	}
	f.reservations.nextID = 200

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_SecondEmployeeFree(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	// Первый мастер занят - запись уходит второму
	f.reservations.reservations = append(f.reservations.reservations, &domain.Reservation{
		ID: 100, SalonID: 101, EmployeeID: 1, Date: date,
		StartTime: mustTime(t, "10:00"), DurationMinutes: 60,
		Status: domain.StatusConfirmed,
	})
	f.reservations.nextID = 100

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.EmployeeID)
}

func TestUseCase_Execute_CancelledDoesNotBlock(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	for _, employeeID := range []int64{1, 2} {
		f.reservations.reservations = append(f.reservations.reservations, &domain.Reservation{
			ID: 100 + employeeID, SalonID: 101, EmployeeID: employeeID, Date: date,
			StartTime: mustTime(t, "10:00"), DurationMinutes: 60,
			Status: domain.StatusCancelledByCustomer,
		})
	}
	f.reservations.nextID = 200

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.EmployeeID)
}

func TestUseCase_Execute_SalonClosed(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest(t)
	req.Date = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestUseCase_Execute_GracefulDegradation(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.userClient.profile = nil
	f.userClient.err = userservice.ErrServiceDegraded

	// UserService лежит - запись создаётся без данных профиля
	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Nil(t, resp.CustomerName)
	assert.Nil(t, resp.CustomerPhone)
}

func TestUseCase_Execute_ProfileNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.userClient.profile = nil
	f.userClient.err = userservice.ErrProfileNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUseCase_Execute_DraftDiscarded(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest(t)
	req.DraftToken = ptr.Ptr("draft-token-1")

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"draft-token-1"}, f.drafts.deleted)
}

func TestUseCase_Execute_SerializationFailureAtCommit(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.txManager.commitErr = &pq.Error{
		Code:    "40001",
		Message: "could not serialize access due to read/write dependencies among transactions",
	}

	// Конкурент успел первым - Postgres откатывает транзакцию на коммите,
	// клиент получает "слот занят", а не внутреннюю ошибку
	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_SerializationFailureOnInsert(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.reservations.createErr = fmt.Errorf("%w: Create - concurrent booking: pq: deadlock",
		reservationRepo.ErrSerializationConflict)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	tests := []struct {
		name     string
		mutate   func(req *Request)
		expected error
	}{
		{
			name:     "позиция не найдена",
			mutate:   func(req *Request) { req.ItemID = 999 },
			expected: ErrItemNotFound,
		},
		{
			name:     "мастер не найден",
			mutate:   func(req *Request) { req.EmployeeID = ptr.Ptr(int64(99)) },
			expected: ErrEmployeeNotFound,
		},
		{
			name:     "дата в прошлом",
			mutate:   func(req *Request) { req.Date = now.AddDate(0, 0, -1) },
			expected: ErrInvalidDate,
		},
		{
			name:     "нет времени начала",
			mutate:   func(req *Request) { req.StartTime = "" },
			expected: ErrInvalidInput,
		},
		{
			name:     "нет клиента",
			mutate:   func(req *Request) { req.CustomerID = 0 },
			expected: ErrInvalidInput,
		},
		{
			name:     "время мимо сетки слотов",
			mutate:   func(req *Request) { req.StartTime = "10:07" },
			expected: ErrSlotNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
