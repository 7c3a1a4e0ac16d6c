package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonix/SLX-BookingService/internal/domain"
	reservationRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/reservation"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
	"github.com/salonix/SLX-BookingService/internal/service/reservations/models"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// Фейки

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation

	cancelledID     int64
	cancelledStatus domain.ReservationStatus
	cancelledReason string

	updatedID     int64
	updatedStatus domain.ReservationStatus
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	return r, nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.CustomerID != customerID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.SalonID != filter.SalonID {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, status domain.ReservationStatus, reason string) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

type fakeStaffRepo struct {
	employees map[int64]*domain.Employee // ключ - ID сотрудника
}

func (f *fakeStaffRepo) GetByID(_ context.Context, salonID, employeeID int64) (*domain.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok || e.SalonID != salonID {
		return nil, staffRepo.ErrEmployeeNotFound
	}
	return e, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Фикстура

const (
	testSalonID    = int64(1)
	testCustomerID = int64(100)
	testEmployeeID = int64(10)
	testStrangerID = int64(999)
)

func newFixture() (*Service, *fakeReservationRepo, *fakeStaffRepo) {
	resRepo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: {
				ID:              1,
				CustomerID:      testCustomerID,
				SalonID:         testSalonID,
				EmployeeID:      testEmployeeID,
				ItemID:          7,
				ItemType:        domain.ItemTypeService,
				Date:            time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
				StartTime:       types.TimeString("10:00"),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
				ItemName:        "Стрижка",
				ItemPrice:       1500,
				EmployeeName:    "Анна",
			},
			2: {
				ID:         2,
				CustomerID: testCustomerID,
				SalonID:    testSalonID,
				EmployeeID: testEmployeeID,
				ItemID:     7,
				ItemType:   domain.ItemTypeService,
				Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				StartTime:  types.TimeString("12:00"),
				Status:     domain.StatusCompleted,
			},
		},
	}

	stfRepo := &fakeStaffRepo{
		employees: map[int64]*domain.Employee{
			testEmployeeID: {ID: testEmployeeID, SalonID: testSalonID, FullName: "Анна", IsActive: true},
			11:             {ID: 11, SalonID: testSalonID, FullName: "Борис", IsActive: false},
		},
	}

	return NewService(resRepo, stfRepo, noopLogger{}), resRepo, stfRepo
}

// Тесты

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newFixture()

	t.Run("владелец видит свою запись", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, testCustomerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Стрижка", resp.ItemName)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "2026-09-08", resp.Date)
	})

	t.Run("сотрудник салона видит запись салона", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, testEmployeeID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("посторонний не видит чужую запись", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, testStrangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("неактивный сотрудник не видит запись", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 11)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 777, testCustomerID)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_GetCustomerReservations(t *testing.T) {
	svc, _, _ := newFixture()

	t.Run("все записи клиента", func(t *testing.T) {
		resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
			CustomerID: testCustomerID,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
	})

	t.Run("фильтр по статусу", func(t *testing.T) {
		status := string(domain.StatusCompleted)
		resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
			CustomerID: testCustomerID,
			Status:     &status,
		})
		require.NoError(t, err)
		require.Len(t, resp.Reservations, 1)
		assert.Equal(t, int64(2), resp.Reservations[0].ID)
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		status := "levitating"
		_, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
			CustomerID: testCustomerID,
			Status:     &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("пустая история", func(t *testing.T) {
		resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
			CustomerID: testStrangerID,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Reservations)
	})
}

func TestService_GetEmployeeSchedule(t *testing.T) {
	svc, _, _ := newFixture()

	t.Run("расписание мастера", func(t *testing.T) {
		resp, err := svc.GetEmployeeSchedule(context.Background(), &models.GetEmployeeScheduleRequest{
			UserID:     testEmployeeID,
			SalonID:    testSalonID,
			EmployeeID: testEmployeeID,
			Date:       time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
	})

	t.Run("мастер не найден", func(t *testing.T) {
		_, err := svc.GetEmployeeSchedule(context.Background(), &models.GetEmployeeScheduleRequest{
			UserID:     testEmployeeID,
			SalonID:    testSalonID,
			EmployeeID: 777,
			Date:       time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("клиент отменяет свою запись", func(t *testing.T) {
		svc, resRepo, _ := newFixture()

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID:             testCustomerID,
			CancellationReason: "передумала",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resRepo.cancelledID)
		assert.Equal(t, domain.StatusCancelledByCustomer, resRepo.cancelledStatus)
		assert.Equal(t, "передумала", resRepo.cancelledReason)
	})

	t.Run("сотрудник салона отменяет запись клиента", func(t *testing.T) {
		svc, resRepo, _ := newFixture()

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID:             testEmployeeID,
			CancellationReason: "мастер заболел",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledBySalon, resRepo.cancelledStatus)
	})

	t.Run("посторонний не может отменить", func(t *testing.T) {
		svc, _, _ := newFixture()

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID: testStrangerID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("завершённую запись отменить нельзя", func(t *testing.T) {
		svc, _, _ := newFixture()

		err := svc.Cancel(context.Background(), 2, &models.CancelReservationRequest{
			UserID: testCustomerID,
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		svc, _, _ := newFixture()

		err := svc.Cancel(context.Background(), 777, &models.CancelReservationRequest{
			UserID: testCustomerID,
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("сотрудник меняет статус", func(t *testing.T) {
		svc, resRepo, _ := newFixture()

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testEmployeeID,
			Status: string(domain.StatusInProgress),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resRepo.updatedID)
		assert.Equal(t, domain.StatusInProgress, resRepo.updatedStatus)
	})

	t.Run("клиент не может менять статус", func(t *testing.T) {
		svc, _, _ := newFixture()

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testCustomerID,
			Status: string(domain.StatusCompleted),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		svc, _, _ := newFixture()

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testEmployeeID,
			Status: "levitating",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	// Отмена идёт только через Cancel - там фиксируются причина и время отмены
	t.Run("отмена через смену статуса запрещена", func(t *testing.T) {
		for _, status := range []domain.ReservationStatus{
			domain.StatusCancelledByCustomer,
			domain.StatusCancelledBySalon,
		} {
			svc, resRepo, _ := newFixture()

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				UserID: testEmployeeID,
				Status: string(status),
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, resRepo.updatedID)
		}
	})

	// Возврат отменённой записи в confirmed снова занял бы слот
	t.Run("повторное подтверждение запрещено", func(t *testing.T) {
		svc, resRepo, _ := newFixture()

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testEmployeeID,
			Status: string(domain.StatusConfirmed),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, resRepo.updatedID)
	})
}
