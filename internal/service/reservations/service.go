package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonix/SLX-BookingService/internal/domain"
	reservationRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/reservation"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
	"github.com/salonix/SLX-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	reservationRepo ReservationRepository
	staffRepo       StaffRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		staffRepo:       staffRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент видит только свою запись,
// сотрудники салона видят записи своего салона
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetCustomerReservations получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerReservations(ctx context.Context, req *models.GetCustomerReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCustomerReservations: fetching reservations for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerReservations: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerReservations: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerReservations: successfully fetched %d reservations for customer=%d", len(reservations), req.CustomerID)
	return models.FromDomainReservationList(reservations), nil
}

// GetEmployeeSchedule получает расписание мастера на дату
// Возвращает все блокирующие записи (включая no_show) в порядке начала -
// это рабочий план мастера на день
func (s *Service) GetEmployeeSchedule(ctx context.Context, req *models.GetEmployeeScheduleRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetEmployeeSchedule: fetching schedule for employee=%d, salon=%d, date=%s",
		req.EmployeeID, req.SalonID, req.Date.Format(domain.DateFormat))

	// Сотрудник должен существовать в этом салоне
	if _, err := s.staffRepo.GetByID(ctx, req.SalonID, req.EmployeeID); err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("GetEmployeeSchedule: employee=%d not found in salon=%d", req.EmployeeID, req.SalonID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetEmployeeSchedule: staff repository error: %v", err)
		return nil, fmt.Errorf("%w: GetEmployeeSchedule - staff repository error: %v", ErrInternal, err)
	}

	filter := domain.SalonReservationsFilter{
		SalonID:         req.SalonID,
		EmployeeID:      &req.EmployeeID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeBlocking: true,
	}

	reservations, err := s.reservationRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetEmployeeSchedule: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEmployeeSchedule: successfully fetched %d reservations for employee=%d", len(reservations), req.EmployeeID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись (cancelled_by_customer)
// Сотрудник салона может отменить любую запись салона (cancelled_by_salon)
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.ReservationStatus

	if reservation.CustomerID == req.UserID {
		cancelStatus = domain.StatusCancelledByCustomer
	} else {
		if err := s.checkSalonAccess(ctx, reservation.SalonID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledBySalon
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d with status=%s", reservationID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только сотрудникам салона
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkSalonAccess(ctx, reservation.SalonID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Через этот endpoint меняются только рабочие статусы визита
	// Отмена идёт через Cancel - с причиной и временем отмены
	if !isWorkflowStatus(newStatus) {
		s.logger.Warn("UpdateStatus: status=%s is not a workflow status for reservation id=%d", newStatus, reservationID)
		return fmt.Errorf("%w: status %s is not allowed here", ErrInvalidInput, newStatus)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Доступ есть у владельца записи и у сотрудников салона
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.CustomerID == userID {
		return nil
	}

	if err := s.checkSalonAccess(ctx, reservation.SalonID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkSalonAccess проверяет, что пользователь является сотрудником салона
func (s *Service) checkSalonAccess(ctx context.Context, salonID int64, userID int64) error {
	employee, err := s.staffRepo.GetByID(ctx, salonID, userID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("checkSalonAccess: user=%d is not an employee of salon=%d", userID, salonID)
			return ErrAccessDenied
		}
		s.logger.Error("checkSalonAccess: failed to check employee for salon=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkSalonAccess - failed to check employee: %v", ErrInternal, err)
	}

	if !employee.IsActive {
		s.logger.Warn("checkSalonAccess: employee=%d of salon=%d is inactive", userID, salonID)
		return ErrAccessDenied
	}

	s.logger.Info("checkSalonAccess: user=%d is an employee of salon=%d", userID, salonID)
	return nil
}

// isWorkflowStatus проверяет, что статус входит в рабочий процесс визита
func isWorkflowStatus(status domain.ReservationStatus) bool {
	for _, s := range domain.WorkflowStatuses {
		if status == s {
			return true
		}
	}
	return false
}
