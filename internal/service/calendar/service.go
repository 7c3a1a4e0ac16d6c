package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonix/SLX-BookingService/internal/domain"
	calendarRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/calendar"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
	"github.com/salonix/SLX-BookingService/internal/service/calendar/models"
)

// Service сервис рабочих календарей салонов
type Service struct {
	calendarRepo CalendarRepository
	staffRepo    StaffRepository
	defaults     domain.BusinessCalendar
	logger       Logger
}

// NewService создает новый экземпляр сервиса календарей
// defaults применяются для салонов без собственных настроек
func NewService(
	calendarRepo CalendarRepository,
	staffRepo StaffRepository,
	defaults domain.BusinessCalendar,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		staffRepo:    staffRepo,
		defaults:     defaults,
		logger:       logger,
	}
}

// GetBySalon получает рабочий календарь салона
// Публичный метод - при отсутствии настроек возвращает дефолты
func (s *Service) GetBySalon(ctx context.Context, salonID int64) (*models.CalendarResponse, error) {
	calendar, err := s.getDomainCalendar(ctx, salonID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCalendar(calendar), nil
}

// GetDomainBySalon получает календарь салона как domain модель
// Используется расчётом доступности и созданием записи
func (s *Service) GetDomainBySalon(ctx context.Context, salonID int64) (*domain.BusinessCalendar, error) {
	return s.getDomainCalendar(ctx, salonID)
}

// Update обновляет рабочий календарь салона
// Доступно только сотрудникам салона
func (s *Service) Update(ctx context.Context, salonID int64, req *models.UpdateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Update: updating calendar for salon=%d by user=%d", salonID, req.UserID)

	if err := s.checkSalonAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	calendar := req.ToDomainCalendar()
	if err := calendar.Validate(); err != nil {
		s.logger.Warn("Update: invalid calendar for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.calendarRepo.Upsert(ctx, salonID, calendar); err != nil {
		s.logger.Error("Update: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated calendar for salon=%d", salonID)
	return models.FromDomainCalendar(calendar), nil
}

// Вспомогательные методы

func (s *Service) getDomainCalendar(ctx context.Context, salonID int64) (*domain.BusinessCalendar, error) {
	calendar, err := s.calendarRepo.GetBySalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Info("getDomainCalendar: no calendar for salon=%d, using defaults", salonID)
			defaults := s.defaults
			return &defaults, nil
		}
		s.logger.Error("getDomainCalendar: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: getDomainCalendar - repository error: %v", ErrInternal, err)
	}

	return calendar, nil
}

// checkSalonAccess проверяет, что пользователь является активным сотрудником салона
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

	return nil
}
