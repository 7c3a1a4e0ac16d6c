package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonix/SLX-BookingService/internal/domain"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
)

// Service сервис сотрудников салона
type Service struct {
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// GetByID получает сотрудника салона по ID
func (s *Service) GetByID(ctx context.Context, salonID, employeeID int64) (*domain.Employee, error) {
	employee, err := s.staffRepo.GetByID(ctx, salonID, employeeID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("GetByID: employee=%d not found in salon=%d", employeeID, salonID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetByID: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return employee, nil
}

// ListActiveBySalon получает активных сотрудников салона
// Порядок стабильный - определяет порядок мастеров при равном времени слота
func (s *Service) ListActiveBySalon(ctx context.Context, salonID int64) ([]domain.Employee, error) {
	employees, err := s.staffRepo.ListActiveBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("ListActiveBySalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListActiveBySalon - repository error: %v", ErrInternal, err)
	}

	return employees, nil
}

// SetQualifications заменяет набор квалификаций сотрудника
// Доступно только сотрудникам салона
func (s *Service) SetQualifications(ctx context.Context, salonID, employeeID, userID int64, serviceIDs []int64) error {
	s.logger.Info("SetQualifications: updating qualifications for employee=%d in salon=%d by user=%d",
		employeeID, salonID, userID)

	// Целевой сотрудник должен существовать в салоне
	if _, err := s.staffRepo.GetByID(ctx, salonID, employeeID); err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("SetQualifications: employee=%d not found in salon=%d", employeeID, salonID)
			return ErrEmployeeNotFound
		}
		s.logger.Error("SetQualifications: repository error for employee=%d: %v", employeeID, err)
		return fmt.Errorf("%w: SetQualifications - repository error: %v", ErrInternal, err)
	}

	// Инициатор должен быть активным сотрудником того же салона
	actor, err := s.staffRepo.GetByID(ctx, salonID, userID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("SetQualifications: user=%d is not an employee of salon=%d", userID, salonID)
			return ErrAccessDenied
		}
		s.logger.Error("SetQualifications: failed to check actor for salon=%d: %v", salonID, err)
		return fmt.Errorf("%w: SetQualifications - failed to check actor: %v", ErrInternal, err)
	}
	if !actor.IsActive {
		s.logger.Warn("SetQualifications: employee=%d of salon=%d is inactive", userID, salonID)
		return ErrAccessDenied
	}

	if err := s.staffRepo.SetQualifications(ctx, employeeID, serviceIDs); err != nil {
		s.logger.Error("SetQualifications: repository error for employee=%d: %v", employeeID, err)
		return fmt.Errorf("%w: SetQualifications - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetQualifications: successfully updated employee=%d, %d services", employeeID, len(serviceIDs))
	return nil
}
