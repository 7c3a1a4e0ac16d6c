package staff

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, salonID, employeeID int64) (*domain.Employee, error)
	ListActiveBySalon(ctx context.Context, salonID int64) ([]domain.Employee, error)
	SetQualifications(ctx context.Context, employeeID int64, serviceIDs []int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
