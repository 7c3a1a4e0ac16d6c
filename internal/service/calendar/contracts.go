package calendar

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

// CalendarRepository интерфейс репозитория рабочих календарей
type CalendarRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.BusinessCalendar, error)
	Upsert(ctx context.Context, salonID int64, calendar *domain.BusinessCalendar) error
}

// StaffRepository интерфейс репозитория сотрудников
// Используется для проверки прав доступа со стороны салона
type StaffRepository interface {
	GetByID(ctx context.Context, salonID, employeeID int64) (*domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
