package list_employees

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

type StaffService interface {
	ListActiveBySalon(ctx context.Context, salonID int64) ([]domain.Employee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
