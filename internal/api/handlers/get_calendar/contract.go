package get_calendar

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/service/calendar/models"
)

type CalendarService interface {
	GetBySalon(ctx context.Context, salonID int64) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
