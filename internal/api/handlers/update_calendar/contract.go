package update_calendar

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/service/calendar/models"
)

type CalendarService interface {
	Update(ctx context.Context, salonID int64, req *models.UpdateCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
