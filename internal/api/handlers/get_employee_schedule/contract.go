package get_employee_schedule

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetEmployeeSchedule(ctx context.Context, req *models.GetEmployeeScheduleRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
