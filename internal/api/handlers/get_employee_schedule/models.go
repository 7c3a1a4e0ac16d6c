package get_employee_schedule

import (
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/internal/service/reservations/models"
)

// ToServiceRequest создает запрос сервиса из параметров запроса
func ToServiceRequest(salonID, employeeID, userID int64, dateStr string) (*models.GetEmployeeScheduleRequest, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &models.GetEmployeeScheduleRequest{
		UserID:     userID,
		SalonID:    salonID,
		EmployeeID: employeeID,
		Date:       date,
	}, nil
}
