package list_employees

import (
	"github.com/salonix/SLX-BookingService/internal/domain"
)

// EmployeeResponse модель сотрудника салона
type EmployeeResponse struct {
	ID                  int64   `json:"id"`
	SalonID             int64   `json:"salonId"`
	FullName            string  `json:"fullName"`
	QualifiedServiceIDs []int64 `json:"qualifiedServiceIds"`
}

// FromDomainEmployees конвертирует список domain моделей в DTO
func FromDomainEmployees(employees []domain.Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, EmployeeResponse{
			ID:                  e.ID,
			SalonID:             e.SalonID,
			FullName:            e.FullName,
			QualifiedServiceIDs: e.QualifiedServiceIDs,
		})
	}
	return result
}
