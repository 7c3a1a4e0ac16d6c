package list_services

import (
	"github.com/salonix/SLX-BookingService/internal/domain"
)

// ServiceResponse модель услуги каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	SalonID         int64   `json:"salonId"`
	CategoryID      *int64  `json:"categoryId,omitempty"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// FromDomainServices конвертирует список domain моделей в DTO
func FromDomainServices(services []*domain.SalonService) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, ServiceResponse{
			ID:              svc.ID,
			SalonID:         svc.SalonID,
			CategoryID:      svc.CategoryID,
			Name:            svc.Name,
			Description:     svc.Description,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}
	return result
}
