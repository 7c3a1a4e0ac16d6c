package list_categories

import (
	"github.com/salonix/SLX-BookingService/internal/domain"
)

// CategoryResponse модель категории каталога
type CategoryResponse struct {
	ID       int64  `json:"id"`
	SalonID  int64  `json:"salonId"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// FromDomainCategories конвертирует список domain моделей в DTO
func FromDomainCategories(categories []*domain.Category) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, CategoryResponse{
			ID:       category.ID,
			SalonID:  category.SalonID,
			Name:     category.Name,
			Position: category.Position,
		})
	}
	return result
}
