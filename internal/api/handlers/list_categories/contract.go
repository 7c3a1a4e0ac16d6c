package list_categories

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

type CatalogService interface {
	ListCategories(ctx context.Context, salonID int64) ([]*domain.Category, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
