package catalog

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, salonID, serviceID int64) (*domain.SalonService, error)
	ListActiveServices(ctx context.Context, salonID int64) ([]*domain.SalonService, error)
	GetComboByID(ctx context.Context, salonID, comboID int64) (*domain.Combo, error)
	GetServiceDurations(ctx context.Context, serviceIDs []int64) (map[int64]int, error)
	ListCategories(ctx context.Context, salonID int64) ([]*domain.Category, error)
	GetActiveDiscountForItem(ctx context.Context, salonID, itemID int64, itemType domain.ItemType) (*domain.Discount, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
