package get_available_slots

import (
	"context"
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	// GetBookableItem резолвит услугу или комбо в бронируемую позицию
	GetBookableItem(ctx context.Context, salonID, itemID int64, itemType domain.ItemType) (*domain.BookableItem, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, salonID, employeeID int64) (*domain.Employee, error)
	// ListActiveBySalon возвращает мастеров в стабильном порядке - он определяет
	// порядок слотов при равном времени начала
	ListActiveBySalon(ctx context.Context, salonID int64) ([]domain.Employee, error)
}

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error)
}

// CalendarService интерфейс сервиса рабочих календарей
type CalendarService interface {
	GetDomainBySalon(ctx context.Context, salonID int64) (*domain.BusinessCalendar, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
