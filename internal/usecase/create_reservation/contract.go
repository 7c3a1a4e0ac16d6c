package create_reservation

import (
	"context"
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/internal/integrations/userservice"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	GetBookableItem(ctx context.Context, salonID, itemID int64, itemType domain.ItemType) (*domain.BookableItem, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, salonID, employeeID int64) (*domain.Employee, error)
	ListActiveBySalon(ctx context.Context, salonID int64) ([]domain.Employee, error)
}

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error)
}

// CalendarService интерфейс сервиса рабочих календарей
type CalendarService interface {
	GetDomainBySalon(ctx context.Context, salonID int64) (*domain.BusinessCalendar, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetCustomerProfileWithGracefulDegradation(ctx context.Context, customerID int64) (*userservice.CustomerProfile, error)
}

// DraftRepository интерфейс репозитория черновиков
// После успешного оформления черновик удаляется
type DraftRepository interface {
	Delete(ctx context.Context, token string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
