package drafts

import (
	"context"
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

// DraftRepository интерфейс репозитория черновиков
type DraftRepository interface {
	Create(ctx context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error)
	GetByToken(ctx context.Context, token string) (*domain.DraftBooking, error)
	AttachCustomer(ctx context.Context, token string, customerID int64) error
	Delete(ctx context.Context, token string) error
}

// TimeProvider интерфейс для получения текущего времени
// Позволяет подменять время в тестах
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
