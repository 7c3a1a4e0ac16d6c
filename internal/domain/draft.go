package domain

import (
	"time"

	"github.com/salonix/SLX-BookingService/pkg/types"
)

// DraftBooking черновик бронирования
// Сохраняет выбор гостя (услуга, дата, слот), чтобы возобновить оформление
// после авторизации. Идентифицируется непрозрачным токеном, живёт до ExpiresAt
type DraftBooking struct {
	Token      string // uuid, выдаётся при создании
	CustomerID *int64 // nil, пока гость не авторизовался
	SalonID    int64
	ItemID     int64
	ItemType   ItemType
	Date       time.Time
	StartTime  types.TimeString
	EmployeeID *int64 // nil = без предпочтения мастера
	Notes      *string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// IsExpired проверяет, истёк ли черновик
func (d *DraftBooking) IsExpired(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}

// SlotChosen возвращает true, если в черновике уже выбран конкретный слот
func (d *DraftBooking) SlotChosen() bool {
	return !d.Date.IsZero() && !d.StartTime.IsZero()
}
