package domain

import (
	"time"

	"github.com/salonix/SLX-BookingService/pkg/types"
)

// ReservationStatus статус записи
type ReservationStatus string

const (
	StatusPending             ReservationStatus = "pending"
	StatusConfirmed           ReservationStatus = "confirmed"
	StatusInProgress          ReservationStatus = "in_progress"
	StatusCompleted           ReservationStatus = "completed"
	StatusCancelledByCustomer ReservationStatus = "cancelled_by_customer"
	StatusCancelledBySalon    ReservationStatus = "cancelled_by_salon"
	StatusNoShow              ReservationStatus = "no_show"
)

// Reservation запись клиента к мастеру на услугу или комбо
type Reservation struct {
	ID              int64
	CustomerID      int64
	SalonID         int64
	EmployeeID      int64
	ItemID          int64
	ItemType        ItemType
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Денормализованные данные для истории
	ItemName      string
	ItemPrice     float64
	EmployeeName  string
	CustomerName  *string
	CustomerPhone *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled возвращает true, если запись отменена
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByCustomer || r.Status == StatusCancelledBySalon
}

// BlocksAvailability возвращает true, если запись занимает время мастера
// Отменённые записи время не занимают; no_show занимает - слот был отдан
func (r *Reservation) BlocksAvailability() bool {
	return !r.IsCancelled()
}

// CanBeCancelled возвращает true, если запись можно отменить
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsActive возвращает true, если запись в активном состоянии
func (r *Reservation) IsActive() bool {
	return !r.IsCancelled() && r.Status != StatusNoShow
}

// EndTime возвращает время окончания записи
// Может выйти за пределы суток только при некорректных данных - тогда ошибка
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}

// SalonReservationsFilter фильтр для выборки записей салона
type SalonReservationsFilter struct {
	SalonID         int64              // Обязательный параметр
	EmployeeID      *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeBlocking bool               // true - все неотменённые (для расчёта доступности)
	IncludeInactive bool               // Включать ли отменённые и no-show
}
