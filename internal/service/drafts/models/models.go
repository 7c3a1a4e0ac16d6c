package models

import (
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// Request модели

// CreateDraftRequest запрос на сохранение черновика бронирования
// Гость сохраняет выбор до авторизации, поэтому customerId опционален
type CreateDraftRequest struct {
	CustomerID *int64  `json:"customerId,omitempty"`
	SalonID    int64   `json:"salonId"`
	ItemID     int64   `json:"itemId"`
	ItemType   string  `json:"itemType"`
	Date       string  `json:"date"`      // "2026-09-01"
	StartTime  string  `json:"startTime"` // "10:00", пустая строка = слот ещё не выбран
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ResumeDraftRequest запрос на возобновление оформления после авторизации
type ResumeDraftRequest struct {
	CustomerID int64 `json:"customerId"`
}

// Response модели

// DraftResponse ответ с данными черновика
type DraftResponse struct {
	Token      string  `json:"token"`
	CustomerID *int64  `json:"customerId,omitempty"`
	SalonID    int64   `json:"salonId"`
	ItemID     int64   `json:"itemId"`
	ItemType   string  `json:"itemType"`
	Date       string  `json:"date,omitempty"`
	StartTime  string  `json:"startTime,omitempty"`
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	// NextStep шаг мастера, с которого продолжится оформление
	NextStep  string    `json:"nextStep"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Методы конвертации

// ToDomainDraft конвертирует request в domain модель
// Дата и время валидируются на уровне сервиса
func (r *CreateDraftRequest) ToDomainDraft() (*domain.DraftBooking, error) {
	draft := &domain.DraftBooking{
		CustomerID: r.CustomerID,
		SalonID:    r.SalonID,
		ItemID:     r.ItemID,
		ItemType:   domain.ItemType(r.ItemType),
		EmployeeID: r.EmployeeID,
		Notes:      r.Notes,
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		draft.Date = date
	}

	if r.StartTime != "" {
		startTime, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, err
		}
		draft.StartTime = startTime
	}

	return draft, nil
}

// FromDomainDraft конвертирует domain модель в DTO
func FromDomainDraft(d *domain.DraftBooking, nextStep domain.WizardState) *DraftResponse {
	if d == nil {
		return nil
	}

	resp := &DraftResponse{
		Token:      d.Token,
		CustomerID: d.CustomerID,
		SalonID:    d.SalonID,
		ItemID:     d.ItemID,
		ItemType:   string(d.ItemType),
		EmployeeID: d.EmployeeID,
		Notes:      d.Notes,
		NextStep:   string(nextStep),
		ExpiresAt:  d.ExpiresAt,
	}

	if !d.Date.IsZero() {
		resp.Date = d.Date.Format(domain.DateFormat)
	}
	if !d.StartTime.IsZero() {
		resp.StartTime = d.StartTime.String()
	}

	return resp
}
