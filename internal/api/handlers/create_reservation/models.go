package create_reservation

import (
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	createReservation "github.com/salonix/SLX-BookingService/internal/usecase/create_reservation"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SalonID    int64   `json:"salonId"`
	ItemID     int64   `json:"itemId"`
	ItemType   string  `json:"itemType"` // service | combo
	Date       string  `json:"date"`     // "2026-09-01"
	StartTime  string  `json:"startTime"` // "10:00"
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	DraftToken *string `json:"draftToken,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	SalonID         int64   `json:"salonId"`
	EmployeeID      int64   `json:"employeeId"`
	ItemID          int64   `json:"itemId"`
	ItemType        string  `json:"itemType"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ItemName        string  `json:"itemName"`
	ItemPrice       float64 `json:"itemPrice"`
	EmployeeName    string  `json:"employeeName"`
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerID: customerID,
		SalonID:    r.SalonID,
		ItemID:     r.ItemID,
		ItemType:   domain.ItemType(r.ItemType),
		Date:       date,
		StartTime:  startTime,
		EmployeeID: r.EmployeeID,
		Notes:      r.Notes,
		DraftToken: r.DraftToken,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		SalonID:         resp.SalonID,
		EmployeeID:      resp.EmployeeID,
		ItemID:          resp.ItemID,
		ItemType:        string(resp.ItemType),
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ItemName:        resp.ItemName,
		ItemPrice:       resp.ItemPrice,
		EmployeeName:    resp.EmployeeName,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
