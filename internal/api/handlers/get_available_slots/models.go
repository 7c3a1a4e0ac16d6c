package get_available_slots

import (
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	getAvailableSlots "github.com/salonix/SLX-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string          `json:"date"`
	SalonID  int64           `json:"salonId"`
	ItemID   int64           `json:"itemId"`
	ItemType string          `json:"itemType"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	EmployeeID      int64  `json:"employeeId"`
	EmployeeName    string `json:"employeeName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			EmployeeID:      slot.EmployeeID,
			EmployeeName:    slot.EmployeeName,
		}
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		SalonID:  resp.SalonID,
		ItemID:   resp.ItemID,
		ItemType: string(resp.ItemType),
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(salonID, itemID int64, itemType, dateStr string, employeeID *int64) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID:    salonID,
		ItemID:     itemID,
		ItemType:   domain.ItemType(itemType),
		Date:       date,
		EmployeeID: employeeID,
	}, nil
}
