package update_calendar

import (
	"github.com/salonix/SLX-BookingService/internal/service/calendar/models"
)

// UpdateCalendarRequest HTTP request model
type UpdateCalendarRequest struct {
	OpenHour               int   `json:"openHour"`
	CloseHour              int   `json:"closeHour"`
	SlotGranularityMinutes int   `json:"slotGranularityMinutes"`
	ClosedWeekdays         []int `json:"closedWeekdays"` // 0 = воскресенье
	AllowOverrunPastClose  bool  `json:"allowOverrunPastClose"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateCalendarRequest) ToServiceRequest(userID int64) *models.UpdateCalendarRequest {
	return &models.UpdateCalendarRequest{
		UserID:                 userID,
		OpenHour:               r.OpenHour,
		CloseHour:              r.CloseHour,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		ClosedWeekdays:         r.ClosedWeekdays,
		AllowOverrunPastClose:  r.AllowOverrunPastClose,
	}
}
