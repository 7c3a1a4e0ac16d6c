package models

import (
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

// Request модели

// UpdateCalendarRequest запрос на обновление рабочего календаря салона
type UpdateCalendarRequest struct {
	UserID                 int64 `json:"userId"`
	OpenHour               int   `json:"openHour"`
	CloseHour              int   `json:"closeHour"`
	SlotGranularityMinutes int   `json:"slotGranularityMinutes"`
	ClosedWeekdays         []int `json:"closedWeekdays"` // 0 = воскресенье
	AllowOverrunPastClose  bool  `json:"allowOverrunPastClose"`
}

// ToDomainCalendar конвертирует request в domain модель
func (r *UpdateCalendarRequest) ToDomainCalendar() *domain.BusinessCalendar {
	closedWeekdays := make([]time.Weekday, len(r.ClosedWeekdays))
	for i, wd := range r.ClosedWeekdays {
		closedWeekdays[i] = time.Weekday(wd)
	}

	return &domain.BusinessCalendar{
		OpenHour:               r.OpenHour,
		CloseHour:              r.CloseHour,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		ClosedWeekdays:         closedWeekdays,
		AllowOverrunPastClose:  r.AllowOverrunPastClose,
	}
}

// Response модели

// CalendarResponse ответ с настройками рабочего календаря
type CalendarResponse struct {
	OpenHour               int   `json:"openHour"`
	CloseHour              int   `json:"closeHour"`
	SlotGranularityMinutes int   `json:"slotGranularityMinutes"`
	ClosedWeekdays         []int `json:"closedWeekdays"`
	AllowOverrunPastClose  bool  `json:"allowOverrunPastClose"`
}

// FromDomainCalendar конвертирует domain модель в DTO
func FromDomainCalendar(c *domain.BusinessCalendar) *CalendarResponse {
	if c == nil {
		return nil
	}

	closedWeekdays := make([]int, len(c.ClosedWeekdays))
	for i, wd := range c.ClosedWeekdays {
		closedWeekdays[i] = int(wd)
	}

	return &CalendarResponse{
		OpenHour:               c.OpenHour,
		CloseHour:              c.CloseHour,
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		ClosedWeekdays:         closedWeekdays,
		AllowOverrunPastClose:  c.AllowOverrunPastClose,
	}
}
