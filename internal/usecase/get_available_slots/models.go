package get_available_slots

import (
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID    int64           // ID салона
	ItemID     int64           // ID услуги или комбо
	ItemType   domain.ItemType // service или combo
	Date       time.Time       // Дата для получения слотов (без времени)
	EmployeeID *int64          // Фильтр по мастеру (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     time.Time // Дата, на которую запрашивались слоты
	SalonID  int64     // ID салона
	ItemID   int64     // ID позиции
	ItemType domain.ItemType
	Slots    []Slot // Список доступных слотов
}

// Slot модель временного слота с мастером
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность позиции в минутах
	EmployeeID      int64            // Мастер, который выполнит позицию
	EmployeeName    string
}
