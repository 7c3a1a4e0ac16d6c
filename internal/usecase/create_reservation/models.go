package create_reservation

import (
	"time"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID int64            // ID клиента
	SalonID    int64            // ID салона
	ItemID     int64            // ID услуги или комбо
	ItemType   domain.ItemType  // service или combo
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	EmployeeID *int64           // Конкретный мастер (опционально)
	Notes      *string          // Пожелания клиента (опционально)
	DraftToken *string          // Токен черновика для удаления после оформления (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	CustomerID      int64            // ID клиента
	SalonID         int64            // ID салона
	EmployeeID      int64            // Назначенный мастер
	ItemID          int64            // ID позиции
	ItemType        domain.ItemType  // Тип позиции
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	// Денормализованные данные
	ItemName      string  // Название позиции
	ItemPrice     float64 // Цена с учётом скидки
	EmployeeName  string  // Имя мастера
	CustomerName  *string // Имя клиента из профиля
	CustomerPhone *string // Телефон клиента из профиля
	Notes         *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
