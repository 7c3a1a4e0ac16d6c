package domain

// ItemType тип бронируемой позиции
type ItemType string

const (
	ItemTypeService ItemType = "service"
	ItemTypeCombo   ItemType = "combo"
)

// BookableItem бронируемая позиция каталога: отдельная услуга или комбо из услуг
// Для комбо DurationMinutes = сумма длительностей компонентов с учетом количества,
// ComponentServiceIDs - упорядоченный список ID входящих услуг
// Для обычной услуги ComponentServiceIDs содержит единственный элемент - её собственный ID
type BookableItem struct {
	ID                  int64
	SalonID             int64
	Name                string
	Type                ItemType
	DurationMinutes     int
	ComponentServiceIDs []int64
	Price               float64
	IsActive            bool
}

// IsCombo возвращает true, если позиция является комбо
func (i *BookableItem) IsCombo() bool {
	return i.Type == ItemTypeCombo
}

// ComboComponent компонент комбо: услуга и её количество
type ComboComponent struct {
	ServiceID int64
	Quantity  int
	Position  int // порядок выполнения внутри комбо
}

// SalonService услуга каталога салона
type SalonService struct {
	ID              int64
	SalonID         int64
	CategoryID      *int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// Combo комбо-набор услуг каталога
type Combo struct {
	ID         int64
	SalonID    int64
	Name       string
	Components []ComboComponent
	Price      float64
	IsActive   bool
}

// Category категория каталога услуг
type Category struct {
	ID       int64
	SalonID  int64
	Name     string
	Position int // порядок отображения, управляется админом
}

// Discount скидка на услугу или комбо
type Discount struct {
	ID        int64
	SalonID   int64
	ItemID    int64
	ItemType  ItemType
	Percent   float64
	IsActive  bool
}
