package domain

// Дефолтные настройки рабочего календаря
const (
	DefaultOpenHour               = 9
	DefaultCloseHour              = 18
	DefaultSlotGranularityMinutes = 30
)

// Границы бизнес-валидации
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240

	MinItemDurationMinutes = 5
	MaxItemDurationMinutes = 480 // 8 часов

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Настройки черновиков бронирования
const (
	// DefaultDraftTTLMinutes время жизни черновика до истечения
	DefaultDraftTTLMinutes = 30
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы записей, не занимающих время мастера в списках
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByCustomer,
	StatusCancelledBySalon,
	StatusNoShow,
}

// CancelledStatuses статусы отменённых записей
// Только они не блокируют доступность слотов
var CancelledStatuses = []ReservationStatus{
	StatusCancelledByCustomer,
	StatusCancelledBySalon,
}

// WorkflowStatuses статусы, которые салон выставляет по ходу визита
// Отмена идёт через отдельный процесс с причиной и временем отмены
var WorkflowStatuses = []ReservationStatus{
	StatusInProgress,
	StatusCompleted,
	StatusNoShow,
}
