package get_available_slots

import "errors"

var (
	// ErrItemNotFound возвращается, когда услуга или комбо не найдены
	ErrItemNotFound = errors.New("bookable item not found")

	// ErrItemInactive возвращается, когда позиция снята с продажи
	ErrItemInactive = errors.New("bookable item is inactive")

	// ErrEmployeeNotFound возвращается, когда запрошенный мастер не найден в салоне
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
