package catalog

import "errors"

var (
	// ErrItemNotFound возвращается, когда услуга или комбо не найдены
	ErrItemNotFound = errors.New("bookable item not found")

	// ErrItemInactive возвращается, когда позиция снята с продажи
	ErrItemInactive = errors.New("bookable item is inactive")

	// ErrInvalidItemType возвращается при неизвестном типе позиции
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
