package create_reservation

import "errors"

var (
	// ErrItemNotFound возвращается, когда услуга или комбо не найдены
	ErrItemNotFound = errors.New("create_reservation: bookable item not found")

	// ErrItemInactive возвращается, когда позиция снята с продажи
	ErrItemInactive = errors.New("create_reservation: bookable item is inactive")

	// ErrEmployeeNotFound возвращается, когда запрошенный мастер не найден в салоне
	ErrEmployeeNotFound = errors.New("create_reservation: employee not found")

	// ErrCustomerNotFound возвращается, когда профиль клиента не найден
	ErrCustomerNotFound = errors.New("create_reservation: customer profile not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_reservation: salon is closed on this date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
