package create_reservation

import (
	"errors"
	"net/http"

	"github.com/salonix/SLX-BookingService/internal/api/handlers"
	"github.com/salonix/SLX-BookingService/internal/api/middleware"
	createReservation "github.com/salonix/SLX-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgItemNotFound       = "услуга или комбо не найдены"
	msgItemInactive       = "позиция недоступна для записи"
	msgEmployeeNotFound   = "мастер не найден"
	msgCustomerNotFound   = "профиль клиента не найден"
	msgSalonClosed        = "салон закрыт в выбранную дату"
	msgSlotNotAvailable   = "выбранный слот уже занят"
	msgInvalidData        = "некорректные данные записи"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrItemNotFound):
			h.logger.Warn("POST /reservations - Item not found: salon_id=%d, item_id=%d", req.SalonID, req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createReservation.ErrItemInactive):
			h.logger.Warn("POST /reservations - Item inactive: salon_id=%d, item_id=%d", req.SalonID, req.ItemID)
			handlers.RespondBadRequest(w, msgItemInactive)

		case errors.Is(err, createReservation.ErrEmployeeNotFound):
			h.logger.Warn("POST /reservations - Employee not found: salon_id=%d, employee_id=%v",
				req.SalonID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createReservation.ErrCustomerNotFound):
			h.logger.Warn("POST /reservations - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createReservation.ErrSalonClosed):
			h.logger.Warn("POST /reservations - Salon closed: salon_id=%d, date=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			// 409: клиент перезапрашивает доступность и выбирает другой слот
			h.logger.Warn("POST /reservations - Slot not available: salon_id=%d, date=%s, time=%s",
				req.SalonID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrInvalidDate), errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid data: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, salon_id=%d, error=%v",
				customerID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, employee_id=%d",
		result.ID, customerID, result.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
