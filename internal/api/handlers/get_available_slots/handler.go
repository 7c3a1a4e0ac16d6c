package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonix/SLX-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/salonix/SLX-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgInvalidItemID     = "некорректный ID позиции"
	msgMissingItemID     = "ID позиции обязателен"
	msgMissingItemType   = "тип позиции обязателен"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams     = "некорректные параметры запроса"
	msgItemNotFound      = "услуга или комбо не найдены"
	msgItemInactive      = "позиция недоступна для записи"
	msgEmployeeNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-slots
// Query params: itemId (required), itemType (required), date (required, YYYY-MM-DD), employeeId (опционально)
// Публичный endpoint - слоты смотрят ещё до авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем salonId из URL
	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Извлекаем itemId из query параметров
	itemIDStr := r.URL.Query().Get("itemId")
	if itemIDStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing item ID")
		handlers.RespondBadRequest(w, msgMissingItemID)
		return
	}

	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	// Извлекаем itemType из query параметров
	itemType := r.URL.Query().Get("itemType")
	if itemType == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing item type")
		handlers.RespondBadRequest(w, msgMissingItemType)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем employeeId из query параметров (опционально)
	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(salonID, itemID, itemType, dateStr, employeeID)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrItemNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Item not found: salon_id=%d, item_id=%d", salonID, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, getAvailableSlots.ErrItemInactive):
			h.logger.Warn("GET /salons/{id}/available-slots - Item inactive: salon_id=%d, item_id=%d", salonID, itemID)
			handlers.RespondBadRequest(w, msgItemInactive)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Employee not found: salon_id=%d, employee_id=%v",
				salonID, employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid params: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /salons/{id}/available-slots - Failed to get slots: salon_id=%d, item_id=%d, error=%v",
				salonID, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/available-slots - Slots retrieved successfully: salon_id=%d, item_id=%d, date=%s, slots_count=%d",
		salonID, itemID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
