package get_employee_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonix/SLX-BookingService/internal/api/handlers"
	"github.com/salonix/SLX-BookingService/internal/api/middleware"
	"github.com/salonix/SLX-BookingService/internal/service/reservations"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEmployeeNotFound  = "мастер не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/employees/{employeeId}/schedule
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем salonId из URL
	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/schedule - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Извлекаем employeeId из URL
	employeeIDStr := vars["employeeId"]
	employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/schedule - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/employees/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/employees/{id}/schedule - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к сервису (с парсингом даты)
	serviceReq, err := ToServiceRequest(salonID, employeeID, userID, dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/schedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем расписание мастера (сервис сам проверит права доступа)
	result, err := h.service.GetEmployeeSchedule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/schedule - Employee not found: salon_id=%d, employee_id=%d",
				salonID, employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/employees/{id}/schedule - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /salons/{id}/employees/{id}/schedule - Failed to get schedule: salon_id=%d, employee_id=%d, error=%v",
				salonID, employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/employees/{id}/schedule - Schedule retrieved successfully: salon_id=%d, employee_id=%d, date=%s, count=%d",
		salonID, employeeID, dateStr, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
