package resume_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonix/SLX-BookingService/internal/api/handlers"
	"github.com/salonix/SLX-BookingService/internal/api/middleware"
	"github.com/salonix/SLX-BookingService/internal/service/drafts"
	"github.com/salonix/SLX-BookingService/internal/service/drafts/models"
)

const (
	msgMissingToken  = "токен черновика обязателен"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "черновик не найден или истёк"
	msgInvalidData   = "некорректные данные запроса"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{token}/resume
// Вызывается после авторизации: черновик привязывается к клиенту,
// в ответе - шаг мастера, с которого продолжится оформление
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем token из URL
	vars := mux.Vars(r)
	token := vars["token"]
	if token == "" {
		h.logger.Warn("POST /drafts/{token}/resume - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /drafts/{token}/resume - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Формируем запрос к сервису
	serviceReq := &models.ResumeDraftRequest{
		CustomerID: customerID,
	}

	// Возобновляем оформление
	result, err := h.service.Resume(r.Context(), token, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{token}/resume - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("POST /drafts/{token}/resume - Invalid data: token=%s, error=%v", token, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /drafts/{token}/resume - Failed to resume draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{token}/resume - Draft resumed successfully: token=%s, customer_id=%d, next_step=%s",
		token, customerID, result.NextStep)
	handlers.RespondJSON(w, http.StatusOK, result)
}
