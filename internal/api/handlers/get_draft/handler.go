package get_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonix/SLX-BookingService/internal/api/handlers"
	"github.com/salonix/SLX-BookingService/internal/service/drafts"
)

const (
	msgMissingToken = "токен черновика обязателен"
	msgNotFound     = "черновик не найден или истёк"
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

// Handle GET /api/v1/drafts/{token}
// Публичный endpoint - токен черновика и есть секрет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем token из URL
	vars := mux.Vars(r)
	token := vars["token"]
	if token == "" {
		h.logger.Warn("GET /drafts/{token} - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	// Получаем черновик (истёкший равнозначен отсутствующему)
	result, err := h.service.GetByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("GET /drafts/{token} - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /drafts/{token} - Failed to get draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drafts/{token} - Draft retrieved successfully: token=%s, next_step=%s",
		token, result.NextStep)
	handlers.RespondJSON(w, http.StatusOK, result)
}
