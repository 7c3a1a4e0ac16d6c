package delete_draft

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonix/SLX-BookingService/internal/api/handlers"
)

const (
	msgMissingToken = "токен черновика обязателен"
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

// Handle DELETE /api/v1/drafts/{token}
// Публичный endpoint - гость отказывается от сохранённого черновика
// Удаление идемпотентно: несуществующий токен не считается ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем token из URL
	vars := mux.Vars(r)
	token := vars["token"]
	if token == "" {
		h.logger.Warn("DELETE /drafts/{token} - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	// Удаляем черновик
	if err := h.service.Discard(r.Context(), token); err != nil {
		h.logger.Error("DELETE /drafts/{token} - Failed to delete draft: token=%s, error=%v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /drafts/{token} - Draft deleted successfully: token=%s", token)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
