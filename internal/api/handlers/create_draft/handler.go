package create_draft

import (
	"errors"
	"net/http"

	"github.com/salonix/SLX-BookingService/internal/api/handlers"
	"github.com/salonix/SLX-BookingService/internal/service/drafts"
	"github.com/salonix/SLX-BookingService/internal/service/drafts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные черновика"
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

// Handle POST /api/v1/drafts
// Публичный endpoint - черновик сохраняет гость до авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req models.CreateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сохраняем черновик
	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("POST /drafts - Invalid data: salon_id=%d, error=%v", req.SalonID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /drafts - Failed to create draft: salon_id=%d, error=%v", req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts - Draft created successfully: token=%s, salon_id=%d, next_step=%s",
		result.Token, result.SalonID, result.NextStep)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
