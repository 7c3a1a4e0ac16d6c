package get_draft

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/service/drafts/models"
)

type DraftService interface {
	GetByToken(ctx context.Context, token string) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
