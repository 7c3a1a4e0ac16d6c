package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonix/SLX-BookingService/internal/domain"
	draftRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/draft"
	"github.com/salonix/SLX-BookingService/internal/service/drafts/models"
)

// Service сервис черновиков бронирования
// Черновик сохраняет выбор гостя, чтобы после авторизации оформление
// продолжилось с того же шага мастера
type Service struct {
	draftRepo    DraftRepository
	timeProvider TimeProvider
	ttl          time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(
	draftRepo DraftRepository,
	timeProvider TimeProvider,
	ttl time.Duration,
	logger Logger,
) *Service {
	if ttl <= 0 {
		ttl = domain.DefaultDraftTTLMinutes * time.Minute
	}
	return &Service{
		draftRepo:    draftRepo,
		timeProvider: timeProvider,
		ttl:          ttl,
		logger:       logger,
	}
}

// Create сохраняет черновик и выдаёт токен для возобновления
func (s *Service) Create(ctx context.Context, req *models.CreateDraftRequest) (*models.DraftResponse, error) {
	s.logger.Info("Create: creating draft for salon=%d, item=%d", req.SalonID, req.ItemID)

	if req.SalonID <= 0 || req.ItemID <= 0 {
		s.logger.Warn("Create: invalid salon=%d or item=%d", req.SalonID, req.ItemID)
		return nil, fmt.Errorf("%w: salonId and itemId are required", ErrInvalidInput)
	}
	if req.ItemType != string(domain.ItemTypeService) && req.ItemType != string(domain.ItemTypeCombo) {
		s.logger.Warn("Create: invalid item type=%s", req.ItemType)
		return nil, fmt.Errorf("%w: itemType must be 'service' or 'combo'", ErrInvalidInput)
	}

	draft, err := req.ToDomainDraft()
	if err != nil {
		s.logger.Warn("Create: invalid draft data: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	draft.Token = uuid.NewString()
	draft.ExpiresAt = s.timeProvider.Now().Add(s.ttl)

	created, err := s.draftRepo.Create(ctx, draft)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created draft token=%s", created.Token)
	return models.FromDomainDraft(created, s.resumeStep(created)), nil
}

// GetByToken получает черновик по токену
// Истёкший черновик равнозначен отсутствующему
func (s *Service) GetByToken(ctx context.Context, token string) (*models.DraftResponse, error) {
	s.logger.Info("GetByToken: fetching draft token=%s", token)

	draft, err := s.fetchLiveDraft(ctx, token)
	if err != nil {
		return nil, err
	}

	return models.FromDomainDraft(draft, s.resumeStep(draft)), nil
}

// Resume привязывает авторизовавшегося клиента к черновику
// Возвращает черновик с шагом мастера, с которого продолжится оформление
func (s *Service) Resume(ctx context.Context, token string, req *models.ResumeDraftRequest) (*models.DraftResponse, error) {
	s.logger.Info("Resume: resuming draft token=%s for customer=%d", token, req.CustomerID)

	if req.CustomerID <= 0 {
		s.logger.Warn("Resume: invalid customer=%d", req.CustomerID)
		return nil, fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}

	if err := s.draftRepo.AttachCustomer(ctx, token, req.CustomerID); err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			s.logger.Warn("Resume: draft token=%s not found or expired", token)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("Resume: repository error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: Resume - repository error: %v", ErrInternal, err)
	}

	draft, err := s.fetchLiveDraft(ctx, token)
	if err != nil {
		return nil, err
	}

	step := s.resumeStep(draft)
	s.logger.Info("Resume: draft token=%s resumed at step=%s", token, step)
	return models.FromDomainDraft(draft, step), nil
}

// Discard удаляет черновик (после оформления записи или отказа)
func (s *Service) Discard(ctx context.Context, token string) error {
	s.logger.Info("Discard: deleting draft token=%s", token)

	if err := s.draftRepo.Delete(ctx, token); err != nil {
		s.logger.Error("Discard: repository error for token=%s: %v", token, err)
		return fmt.Errorf("%w: Discard - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Вспомогательные методы

func (s *Service) fetchLiveDraft(ctx context.Context, token string) (*domain.DraftBooking, error) {
	draft, err := s.draftRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			s.logger.Warn("fetchLiveDraft: draft token=%s not found or expired", token)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("fetchLiveDraft: repository error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: fetchLiveDraft - repository error: %v", ErrInternal, err)
	}

	// Репозиторий фильтрует истёкшие, но время могло сместиться между запросами
	if draft.IsExpired(s.timeProvider.Now()) {
		s.logger.Warn("fetchLiveDraft: draft token=%s expired", token)
		return nil, ErrDraftNotFound
	}

	return draft, nil
}

// resumeStep восстанавливает шаг мастера из сохранённого черновика
// Детерминированно: одинаковый черновик всегда возобновляется с одного шага
func (s *Service) resumeStep(draft *domain.DraftBooking) domain.WizardState {
	switch {
	case draft.ItemID == 0:
		return domain.WizardSelectingService
	case draft.Date.IsZero():
		return domain.WizardSelectingDate
	case draft.StartTime.IsZero():
		return domain.WizardSelectingSlot
	case draft.CustomerID == nil:
		return domain.WizardAuthenticating
	default:
		return domain.WizardSubmitting
	}
}
