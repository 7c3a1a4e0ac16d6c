package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonix/SLX-BookingService/internal/domain"
	draftRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/draft"
	"github.com/salonix/SLX-BookingService/internal/service/drafts/models"
)

// Фейки

type fakeDraftRepo struct {
	drafts map[string]*domain.DraftBooking
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*domain.DraftBooking)}
}

func (f *fakeDraftRepo) Create(_ context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error) {
	stored := *draft
	f.drafts[draft.Token] = &stored
	return draft, nil
}

func (f *fakeDraftRepo) GetByToken(_ context.Context, token string) (*domain.DraftBooking, error) {
	draft, ok := f.drafts[token]
	if !ok {
		return nil, draftRepo.ErrDraftNotFound
	}
	result := *draft
	return &result, nil
}

func (f *fakeDraftRepo) AttachCustomer(_ context.Context, token string, customerID int64) error {
	draft, ok := f.drafts[token]
	if !ok {
		return draftRepo.ErrDraftNotFound
	}
	draft.CustomerID = &customerID
	return nil
}

func (f *fakeDraftRepo) Delete(_ context.Context, token string) error {
	delete(f.drafts, token)
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newCreateRequest(salonID, itemID int64, itemType, date, startTime string) *models.CreateDraftRequest {
	return &models.CreateDraftRequest{
		SalonID:   salonID,
		ItemID:    itemID,
		ItemType:  itemType,
		Date:      date,
		StartTime: startTime,
	}
}

// Тесты

func TestService_Create(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeDraftRepo()
	service := NewService(repo, &fixedTime{now: now}, 30*time.Minute, noopLogger{})

	resp, err := service.Create(context.Background(), newCreateRequest(101, 7, "service", "2026-09-08", "10:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(101), resp.SalonID)
	assert.Equal(t, "2026-09-08", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	// Слот выбран, клиент не авторизован - возобновление с шага авторизации
	assert.Equal(t, string(domain.WizardAuthenticating), resp.NextStep)
	assert.Equal(t, now.Add(30*time.Minute), resp.ExpiresAt)
}

func TestService_Create_Invalid(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(newFakeDraftRepo(), &fixedTime{now: now}, 30*time.Minute, noopLogger{})

	tests := []struct {
		name string
		req  *models.CreateDraftRequest
	}{
		{
			name: "нет салона",
			req:  newCreateRequest(0, 7, "service", "", ""),
		},
		{
			name: "неизвестный тип позиции",
			req:  newCreateRequest(101, 7, "bundle", "", ""),
		},
		{
			name: "кривая дата",
			req:  newCreateRequest(101, 7, "service", "08-09-2026", ""),
		},
		{
			name: "кривое время",
			req:  newCreateRequest(101, 7, "service", "2026-09-08", "25:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_GetByToken_NotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(newFakeDraftRepo(), &fixedTime{now: now}, 30*time.Minute, noopLogger{})

	_, err := service.GetByToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestService_GetByToken_Expired(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeDraftRepo()
	clock := &fixedTime{now: now}
	service := NewService(repo, clock, 30*time.Minute, noopLogger{})

	created, err := service.Create(context.Background(), newCreateRequest(101, 7, "service", "2026-09-08", "10:00"))
	require.NoError(t, err)

	// Время ушло за ExpiresAt - черновик мёртв
	clock.now = now.Add(31 * time.Minute)
	_, err = service.GetByToken(context.Background(), created.Token)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestService_Resume(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeDraftRepo()
	service := NewService(repo, &fixedTime{now: now}, 30*time.Minute, noopLogger{})

	created, err := service.Create(context.Background(), newCreateRequest(101, 7, "service", "2026-09-08", "10:00"))
	require.NoError(t, err)

	resumed, err := service.Resume(context.Background(), created.Token, &models.ResumeDraftRequest{CustomerID: 42})
	require.NoError(t, err)

	require.NotNil(t, resumed.CustomerID)
	assert.Equal(t, int64(42), *resumed.CustomerID)
	// Клиент авторизован, слот выбран - остаётся только оформить
	assert.Equal(t, string(domain.WizardSubmitting), resumed.NextStep)
}

func TestService_Resume_StepDerivation(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     string
		start    string
		expected domain.WizardState
	}{
		{"без даты - выбор даты", "", "", domain.WizardSelectingDate},
		{"без слота - выбор слота", "2026-09-08", "", domain.WizardSelectingSlot},
		{"слот выбран - оформление", "2026-09-08", "10:00", domain.WizardSubmitting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeDraftRepo()
			service := NewService(repo, &fixedTime{now: now}, 30*time.Minute, noopLogger{})

			created, err := service.Create(context.Background(), newCreateRequest(101, 7, "service", tt.date, tt.start))
			require.NoError(t, err)

			resumed, err := service.Resume(context.Background(), created.Token, &models.ResumeDraftRequest{CustomerID: 42})
			require.NoError(t, err)
			assert.Equal(t, string(tt.expected), resumed.NextStep)
		})
	}
}

func TestService_Resume_InvalidCustomer(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(newFakeDraftRepo(), &fixedTime{now: now}, 30*time.Minute, noopLogger{})

	_, err := service.Resume(context.Background(), "token", &models.ResumeDraftRequest{CustomerID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Discard(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeDraftRepo()
	service := NewService(repo, &fixedTime{now: now}, 30*time.Minute, noopLogger{})

	created, err := service.Create(context.Background(), newCreateRequest(101, 7, "service", "2026-09-08", "10:00"))
	require.NoError(t, err)

	require.NoError(t, service.Discard(context.Background(), created.Token))

	_, err = service.GetByToken(context.Background(), created.Token)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
