package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonix/SLX-BookingService/pkg/types"
)

func TestBookingWizard_FullFlow(t *testing.T) {
	w := NewBookingWizard(1)
	assert.Equal(t, WizardSelectingService, w.State)

	// Шаг не завершён - услуга не выбрана
	assert.ErrorIs(t, w.Advance(), ErrStepIncomplete)

	w.Draft.ItemID = 7
	w.Draft.ItemType = ItemTypeService
	require.NoError(t, w.Advance())
	assert.Equal(t, WizardSelectingDate, w.State)

	assert.ErrorIs(t, w.Advance(), ErrStepIncomplete)
	w.Draft.Date = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	require.NoError(t, w.Advance())
	assert.Equal(t, WizardSelectingSlot, w.State)

	assert.ErrorIs(t, w.Advance(), ErrStepIncomplete)
	w.Draft.StartTime = types.TimeString("10:00")
	require.NoError(t, w.Advance())
	assert.Equal(t, WizardEnteringDetails, w.State)

	// Детали опциональны
	require.NoError(t, w.Advance())
	assert.Equal(t, WizardAuthenticating, w.State)

	// Без авторизации дальше нельзя
	assert.ErrorIs(t, w.Advance(), ErrStepIncomplete)

	w.Authenticated(42)
	assert.Equal(t, WizardSubmitting, w.State)
	require.NotNil(t, w.Draft.CustomerID)
	assert.Equal(t, int64(42), *w.Draft.CustomerID)

	require.NoError(t, w.Advance())
	assert.Equal(t, WizardConfirmed, w.State)

	// Из терминального состояния переходов нет
	assert.ErrorIs(t, w.Advance(), ErrInvalidTransition)
}

func TestBookingWizard_LoggedInSkipsAuthentication(t *testing.T) {
	w := NewBookingWizard(1)
	w.LoggedIn = true
	w.Draft.ItemID = 7
	w.Draft.Date = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	w.Draft.StartTime = types.TimeString("10:00")

	require.NoError(t, w.Advance()) // -> selecting_date
	require.NoError(t, w.Advance()) // -> selecting_slot
	require.NoError(t, w.Advance()) // -> entering_details
	require.NoError(t, w.Advance()) // шаг аутентификации пропущен

	assert.Equal(t, WizardSubmitting, w.State)
}

func TestBookingWizard_Back(t *testing.T) {
	w := NewBookingWizard(1)

	// С первого шага вернуться нельзя
	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)

	w.Draft.ItemID = 7
	require.NoError(t, w.Advance())
	assert.Equal(t, WizardSelectingDate, w.State)

	require.NoError(t, w.Back())
	assert.Equal(t, WizardSelectingService, w.State)

	// Из терминальных состояний вернуться нельзя
	w.State = WizardConfirmed
	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)

	w.State = WizardSubmitting
	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)
}

func TestBookingWizard_AuthenticatedEarly(t *testing.T) {
	// Авторизация до шага аутентификации не двигает мастер
	w := NewBookingWizard(1)
	w.Authenticated(42)

	assert.Equal(t, WizardSelectingService, w.State)
	assert.True(t, w.LoggedIn)
}
