package domain

import "errors"

// WizardState шаг мастера оформления записи
// Явный конечный автомат вместо набора флагов: переходы проверяются предикатами,
// невалидный переход невозможен по построению
type WizardState string

const (
	WizardSelectingService WizardState = "selecting_service"
	WizardSelectingDate    WizardState = "selecting_date"
	WizardSelectingSlot    WizardState = "selecting_slot"
	WizardEnteringDetails  WizardState = "entering_details"
	WizardAuthenticating   WizardState = "authenticating"
	WizardSubmitting       WizardState = "submitting"
	WizardConfirmed        WizardState = "confirmed"
)

var (
	// ErrInvalidTransition возвращается при недопустимом переходе между шагами
	ErrInvalidTransition = errors.New("wizard: invalid state transition")

	// ErrStepIncomplete возвращается, когда данные текущего шага не заполнены
	ErrStepIncomplete = errors.New("wizard: current step is incomplete")
)

// BookingWizard состояние мастера оформления записи
type BookingWizard struct {
	State    WizardState
	Draft    DraftBooking
	LoggedIn bool
}

// NewBookingWizard создает мастер на первом шаге
func NewBookingWizard(salonID int64) *BookingWizard {
	return &BookingWizard{
		State: WizardSelectingService,
		Draft: DraftBooking{SalonID: salonID},
	}
}

// transitions допустимые переходы вперёд
var transitions = map[WizardState]WizardState{
	WizardSelectingService: WizardSelectingDate,
	WizardSelectingDate:    WizardSelectingSlot,
	WizardSelectingSlot:    WizardEnteringDetails,
	WizardEnteringDetails:  WizardAuthenticating,
	WizardAuthenticating:   WizardSubmitting,
	WizardSubmitting:       WizardConfirmed,
}

// Advance переводит мастер на следующий шаг
// Переход разрешён только если данные текущего шага заполнены
func (w *BookingWizard) Advance() error {
	next, ok := transitions[w.State]
	if !ok {
		return ErrInvalidTransition
	}

	if err := w.validateStep(); err != nil {
		return err
	}

	// Авторизованный пользователь пропускает шаг аутентификации
	if next == WizardAuthenticating && w.LoggedIn {
		next = WizardSubmitting
	}

	w.State = next
	return nil
}

// Back возвращает мастер на предыдущий шаг
// Из терминального состояния и с первого шага вернуться нельзя
func (w *BookingWizard) Back() error {
	if w.State == WizardSelectingService || w.State == WizardConfirmed || w.State == WizardSubmitting {
		return ErrInvalidTransition
	}
	for prev, next := range transitions {
		if next == w.State {
			w.State = prev
			return nil
		}
	}
	return ErrInvalidTransition
}

// Authenticated отмечает успешную авторизацию и продвигает мастер,
// если он ждал на шаге аутентификации
func (w *BookingWizard) Authenticated(customerID int64) {
	w.LoggedIn = true
	w.Draft.CustomerID = &customerID
	if w.State == WizardAuthenticating {
		w.State = WizardSubmitting
	}
}

// validateStep предикаты готовности текущего шага
func (w *BookingWizard) validateStep() error {
	switch w.State {
	case WizardSelectingService:
		if w.Draft.ItemID == 0 {
			return ErrStepIncomplete
		}
	case WizardSelectingDate:
		if w.Draft.Date.IsZero() {
			return ErrStepIncomplete
		}
	case WizardSelectingSlot:
		if w.Draft.StartTime.IsZero() {
			return ErrStepIncomplete
		}
	case WizardEnteringDetails:
		// Детали опциональны, шаг всегда можно завершить
	case WizardAuthenticating:
		if !w.LoggedIn {
			return ErrStepIncomplete
		}
	}
	return nil
}
