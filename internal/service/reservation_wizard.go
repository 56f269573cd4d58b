package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/utils"
	"context"
	"sync"
	"time"
)

// Step is the wizard's position: 1 space, 2 slot, 3 confirmation.
type Step int

const (
	StepSelectSpace Step = iota + 1
	StepSelectSlot
	StepConfirm
)

const (
	DefaultResetDelay = 2 * time.Second

	msgFaltanDatos      = "Faltan datos de la reserva"
	msgErrorCrear       = "Error al crear la reserva"
	msgReservaEnCurso   = "Ya hay una reserva en curso"
	msgReservaCreada    = "La reserva ya fue creada"
	msgEspacioInvalido  = "Espacio no válido"
	msgSlotNoDisponible = "El horario seleccionado no está disponible"
)

type ReservationCreator interface {
	CreateReservation(ctx context.Context, token string, usuarioID int, req entities.ReservationRequest) (*entities.Reservation, error)
}

type WizardState struct {
	Step      Step                   `json:"paso"`
	Espacio   *entities.Space        `json:"espacio"`
	Slot      *entities.SelectedSlot `json:"slot"`
	Loading   bool                   `json:"loading"`
	Error     string                 `json:"error,omitempty"`
	Submitted bool                   `json:"reserva_creada"`
	Reserva   *entities.Reservation  `json:"reserva,omitempty"`
}

// SubmittedFunc runs after the backend accepted a reservation.
type SubmittedFunc func(s *auth.Session, r entities.Reservation, espacio entities.Space, slot entities.SelectedSlot)

type WizardOption func(*ReservationWizard)

func WithResetDelay(d time.Duration) WizardOption {
	return func(w *ReservationWizard) { w.resetDelay = d }
}

func WithOnSubmitted(fn SubmittedFunc) WizardOption {
	return func(w *ReservationWizard) { w.onSubmitted = fn }
}

// WithOnReset runs after the post-submission reset.
func WithOnReset(fn func()) WizardOption {
	return func(w *ReservationWizard) { w.onReset = fn }
}

// ReservationWizard walks one user through space, slot and confirmation.
// All methods are safe for concurrent use.
type ReservationWizard struct {
	creator     ReservationCreator
	resetDelay  time.Duration
	onSubmitted SubmittedFunc
	onReset     func()

	mu         sync.Mutex
	state      WizardState
	resetTimer *time.Timer
	closed     bool
}

func NewReservationWizard(creator ReservationCreator, opts ...WizardOption) *ReservationWizard {
	w := &ReservationWizard{
		creator:    creator,
		resetDelay: DefaultResetDelay,
		state:      WizardState{Step: StepSelectSpace},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ReservationWizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

func (w *ReservationWizard) snapshot() WizardState {
	s := w.state
	if s.Espacio != nil {
		e := *s.Espacio
		s.Espacio = &e
	}
	if s.Slot != nil {
		sl := *s.Slot
		s.Slot = &sl
	}
	if s.Reserva != nil {
		r := *s.Reserva
		s.Reserva = &r
	}
	return s
}

// SelectSpace picks the space on step 1 and moves to step 2, dropping any
// earlier slot.
func (w *ReservationWizard) SelectSpace(id string) (WizardState, error) {
	space, ok := utils.LookupSpace(id)
	if !ok {
		return w.State(), apperr.Validation(msgEspacioInvalido)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIdle(); err != nil {
		return w.snapshot(), err
	}
	if w.state.Step != StepSelectSpace {
		return w.snapshot(), apperr.Validation("Vuelve al paso anterior para cambiar de espacio")
	}
	w.state.Espacio = &space
	w.state.Slot = nil
	w.state.Error = ""
	w.state.Step = StepSelectSlot
	return w.snapshot(), nil
}

// SelectSlot moves from step 2 to step 3. Unavailable slots are refused and
// leave the state untouched.
func (w *ReservationWizard) SelectSlot(slot entities.Slot) (WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIdle(); err != nil {
		return w.snapshot(), err
	}
	if w.state.Step != StepSelectSlot || w.state.Espacio == nil {
		return w.snapshot(), apperr.Validation("Selecciona primero un espacio")
	}
	if !slot.Disponible {
		return w.snapshot(), apperr.Validation(msgSlotNoDisponible)
	}
	duracion, err := utils.SlotDuration(slot.Inicio, slot.Fin)
	if err != nil {
		return w.snapshot(), apperr.Validation("Horario con formato inválido")
	}
	w.state.Slot = &entities.SelectedSlot{
		Slot:     slot,
		Espacio:  w.state.Espacio.ID,
		Duracion: duracion,
	}
	w.state.Error = ""
	w.state.Step = StepConfirm
	return w.snapshot(), nil
}

// Back returns to the previous step, clearing what the step being left owns.
// On step 1 it does nothing.
func (w *ReservationWizard) Back() (WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIdle(); err != nil {
		return w.snapshot(), err
	}
	switch w.state.Step {
	case StepConfirm:
		w.state.Slot = nil
		w.state.Step = StepSelectSlot
	case StepSelectSlot:
		w.state.Slot = nil
		w.state.Espacio = nil
		w.state.Step = StepSelectSpace
	}
	w.state.Error = ""
	return w.snapshot(), nil
}

// Submit creates the reservation for the chosen space and slot. A failure
// keeps step 3 and the selections, with the message in State().Error.
func (w *ReservationWizard) Submit(ctx context.Context, s *auth.Session) (WizardState, error) {
	req, espacio, slot, err := w.beginSubmit(s)
	if err != nil {
		return w.State(), err
	}

	created, err := w.creator.CreateReservation(ctx, s.Token, s.UserID, req)

	w.mu.Lock()
	w.state.Loading = false
	switch {
	case w.closed:
	case err != nil:
		if !apperr.IsCanceled(err) {
			w.state.Error = apperr.UserMessage(err, msgErrorCrear)
		}
	default:
		w.state.Submitted = true
		w.state.Reserva = created
		w.resetTimer = time.AfterFunc(w.resetDelay, w.reset)
	}
	state := w.snapshot()
	w.mu.Unlock()

	if err == nil && state.Submitted && w.onSubmitted != nil {
		w.onSubmitted(s, *created, espacio, slot)
	}
	return state, err
}

// beginSubmit validates locally and marks the wizard as loading.
func (w *ReservationWizard) beginSubmit(s *auth.Session) (entities.ReservationRequest, entities.Space, entities.SelectedSlot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIdle(); err != nil {
		return entities.ReservationRequest{}, entities.Space{}, entities.SelectedSlot{}, err
	}
	if w.state.Espacio == nil || w.state.Slot == nil || s == nil {
		return entities.ReservationRequest{}, entities.Space{}, entities.SelectedSlot{}, apperr.Validation(msgFaltanDatos)
	}
	req, err := buildReservationRequest(w.state.Espacio.ID, w.state.Slot.Slot)
	if err != nil {
		return entities.ReservationRequest{}, entities.Space{}, entities.SelectedSlot{}, err
	}
	w.state.Loading = true
	w.state.Error = ""
	return req, *w.state.Espacio, *w.state.Slot, nil
}

func (w *ReservationWizard) reset() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.state = WizardState{Step: StepSelectSpace}
	w.resetTimer = nil
	w.mu.Unlock()

	if w.onReset != nil {
		w.onReset()
	}
}

// Close stops a pending reset. The wizard must not be used afterwards.
func (w *ReservationWizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
}

// checkIdle refuses changes while a submission is in flight or done.
// Caller holds w.mu.
func (w *ReservationWizard) checkIdle() error {
	switch {
	case w.closed:
		return apperr.Validation("La sesión de reserva terminó")
	case w.state.Loading:
		return apperr.Validation(msgReservaEnCurso)
	case w.state.Submitted:
		return apperr.Validation(msgReservaCreada)
	}
	return nil
}

// buildReservationRequest renders the slot bounds as local time without offset.
func buildReservationRequest(espacio entities.SpaceID, slot entities.Slot) (entities.ReservationRequest, error) {
	inicio, err := utils.ParseTimestamp(slot.Inicio)
	if err != nil {
		return entities.ReservationRequest{}, apperr.Validation(msgFaltanDatos)
	}
	fin, err := utils.ParseTimestamp(slot.Fin)
	if err != nil {
		return entities.ReservationRequest{}, apperr.Validation(msgFaltanDatos)
	}
	return entities.ReservationRequest{
		Espacio:         espacio,
		FechaHoraInicio: utils.FormatLocalISO(inicio),
		FechaHoraFin:    utils.FormatLocalISO(fin),
	}, nil
}
