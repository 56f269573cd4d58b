package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/utils"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ReservationRepo interface {
	AvailabilityFetcher
	ReservationCreator
	ListSpaces(ctx context.Context, token string) ([]entities.EspacioComun, error)
	ListUserReservations(ctx context.Context, token string, usuarioID int) ([]entities.ReservationListItem, error)
	CancelReservation(ctx context.Context, token string, usuarioID, reservaID int) error
}

// WizardView bundles the wizard state with what its current step shows.
type WizardView struct {
	Wizard         WizardState       `json:"wizard"`
	Espacios       []entities.Space  `json:"espacios,omitempty"`
	Disponibilidad *AvailabilityView `json:"disponibilidad,omitempty"`
}

type ReservationService struct {
	repo     ReservationRepo
	notifier ReservationNotifier
	logger   *zap.Logger
	store    *WizardStore
}

func NewReservationService(repo ReservationRepo, notifier ReservationNotifier, logger *zap.Logger, resetDelay time.Duration) *ReservationService {
	s := &ReservationService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
	s.store = NewWizardStore(func() *ReservationSession {
		loader := NewAvailabilityLoader(repo, logger)
		wizard := NewReservationWizard(repo,
			WithResetDelay(resetDelay),
			WithOnSubmitted(s.reservationCreated),
			WithOnReset(loader.Close),
		)
		return &ReservationSession{Wizard: wizard, Loader: loader}
	})
	return s
}

func (s *ReservationService) Store() *WizardStore {
	return s.store
}

func (s *ReservationService) reservationCreated(sess *auth.Session, r entities.Reservation, espacio entities.Space, slot entities.SelectedSlot) {
	s.logger.Info("reservation created",
		zap.Int("reserva_id", r.ID),
		zap.Int("usuario_id", sess.UserID),
		zap.String("espacio", string(espacio.ID)),
		zap.String("inicio", slot.Inicio))
	if s.notifier != nil {
		s.notifier.ReservationConfirmed(sess, r, espacio, slot)
	}
}

func (s *ReservationService) Spaces() []entities.Space {
	return utils.Spaces()
}

// SpaceDetails merges the static catalog with the backend's pricing.
func (s *ReservationService) SpaceDetails(ctx context.Context, sess *auth.Session) ([]entities.SpaceDetail, error) {
	remote, err := s.repo.ListSpaces(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]entities.EspacioComun, len(remote))
	for _, e := range remote {
		byName[normalizeName(e.Nombre)] = e
	}

	spaces := utils.Spaces()
	details := make([]entities.SpaceDetail, 0, len(spaces))
	for _, sp := range spaces {
		d := entities.SpaceDetail{Space: sp}
		if e, ok := byName[normalizeName(sp.Nombre)]; ok {
			d.RequierePago = e.RequierePago
			d.Precio = e.Precio
		}
		details = append(details, d)
	}
	return details, nil
}

func normalizeName(n string) string {
	return strings.ToLower(strings.TrimSpace(n))
}

func (s *ReservationService) MyReservations(ctx context.Context, sess *auth.Session) ([]entities.ReservationListItem, error) {
	items, err := s.repo.ListUserReservations(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entities.ReservationListItem{}
	}
	return items, nil
}

func (s *ReservationService) CancelReservation(ctx context.Context, sess *auth.Session, reservaID int) error {
	if reservaID <= 0 {
		return apperr.Validation("Reserva inválida")
	}
	if err := s.repo.CancelReservation(ctx, sess.Token, sess.UserID, reservaID); err != nil {
		return err
	}
	s.logger.Info("reservation cancelled", zap.Int("reserva_id", reservaID), zap.Int("usuario_id", sess.UserID))
	return nil
}

// Wizard returns the current view of the session's wizard.
func (s *ReservationService) Wizard(sess *auth.Session) WizardView {
	return s.view(s.store.Get(sess.ID))
}

func (s *ReservationService) view(rs *ReservationSession) WizardView {
	v := WizardView{Wizard: rs.Wizard.State()}
	switch v.Wizard.Step {
	case StepSelectSpace:
		v.Espacios = utils.Spaces()
	case StepSelectSlot:
		av := rs.Loader.View()
		v.Disponibilidad = &av
	}
	return v
}

// ChooseSpace selects the space on step 1 and loads its availability.
func (s *ReservationService) ChooseSpace(ctx context.Context, sess *auth.Session, espacio string) (WizardView, error) {
	rs := s.store.Get(sess.ID)
	st, err := rs.Wizard.SelectSpace(espacio)
	if err != nil {
		return s.view(rs), err
	}
	rs.Loader.Open(st.Espacio.ID, entities.AvailabilityQuery{})
	if err := rs.Loader.Refresh(ctx, sess.Token); err != nil {
		return s.view(rs), err
	}
	return s.view(rs), nil
}

// RefreshAvailability re-fetches the slots on step 2, optionally for another range.
func (s *ReservationService) RefreshAvailability(ctx context.Context, sess *auth.Session, q *entities.AvailabilityQuery) (WizardView, error) {
	rs := s.store.Get(sess.ID)
	st := rs.Wizard.State()
	if st.Step != StepSelectSlot || st.Espacio == nil {
		return s.view(rs), apperr.Validation("Selecciona primero un espacio")
	}
	if q != nil {
		rs.Loader.Open(st.Espacio.ID, *q)
	}
	if err := rs.Loader.Refresh(ctx, sess.Token); err != nil {
		return s.view(rs), err
	}
	return s.view(rs), nil
}

// ChooseSlot picks the slot starting at inicio from the loaded availability.
func (s *ReservationService) ChooseSlot(ctx context.Context, sess *auth.Session, inicio string) (WizardView, error) {
	rs := s.store.Get(sess.ID)
	if rs.Wizard.State().Step != StepSelectSlot {
		return s.view(rs), apperr.Validation("Selecciona primero un espacio")
	}
	slot, err := rs.Loader.Select(inicio)
	if err != nil {
		return s.view(rs), err
	}
	if _, err := rs.Wizard.SelectSlot(slot); err != nil {
		rs.Loader.ClearSelection()
		return s.view(rs), err
	}
	return s.view(rs), nil
}

// Back moves one step back. Returning to step 2 reloads the availability;
// returning to step 1 closes the loader.
func (s *ReservationService) Back(ctx context.Context, sess *auth.Session) (WizardView, error) {
	rs := s.store.Get(sess.ID)
	prev := rs.Wizard.State().Step
	st, err := rs.Wizard.Back()
	if err != nil {
		return s.view(rs), err
	}
	switch {
	case prev == StepConfirm && st.Step == StepSelectSlot:
		if err := rs.Loader.Refresh(ctx, sess.Token); err != nil {
			return s.view(rs), err
		}
	case prev == StepSelectSlot && st.Step == StepSelectSpace:
		rs.Loader.Close()
	}
	return s.view(rs), nil
}

// Confirm submits the reservation built on step 3.
func (s *ReservationService) Confirm(ctx context.Context, sess *auth.Session) (WizardView, error) {
	rs := s.store.Get(sess.ID)
	_, err := rs.Wizard.Submit(ctx, sess)
	if err != nil && !apperr.IsValidation(err) && !apperr.IsCanceled(err) {
		s.logger.Warn("reservation failed", zap.Int("usuario_id", sess.UserID), zap.Error(err))
	}
	return s.view(rs), err
}

// EndSession drops the reservation state of a session (logout).
func (s *ReservationService) EndSession(sess *auth.Session) {
	s.store.Drop(sess.ID)
}
