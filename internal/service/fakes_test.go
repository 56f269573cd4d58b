package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var testLogger = zap.NewNop()

func testSession(role auth.Role) *auth.Session {
	users := map[auth.Role]string{
		auth.RoleSuperAdmin: "super@admin.com",
		auth.RoleAdmin:      "admin@condo.com",
		auth.RoleConserje:   "conserje@condo.com",
		auth.RoleDirectiva:  "directiva@condo.com",
		auth.RoleResidente:  "residente@condo.com",
	}
	u, _ := auth.LookupUser(users[role])
	return &auth.Session{ID: "sess-" + string(role), UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, Token: "tok"}
}

func slot(inicio, fin string, disponible bool) entities.Slot {
	return entities.Slot{Inicio: inicio, Fin: fin, Disponible: disponible}
}

// fakeReservationRepo answers from hooks and counts calls.
type fakeReservationRepo struct {
	mu sync.Mutex

	availability func(ctx context.Context, espacio entities.SpaceID, q entities.AvailabilityQuery) (*entities.AvailabilityResponse, error)
	create       func(ctx context.Context, req entities.ReservationRequest) (*entities.Reservation, error)
	spaces       []entities.EspacioComun
	reservations []entities.ReservationListItem
	listErr      error

	availabilityCalls atomic.Int32
	createCalls       atomic.Int32
	lastCreate        entities.ReservationRequest
	lastUsuario       int
	cancelled         []int
}

func (f *fakeReservationRepo) GetAvailability(ctx context.Context, token string, espacio entities.SpaceID, q entities.AvailabilityQuery) (*entities.AvailabilityResponse, error) {
	f.availabilityCalls.Add(1)
	if f.availability == nil {
		return &entities.AvailabilityResponse{Espacio: string(espacio), Slots: []entities.Slot{}}, nil
	}
	return f.availability(ctx, espacio, q)
}

func (f *fakeReservationRepo) CreateReservation(ctx context.Context, token string, usuarioID int, req entities.ReservationRequest) (*entities.Reservation, error) {
	f.createCalls.Add(1)
	f.mu.Lock()
	f.lastCreate = req
	f.lastUsuario = usuarioID
	f.mu.Unlock()
	if f.create == nil {
		return &entities.Reservation{ID: 1, UsuarioID: usuarioID, FechaHoraInicio: req.FechaHoraInicio, FechaHoraFin: req.FechaHoraFin}, nil
	}
	return f.create(ctx, req)
}

func (f *fakeReservationRepo) ListSpaces(ctx context.Context, token string) ([]entities.EspacioComun, error) {
	return f.spaces, nil
}

func (f *fakeReservationRepo) ListUserReservations(ctx context.Context, token string, usuarioID int) ([]entities.ReservationListItem, error) {
	return f.reservations, f.listErr
}

func (f *fakeReservationRepo) CancelReservation(ctx context.Context, token string, usuarioID, reservaID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, reservaID)
	return nil
}

func (f *fakeReservationRepo) created() (entities.ReservationRequest, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCreate, f.lastUsuario
}

func quinchoResponse(slots ...entities.Slot) func(context.Context, entities.SpaceID, entities.AvailabilityQuery) (*entities.AvailabilityResponse, error) {
	return func(ctx context.Context, espacio entities.SpaceID, q entities.AvailabilityQuery) (*entities.AvailabilityResponse, error) {
		return &entities.AvailabilityResponse{Espacio: string(espacio), Slots: slots}, nil
	}
}

type fakeUF struct {
	value *entities.UFValue
	err   error
	calls atomic.Int32
}

func (f *fakeUF) Current(ctx context.Context) (*entities.UFValue, error) {
	f.calls.Add(1)
	return f.value, f.err
}

func (f *fakeUF) FetchCurrent(ctx context.Context) (*entities.UFValue, error) {
	return f.Current(ctx)
}

type fakeDesglose struct {
	desglose *entities.Desglose
	err      error
}

func (f *fakeDesglose) GetDesglose(ctx context.Context, token string, usuarioID int) (*entities.Desglose, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := *f.desglose
	return &d, nil
}

type fakeCheckout struct {
	last CheckoutRequest
	err  error
}

func (f *fakeCheckout) CreateCheckoutSession(req CheckoutRequest) (string, string, error) {
	f.last = req
	if f.err != nil {
		return "", "", f.err
	}
	return "https://checkout.stripe.test/cs_1", "cs_1", nil
}

type sentMessage struct {
	to, subject, body string
}

type fakeSender struct {
	mu     sync.Mutex
	emails []sentMessage
	sms    []sentMessage
	err    error
}

func (f *fakeSender) SendEmail(toEmail, toName, subject, plainText, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, sentMessage{to: toEmail, subject: subject, body: plainText + html})
	return f.err
}

func (f *fakeSender) SendSMS(toNumber, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms = append(f.sms, sentMessage{to: toNumber, body: body})
	return f.err
}

type notification struct {
	reserva entities.Reservation
	espacio entities.Space
	slot    entities.SelectedSlot
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (f *fakeNotifier) ReservationConfirmed(s *auth.Session, r entities.Reservation, espacio entities.Space, slot entities.SelectedSlot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification{reserva: r, espacio: espacio, slot: slot})
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
