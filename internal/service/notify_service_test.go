package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyReservationConfirmed(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifyService(sender, sender, "+56911112222", testLogger)
	espacio := entities.Space{ID: entities.SpaceQuincho, Nombre: "Quincho"}
	sel := entities.SelectedSlot{Slot: slotQuincho, Espacio: entities.SpaceQuincho, Duracion: 60}

	n.ReservationConfirmed(testSession(auth.RoleResidente), entities.Reservation{ID: 42}, espacio, sel)
	n.Wait()

	require.Len(t, sender.emails, 1)
	assert.Equal(t, "residente@condo.com", sender.emails[0].to)
	assert.Contains(t, sender.emails[0].subject, "Quincho")
	assert.Contains(t, sender.emails[0].body, "25 de octubre de 2025, 18:00")
	require.Len(t, sender.sms, 1)
	assert.Equal(t, "+56911112222", sender.sms[0].to)
	assert.Contains(t, sender.sms[0].body, "#42")
}

func TestNotifyWithoutChannels(t *testing.T) {
	n := NewNotifyService(nil, nil, "", testLogger)
	n.ReservationConfirmed(testSession(auth.RoleResidente), entities.Reservation{ID: 1}, entities.Space{}, entities.SelectedSlot{})
	n.Wait()
}

func TestNotifyFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("sendgrid down")}
	n := NewNotifyService(sender, nil, "+56911112222", testLogger)
	n.ReservationConfirmed(testSession(auth.RoleResidente), entities.Reservation{ID: 1}, entities.Space{Nombre: "Quincho"},
		entities.SelectedSlot{Slot: slotQuincho})
	n.Wait()
	assert.Len(t, sender.emails, 1)
	assert.Empty(t, sender.sms)
}

func TestNotifyPaymentReceived(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifyService(sender, nil, "", testLogger)
	n.PaymentReceived(entities.PagoConfirmado{
		SessionID:   "cs_test_1",
		Email:       "residente@condo.com",
		Nombre:      "Residente",
		Descripcion: "Gasto común 09/2025",
		MontoCLP:    90000,
	})
	n.PaymentReceived(entities.PagoConfirmado{SessionID: "cs_test_2"})
	n.Wait()

	require.Len(t, sender.emails, 1)
	assert.Equal(t, "Pago recibido: Gasto común 09/2025", sender.emails[0].subject)
	assert.Contains(t, sender.emails[0].body, "$90.000")
}
