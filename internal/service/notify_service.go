package service

import (
	"bytes"
	"condominio/internal/auth"
	"condominio/internal/entities"
	"condominio/internal/utils"
	"fmt"
	"html/template"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ReservationNotifier interface {
	ReservationConfirmed(s *auth.Session, r entities.Reservation, espacio entities.Space, slot entities.SelectedSlot)
}

type PaymentNotifier interface {
	PaymentReceived(p entities.PagoConfirmado)
}

var reservationEmailTmpl = template.Must(template.New("reserva").Parse(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>¡Reserva confirmada!</h2>
  <p>Hola {{.UserName}},</p>
  <p>Tu reserva de <strong>{{.EspacioNombre}}</strong> quedó registrada.</p>
  <table cellpadding="4">
    <tr><td>N° de reserva</td><td>{{.ReservationID}}</td></tr>
    <tr><td>Inicio</td><td>{{.StartTimeFormatted}}</td></tr>
    <tr><td>Término</td><td>{{.EndTimeFormatted}}</td></tr>
    <tr><td>Duración</td><td>{{.Duracion}} minutos</td></tr>
  </table>
  <p style="font-size: 12px; color: #6b7280;">© {{.CurrentYear}} Administración del condominio</p>
</body>
</html>`))

// NotifyService sends the reservation e-mail and the concierge SMS in the
// background. Either sender may be nil.
type NotifyService struct {
	email         EmailSender
	sms           SMSSender
	conserjePhone string
	logger        *zap.Logger

	wg sync.WaitGroup
}

func NewNotifyService(email EmailSender, sms SMSSender, conserjePhone string, logger *zap.Logger) *NotifyService {
	return &NotifyService{
		email:         email,
		sms:           sms,
		conserjePhone: conserjePhone,
		logger:        logger,
	}
}

func (n *NotifyService) ReservationConfirmed(s *auth.Session, r entities.Reservation, espacio entities.Space, slot entities.SelectedSlot) {
	data := entities.ReservationEmailData{
		UserName:           s.Name,
		EspacioNombre:      espacio.Nombre,
		ReservationID:      r.ID,
		StartTimeFormatted: utils.FormatFecha(slot.Inicio),
		EndTimeFormatted:   utils.FormatFecha(slot.Fin),
		Duracion:           slot.Duracion,
		CurrentYear:        time.Now().Year(),
	}

	if n.email != nil {
		n.dispatch("email", func() error { return n.sendEmail(s.Email, data) })
	}
	if n.sms != nil && n.conserjePhone != "" {
		body := fmt.Sprintf("Nueva reserva #%d: %s, %s (%s).",
			r.ID, espacio.Nombre, data.StartTimeFormatted, s.Name)
		n.dispatch("sms", func() error { return n.sms.SendSMS(n.conserjePhone, body) })
	}
}

func (n *NotifyService) sendEmail(to string, data entities.ReservationEmailData) error {
	var html bytes.Buffer
	if err := reservationEmailTmpl.Execute(&html, data); err != nil {
		return fmt.Errorf("plantilla de correo: %w", err)
	}
	subject := fmt.Sprintf("Reserva confirmada: %s - N° %d", data.EspacioNombre, data.ReservationID)
	plain := fmt.Sprintf(
		"Hola %s,\n\nTu reserva de %s quedó registrada.\n\n"+
			"N° de reserva: %d\nInicio: %s\nTérmino: %s\nDuración: %d minutos\n",
		data.UserName, data.EspacioNombre, data.ReservationID,
		data.StartTimeFormatted, data.EndTimeFormatted, data.Duracion,
	)
	return n.email.SendEmail(to, data.UserName, subject, plain, html.String())
}

// PaymentReceived e-mails the receipt of a completed checkout.
func (n *NotifyService) PaymentReceived(p entities.PagoConfirmado) {
	if n.email == nil || p.Email == "" {
		return
	}
	monto := utils.FormatCLP(float64(p.MontoCLP))
	subject := "Pago recibido: " + p.Descripcion
	plain := fmt.Sprintf("Hola %s,\n\nRecibimos tu pago de %s por %s.\nComprobante: %s\n",
		p.Nombre, monto, p.Descripcion, p.SessionID)
	html := fmt.Sprintf("<p>Hola %s,</p><p>Recibimos tu pago de <strong>%s</strong> por %s.</p><p>Comprobante: %s</p>",
		template.HTMLEscapeString(p.Nombre), monto, template.HTMLEscapeString(p.Descripcion), template.HTMLEscapeString(p.SessionID))
	n.dispatch("email", func() error { return n.email.SendEmail(p.Email, p.Nombre, subject, plain, html) })
}

func (n *NotifyService) dispatch(channel string, send func() error) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := send(); err != nil {
			n.logger.Error("notification failed", zap.String("channel", channel), zap.Error(err))
		}
	}()
}

// Wait blocks until pending notifications finish.
func (n *NotifyService) Wait() {
	n.wg.Wait()
}
