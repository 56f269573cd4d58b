package api

import (
	"condominio/internal/entities"
	"condominio/internal/service"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

// StripeWebhookHandler receives Stripe events for gasto común checkouts. The
// condominium backend owns the payment state; the console only confirms the
// payment to the resident.
type StripeWebhookHandler struct {
	StripeSecret string
	notifier     service.PaymentNotifier
	logger       *zap.Logger
}

func NewStripeWebhookHandler(stripeSecret string, notifier service.PaymentNotifier, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		StripeSecret: stripeSecret,
		notifier:     notifier,
		logger:       logger,
	}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if h.StripeSecret == "" {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("reading webhook body", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.StripeSecret)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil || sess.ID == "" {
			h.logger.Warn("invalid checkout.session payload", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		pago := checkoutToPago(&sess)
		h.logger.Info("checkout completed",
			zap.String("session_id", pago.SessionID),
			zap.String("gasto_comun_id", pago.GastoComunID),
			zap.Int64("monto_clp", pago.MontoCLP))
		if h.notifier != nil {
			h.notifier.PaymentReceived(pago)
		}
	default:
		h.logger.Debug("unhandled stripe event", zap.String("type", string(event.Type)))
	}

	w.WriteHeader(http.StatusOK)
}

func checkoutToPago(sess *stripe.CheckoutSession) entities.PagoConfirmado {
	p := entities.PagoConfirmado{
		SessionID:    sess.ID,
		Email:        sess.CustomerEmail,
		MontoCLP:     sess.AmountTotal,
		Descripcion:  sess.Metadata["descripcion"],
		GastoComunID: sess.Metadata["gasto_comun_id"],
	}
	if sess.CustomerDetails != nil {
		if p.Email == "" {
			p.Email = sess.CustomerDetails.Email
		}
		p.Nombre = sess.CustomerDetails.Name
	}
	if p.Descripcion == "" {
		p.Descripcion = "Gasto común"
	}
	return p
}
