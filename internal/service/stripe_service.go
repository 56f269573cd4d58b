package service

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// CheckoutRequest describes a single-item payment.
type CheckoutRequest struct {
	Amount        int64
	Currency      string
	Description   string
	CustomerEmail string
	Metadata      map[string]string
}

type CheckoutCreator interface {
	CreateCheckoutSession(req CheckoutRequest) (url string, sessionID string, err error)
}

type StripeService struct {
	successURL string
	cancelURL  string
}

// NewStripeService sets the global Stripe key. It returns nil without a key.
func NewStripeService(key, successURL, cancelURL string) *StripeService {
	if key == "" {
		return nil
	}
	stripe.Key = key
	return &StripeService{successURL: successURL, cancelURL: cancelURL}
}

// Create checkout session
func (s *StripeService) CreateCheckoutSession(req CheckoutRequest) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if len(req.Metadata) > 0 {
		params.Metadata = req.Metadata
	}

	sess, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	return sess.URL, sess.ID, nil
}
