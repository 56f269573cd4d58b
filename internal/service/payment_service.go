package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/utils"
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
)

const estadoPagado = "pagado"

type DesgloseFetcher interface {
	GetDesglose(ctx context.Context, token string, usuarioID int) (*entities.Desglose, error)
}

type PaymentService struct {
	repo     DesgloseFetcher
	uf       UFProvider
	checkout CheckoutCreator
	logger   *zap.Logger
}

// NewPaymentService wires the breakdown source. checkout may be nil when
// online payments are not configured.
func NewPaymentService(repo DesgloseFetcher, uf UFProvider, checkout CheckoutCreator, logger *zap.Logger) *PaymentService {
	return &PaymentService{repo: repo, uf: uf, checkout: checkout, logger: logger}
}

// Resumen returns the session user's breakdown with totals. A UF failure only
// drops the CLP valuation of the fixed charge.
func (s *PaymentService) Resumen(ctx context.Context, sess *auth.Session) (*entities.PagosResumen, error) {
	d, err := s.repo.GetDesglose(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}
	normalizeDesglose(d)

	r := &entities.PagosResumen{Desglose: *d}
	for _, g := range d.GastosComunes {
		if g.Estado != estadoPagado {
			r.GastosPendientes += g.MontoTotal
		}
	}
	for _, m := range d.Multas {
		r.MultasTotal += m.Monto
	}
	r.TotalPendiente = r.GastosPendientes + r.MultasTotal

	if s.uf != nil {
		uf, err := s.uf.Current(ctx)
		if err != nil {
			s.logger.Warn("UF unavailable for pagos", zap.Error(err))
		} else {
			r.UF = uf
			cargo := math.Round(d.CargoFijoUF * uf.ValueCLP)
			r.CargoFijoCLP = &cargo
		}
	}
	r.TotalPendienteFmt = utils.FormatCLP(r.TotalPendiente)
	return r, nil
}

// Checkout opens a Stripe checkout for one pending common expense of the user.
func (s *PaymentService) Checkout(ctx context.Context, sess *auth.Session, gastoComunID int) (*entities.CheckoutResponse, error) {
	if s.checkout == nil {
		return nil, apperr.ErrUnavailable("Pagos en línea no disponibles")
	}
	d, err := s.repo.GetDesglose(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}

	var gasto *entities.GastoComun
	for i := range d.GastosComunes {
		if d.GastosComunes[i].ID == gastoComunID {
			gasto = &d.GastosComunes[i]
			break
		}
	}
	if gasto == nil {
		return nil, apperr.ErrNotFound("Gasto común no encontrado")
	}
	if gasto.Estado == estadoPagado {
		return nil, apperr.ErrConflict("El gasto común ya está pagado")
	}

	desc := fmt.Sprintf("Gasto común %02d/%d", gasto.Mes, gasto.Ano)
	url, id, err := s.checkout.CreateCheckoutSession(CheckoutRequest{
		// CLP is a zero-decimal currency.
		Amount:        int64(math.Round(gasto.MontoTotal)),
		Currency:      "clp",
		Description:   desc,
		CustomerEmail: sess.Email,
		Metadata: map[string]string{
			"usuario_id":     strconv.Itoa(sess.UserID),
			"gasto_comun_id": strconv.Itoa(gasto.ID),
			"descripcion":    desc,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creando sesión de pago: %w", err)
	}
	s.logger.Info("checkout session created",
		zap.Int("usuario_id", sess.UserID), zap.Int("gasto_comun_id", gasto.ID), zap.String("session_id", id))
	return &entities.CheckoutResponse{URL: url, SessionID: id}, nil
}

func normalizeDesglose(d *entities.Desglose) {
	if d.Viviendas == nil {
		d.Viviendas = []int{}
	}
	if d.GastosComunes == nil {
		d.GastosComunes = []entities.GastoComun{}
	}
	if d.Multas == nil {
		d.Multas = []entities.Multa{}
	}
	if d.Reservas == nil {
		d.Reservas = []entities.ReservaPago{}
	}
}
