package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

type GastoService struct {
	repo   repository.GastoRepository
	logger *zap.Logger
}

func NewGastoService(repo repository.GastoRepository, logger *zap.Logger) *GastoService {
	return &GastoService{repo: repo, logger: logger}
}

// List returns the expenses (optionally filtered by estado) and their totals.
func (s *GastoService) List(ctx context.Context, estado string) (*entities.GastosResumen, error) {
	if estado != "" && estado != entities.GastoPendiente && estado != entities.GastoPagado {
		return nil, apperr.Validation("Estado inválido")
	}
	gastos, err := s.repo.List(ctx, estado)
	if err != nil {
		return nil, err
	}
	r := &entities.GastosResumen{Gastos: gastos}
	if r.Gastos == nil {
		r.Gastos = []entities.Gasto{}
	}
	for _, g := range gastos {
		r.Total += g.Monto
		switch g.Estado {
		case entities.GastoPendiente:
			r.Pendientes++
		case entities.GastoPagado:
			r.Pagados++
		}
	}
	return r, nil
}

func (s *GastoService) Create(ctx context.Context, sess *auth.Session, in entities.GastoInput) (*entities.Gasto, error) {
	if err := s.authorize(sess); err != nil {
		return nil, err
	}
	in, err := validateGasto(in)
	if err != nil {
		return nil, err
	}
	g, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, mapGastoErr(err)
	}
	s.logger.Info("gasto created", zap.Int64("id", g.ID), zap.String("by", sess.Email))
	return &g, nil
}

func (s *GastoService) Update(ctx context.Context, sess *auth.Session, id int64, in entities.GastoInput) (*entities.Gasto, error) {
	if err := s.authorize(sess); err != nil {
		return nil, err
	}
	in, err := validateGasto(in)
	if err != nil {
		return nil, err
	}
	g, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapGastoErr(err)
	}
	s.logger.Info("gasto updated", zap.Int64("id", id), zap.String("by", sess.Email))
	return &g, nil
}

func (s *GastoService) Delete(ctx context.Context, sess *auth.Session, id int64) error {
	if err := s.authorize(sess); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapGastoErr(err)
	}
	s.logger.Info("gasto deleted", zap.Int64("id", id), zap.String("by", sess.Email))
	return nil
}

func (s *GastoService) authorize(sess *auth.Session) error {
	if sess == nil || !sess.CanManageGastos() {
		return apperr.ErrForbidden("No tienes permiso para gestionar gastos")
	}
	return nil
}

func validateGasto(in entities.GastoInput) (entities.GastoInput, error) {
	in.Concepto = strings.TrimSpace(in.Concepto)
	in.Estado = strings.TrimSpace(strings.ToLower(in.Estado))
	if in.Concepto == "" {
		return in, apperr.Validation("El concepto es obligatorio")
	}
	if in.Monto <= 0 {
		return in, apperr.Validation("El monto debe ser mayor a cero")
	}
	if _, err := time.Parse("2006-01-02", in.Fecha); err != nil {
		return in, apperr.Validation("La fecha debe tener formato AAAA-MM-DD")
	}
	switch in.Estado {
	case "":
		in.Estado = entities.GastoPendiente
	case entities.GastoPendiente, entities.GastoPagado:
	default:
		return in, apperr.Validation("Estado inválido")
	}
	return in, nil
}

func mapGastoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrGastoNotFound):
		return apperr.ErrNotFound("Gasto no encontrado")
	case errors.Is(err, repository.ErrInvalidGasto):
		return apperr.Validation("Gasto inválido")
	}
	return err
}
