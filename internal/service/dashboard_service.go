package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/utils"
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ReservationLister interface {
	MyReservations(ctx context.Context, sess *auth.Session) ([]entities.ReservationListItem, error)
}

// DashboardService builds the landing summary. Each section is loaded on its
// own; a failing section is reported in Errores and the rest still render.
type DashboardService struct {
	gastos   *GastoService
	pagos    *PaymentService
	reservas ReservationLister
	uf       UFProvider
	logger   *zap.Logger
	now      func() time.Time
}

func NewDashboardService(gastos *GastoService, pagos *PaymentService, reservas ReservationLister, uf UFProvider, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		gastos:   gastos,
		pagos:    pagos,
		reservas: reservas,
		uf:       uf,
		logger:   logger,
		now:      time.Now,
	}
}

type dashboardSection struct {
	name  string
	stats []entities.DashboardStat
	uf    *entities.UFValue
	err   error
}

func (s *DashboardService) Build(ctx context.Context, sess *auth.Session) *entities.Dashboard {
	loaders := []func(context.Context, *auth.Session) dashboardSection{s.ufSection}
	if sess.IsResidente() {
		loaders = append([]func(context.Context, *auth.Session) dashboardSection{s.saldoSection, s.reservasSection}, loaders...)
	} else {
		loaders = append([]func(context.Context, *auth.Session) dashboardSection{s.gastosSection}, loaders...)
	}

	sections := make([]dashboardSection, len(loaders))
	var wg sync.WaitGroup
	for i, load := range loaders {
		wg.Add(1)
		go func(i int, load func(context.Context, *auth.Session) dashboardSection) {
			defer wg.Done()
			sections[i] = load(ctx, sess)
		}(i, load)
	}
	wg.Wait()

	d := &entities.Dashboard{
		Usuario: sess.Name,
		Rol:     string(sess.Role),
		Stats:   []entities.DashboardStat{},
	}
	for _, sec := range sections {
		if sec.err != nil {
			if d.Errores == nil {
				d.Errores = make(map[string]string)
			}
			d.Errores[sec.name] = apperr.UserMessage(sec.err, "No disponible")
			s.logger.Warn("dashboard section failed", zap.String("section", sec.name), zap.Error(sec.err))
			continue
		}
		d.Stats = append(d.Stats, sec.stats...)
		if sec.uf != nil {
			d.UF = sec.uf
		}
	}
	return d
}

func (s *DashboardService) saldoSection(ctx context.Context, sess *auth.Session) dashboardSection {
	sec := dashboardSection{name: "mi_saldo"}
	r, err := s.pagos.Resumen(ctx, sess)
	if err != nil {
		sec.err = err
		return sec
	}
	sec.stats = []entities.DashboardStat{
		{Titulo: "Mi saldo", Valor: utils.FormatCLP(r.TotalPendiente), Detalle: "Gastos comunes y multas pendientes"},
		{Titulo: "Multas", Valor: strconv.Itoa(len(r.Multas)), Detalle: utils.FormatCLP(r.MultasTotal)},
	}
	return sec
}

func (s *DashboardService) reservasSection(ctx context.Context, sess *auth.Session) dashboardSection {
	sec := dashboardSection{name: "mis_reservas"}
	items, err := s.reservas.MyReservations(ctx, sess)
	if err != nil {
		sec.err = err
		return sec
	}
	now := s.now()
	upcoming := 0
	for _, it := range items {
		if t, err := utils.ParseTimestamp(it.FechaHoraInicio); err == nil && t.After(now) {
			upcoming++
		}
	}
	sec.stats = []entities.DashboardStat{
		{Titulo: "Mis reservas", Valor: strconv.Itoa(upcoming), Detalle: "Próximas reservas"},
	}
	return sec
}

func (s *DashboardService) gastosSection(ctx context.Context, sess *auth.Session) dashboardSection {
	sec := dashboardSection{name: "gastos"}
	r, err := s.gastos.List(ctx, "")
	if err != nil {
		sec.err = err
		return sec
	}
	sec.stats = []entities.DashboardStat{
		{Titulo: "Total gastos", Valor: utils.FormatCLP(r.Total), Detalle: strconv.Itoa(len(r.Gastos)) + " registros"},
		{Titulo: "Gastos pendientes", Valor: strconv.Itoa(r.Pendientes), Detalle: "Por pagar"},
		{Titulo: "Gastos pagados", Valor: strconv.Itoa(r.Pagados), Detalle: "Al día"},
	}
	return sec
}

func (s *DashboardService) ufSection(ctx context.Context, sess *auth.Session) dashboardSection {
	sec := dashboardSection{name: "uf"}
	uf, err := s.uf.Current(ctx)
	if err != nil {
		sec.err = err
		return sec
	}
	sec.uf = uf
	sec.stats = []entities.DashboardStat{
		{Titulo: "Valor UF", Valor: "$" + utils.FormatUF(uf.ValueCLP), Detalle: uf.Date},
	}
	return sec
}
