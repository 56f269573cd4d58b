package service

import (
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/utils"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type LoaderStatus string

const (
	LoaderIdle    LoaderStatus = "idle"
	LoaderLoading LoaderStatus = "loading"
	LoaderError   LoaderStatus = "error"
	LoaderLoaded  LoaderStatus = "loaded"

	msgErrorDisponibilidad = "Error al obtener disponibilidad"
	msgSinDisponibilidad   = "No se pudo obtener la disponibilidad desde la API."
	msgHorarioInexistente  = "El horario seleccionado no existe"
)

type AvailabilityFetcher interface {
	GetAvailability(ctx context.Context, token string, espacio entities.SpaceID, q entities.AvailabilityQuery) (*entities.AvailabilityResponse, error)
}

type SlotView struct {
	Inicio        string `json:"inicio"`
	Fin           string `json:"fin"`
	Disponible    bool   `json:"disponible"`
	Hora          string `json:"hora"`
	Seleccionable bool   `json:"seleccionable"`
	Seleccionado  bool   `json:"seleccionado"`
}

type DateGroupView struct {
	Fecha  string     `json:"fecha"`
	Titulo string     `json:"titulo"`
	Slots  []SlotView `json:"slots"`
}

// AvailabilityView is what the slot step renders: one of loading, error
// (retryable) or loaded, where loaded may be explicitly empty.
type AvailabilityView struct {
	Espacio entities.SpaceID `json:"espacio"`
	Estado  LoaderStatus     `json:"estado"`
	Error   string           `json:"error,omitempty"`
	Vacio   bool             `json:"vacio"`
	Grupos  []DateGroupView  `json:"grupos"`
}

// AvailabilityLoader fetches and groups the slots of one space at a time.
// Opening another space or closing the loader cancels its in-flight fetches;
// among overlapping refreshes only the latest result is kept.
type AvailabilityLoader struct {
	fetcher AvailabilityFetcher
	logger  *zap.Logger

	mu         sync.Mutex
	espacio    entities.SpaceID
	query      entities.AvailabilityQuery
	scope      context.Context
	cancel     context.CancelFunc
	generation uint64
	status     LoaderStatus
	errMsg     string
	slots      []entities.Slot
	groups     []entities.DateGroup
	selected   string
}

func NewAvailabilityLoader(fetcher AvailabilityFetcher, logger *zap.Logger) *AvailabilityLoader {
	return &AvailabilityLoader{
		fetcher: fetcher,
		logger:  logger,
		status:  LoaderIdle,
	}
}

// Open points the loader at a space. A different space (or a new range)
// starts a fresh scope and drops everything from the previous one.
func (l *AvailabilityLoader) Open(espacio entities.SpaceID, q entities.AvailabilityQuery) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.scope != nil && l.espacio == espacio && sameQuery(l.query, q) {
		return
	}
	l.closeScope()
	l.scope, l.cancel = context.WithCancel(context.Background())
	l.espacio = espacio
	l.query = q
}

// Refresh fetches the slots of the open space, replacing the previous result
// set and selection. Fetch failures end up in the view; only a missing space
// or a cancellation is returned. A refresh cancelled through ctx leaves the
// previous result in place.
func (l *AvailabilityLoader) Refresh(ctx context.Context, token string) error {
	l.mu.Lock()
	if l.scope == nil {
		l.mu.Unlock()
		return apperr.Validation("Selecciona primero un espacio")
	}
	l.generation++
	gen := l.generation
	scope, espacio, q := l.scope, l.espacio, l.query
	prev := loaderResult{status: l.status, errMsg: l.errMsg, slots: l.slots, groups: l.groups, selected: l.selected}
	l.status = LoaderLoading
	l.errMsg = ""
	l.slots = nil
	l.groups = nil
	l.selected = ""
	l.mu.Unlock()

	fetchCtx, cancel := context.WithCancel(scope)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	resp, err := l.fetcher.GetAvailability(fetchCtx, token, espacio, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		// Superseded by a newer refresh, a new space or Close.
		return nil
	}
	switch {
	case err != nil && apperr.IsCanceled(err):
		// The caller went away. Put back the last result, or leave a
		// retryable state without a message when there is none.
		if prev.status == LoaderLoaded || prev.status == LoaderError {
			l.status, l.errMsg = prev.status, prev.errMsg
			l.slots, l.groups, l.selected = prev.slots, prev.groups, prev.selected
		} else {
			l.status = LoaderError
		}
		return err
	case err != nil:
		l.status = LoaderError
		l.errMsg = apperr.UserMessage(err, msgErrorDisponibilidad)
		l.logger.Warn("availability fetch failed",
			zap.String("espacio", string(espacio)), zap.Error(err))
	case resp == nil || resp.Slots == nil:
		l.status = LoaderError
		l.errMsg = msgSinDisponibilidad
	default:
		l.status = LoaderLoaded
		l.slots = resp.Slots
		l.groups = utils.GroupByDate(resp.Slots)
	}
	return nil
}

type loaderResult struct {
	status   LoaderStatus
	errMsg   string
	slots    []entities.Slot
	groups   []entities.DateGroup
	selected string
}

// Select marks the slot starting at inicio. Unavailable or unknown slots are
// refused without touching the current selection.
func (l *AvailabilityLoader) Select(inicio string) (entities.Slot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, slot := range l.slots {
		if slot.Inicio != inicio {
			continue
		}
		if !slot.Disponible {
			return entities.Slot{}, apperr.Validation(msgSlotNoDisponible)
		}
		l.selected = slot.Inicio
		return slot, nil
	}
	return entities.Slot{}, apperr.Validation(msgHorarioInexistente)
}

// ClearSelection forgets the selected slot but keeps the result set.
func (l *AvailabilityLoader) ClearSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selected = ""
}

func (l *AvailabilityLoader) Espacio() entities.SpaceID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.espacio
}

func (l *AvailabilityLoader) View() AvailabilityView {
	l.mu.Lock()
	defer l.mu.Unlock()
	view := AvailabilityView{
		Espacio: l.espacio,
		Estado:  l.status,
		Error:   l.errMsg,
		Vacio:   l.status == LoaderLoaded && len(l.slots) == 0,
		Grupos:  make([]DateGroupView, 0, len(l.groups)),
	}
	for _, g := range l.groups {
		gv := DateGroupView{
			Fecha:  g.Fecha,
			Titulo: utils.FormatDateTitle(g.Fecha),
			Slots:  make([]SlotView, 0, len(g.Slots)),
		}
		for _, s := range g.Slots {
			gv.Slots = append(gv.Slots, SlotView{
				Inicio:        s.Inicio,
				Fin:           s.Fin,
				Disponible:    s.Disponible,
				Hora:          utils.FormatHora(s.Inicio) + " - " + utils.FormatHora(s.Fin),
				Seleccionable: s.Disponible,
				Seleccionado:  l.selected != "" && s.Inicio == l.selected,
			})
		}
		view.Grupos = append(view.Grupos, gv)
	}
	return view
}

// Close cancels in-flight fetches and forgets the space.
func (l *AvailabilityLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeScope()
	l.espacio = ""
	l.query = entities.AvailabilityQuery{}
}

// closeScope must be called with l.mu held.
func (l *AvailabilityLoader) closeScope() {
	if l.cancel != nil {
		l.cancel()
	}
	l.scope, l.cancel = nil, nil
	l.generation++
	l.status = LoaderIdle
	l.errMsg = ""
	l.slots = nil
	l.groups = nil
	l.selected = ""
}

func sameQuery(a, b entities.AvailabilityQuery) bool {
	return a.DuracionMinutos == b.DuracionMinutos &&
		sameTime(a.FechaInicio, b.FechaInicio) &&
		sameTime(a.FechaFin, b.FechaFin)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
