package repository

import (
	"condominio/internal/entities"
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrGastoNotFound = errors.New("gasto no encontrado")

// GastoRepository stores the condominium's expenses. An empty estado lists all.
type GastoRepository interface {
	List(ctx context.Context, estado string) ([]entities.Gasto, error)
	Create(ctx context.Context, in entities.GastoInput) (entities.Gasto, error)
	Update(ctx context.Context, id int64, in entities.GastoInput) (entities.Gasto, error)
	Delete(ctx context.Context, id int64) error
}

// SeedGastos are the expenses a fresh store starts with.
var SeedGastos = []entities.GastoInput{
	{Concepto: "Limpieza Áreas Comunes", Monto: 450000, Fecha: "2023-10-01", Estado: entities.GastoPagado},
	{Concepto: "Mantenimiento Ascensores", Monto: 280000, Fecha: "2023-10-01", Estado: entities.GastoPendiente},
	{Concepto: "Electricidad Áreas Comunes", Monto: 125000, Fecha: "2023-10-01", Estado: entities.GastoPagado},
	{Concepto: "Agua Potable", Monto: 89000, Fecha: "2023-10-01", Estado: entities.GastoPagado},
	{Concepto: "Seguridad", Monto: 650000, Fecha: "2023-10-01", Estado: entities.GastoPendiente},
}

type MemoryGastoRepository struct {
	mu     sync.RWMutex
	nextID int64
	gastos map[int64]entities.Gasto
}

func NewMemoryGastoRepository(seed []entities.GastoInput) *MemoryGastoRepository {
	r := &MemoryGastoRepository{nextID: 1, gastos: make(map[int64]entities.Gasto)}
	for _, in := range seed {
		r.insert(in)
	}
	return r
}

func (r *MemoryGastoRepository) insert(in entities.GastoInput) entities.Gasto {
	g := entities.Gasto{
		ID:       r.nextID,
		Concepto: in.Concepto,
		Monto:    in.Monto,
		Fecha:    in.Fecha,
		Estado:   in.Estado,
	}
	r.gastos[g.ID] = g
	r.nextID++
	return g
}

func (r *MemoryGastoRepository) List(ctx context.Context, estado string) ([]entities.Gasto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]entities.Gasto, 0, len(r.gastos))
	for _, g := range r.gastos {
		if estado == "" || g.Estado == estado {
			list = append(list, g)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryGastoRepository) Create(ctx context.Context, in entities.GastoInput) (entities.Gasto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(in), nil
}

func (r *MemoryGastoRepository) Update(ctx context.Context, id int64, in entities.GastoInput) (entities.Gasto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gastos[id]; !ok {
		return entities.Gasto{}, ErrGastoNotFound
	}
	g := entities.Gasto{ID: id, Concepto: in.Concepto, Monto: in.Monto, Fecha: in.Fecha, Estado: in.Estado}
	r.gastos[id] = g
	return g, nil
}

func (r *MemoryGastoRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gastos[id]; !ok {
		return ErrGastoNotFound
	}
	delete(r.gastos, id)
	return nil
}
