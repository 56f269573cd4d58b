package repository

import (
	"condominio/internal/entities"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"
)

type PostgresGastoRepository struct {
	DB *sql.DB
}

func NewPostgresGastoRepository(db *sql.DB) *PostgresGastoRepository {
	return &PostgresGastoRepository{DB: db}
}

// SeedIfEmpty inserts the given expenses when the table has no rows.
func (r *PostgresGastoRepository) SeedIfEmpty(ctx context.Context, seed []entities.GastoInput) error {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM gastos`).Scan(&count); err != nil {
		return fmt.Errorf("error counting gastos: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, in := range seed {
		if _, err := r.Create(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresGastoRepository) List(ctx context.Context, estado string) ([]entities.Gasto, error) {
	query := `
	SELECT id, concepto, monto, TO_CHAR(fecha, 'YYYY-MM-DD'), estado
	FROM gastos
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if estado != "" {
		query += " AND estado = $" + strconv.Itoa(idx)
		args = append(args, estado)
		idx++
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying gastos: %w", err)
	}
	defer rows.Close()

	gastos := []entities.Gasto{}
	for rows.Next() {
		var g entities.Gasto
		if err := rows.Scan(&g.ID, &g.Concepto, &g.Monto, &g.Fecha, &g.Estado); err != nil {
			return nil, fmt.Errorf("error scanning gasto: %w", err)
		}
		gastos = append(gastos, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating gastos: %w", err)
	}
	return gastos, nil
}

func (r *PostgresGastoRepository) Create(ctx context.Context, in entities.GastoInput) (entities.Gasto, error) {
	g := entities.Gasto{Concepto: in.Concepto, Monto: in.Monto, Fecha: in.Fecha, Estado: in.Estado}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO gastos (concepto, monto, fecha, estado)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		in.Concepto, in.Monto, in.Fecha, in.Estado,
	).Scan(&g.ID)
	if err != nil {
		return entities.Gasto{}, wrapPQ("error inserting gasto", err)
	}
	return g, nil
}

func (r *PostgresGastoRepository) Update(ctx context.Context, id int64, in entities.GastoInput) (entities.Gasto, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE gastos
		SET concepto = $2, monto = $3, fecha = $4, estado = $5, updated_at = NOW()
		WHERE id = $1`,
		id, in.Concepto, in.Monto, in.Fecha, in.Estado,
	)
	if err != nil {
		return entities.Gasto{}, wrapPQ(fmt.Sprintf("error updating gasto %d", id), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.Gasto{}, ErrGastoNotFound
	}
	return entities.Gasto{ID: id, Concepto: in.Concepto, Monto: in.Monto, Fecha: in.Fecha, Estado: in.Estado}, nil
}

func (r *PostgresGastoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting gasto %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrGastoNotFound
	}
	return nil
}

// wrapPQ adds the constraint name to check violations so they read as input errors.
func wrapPQ(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "check_violation" {
		return fmt.Errorf("%s: %w: %s", msg, ErrInvalidGasto, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

var ErrInvalidGasto = errors.New("gasto inválido")
