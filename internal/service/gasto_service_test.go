package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/repository"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGastoTotals(t *testing.T) {
	svc := NewGastoService(repository.NewMemoryGastoRepository(repository.SeedGastos), testLogger)

	r, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, r.Gastos, 5)
	assert.Equal(t, 1594000.0, r.Total)
	assert.Equal(t, 2, r.Pendientes)
	assert.Equal(t, 3, r.Pagados)

	r, err = svc.List(context.Background(), entities.GastoPendiente)
	require.NoError(t, err)
	assert.Equal(t, 930000.0, r.Total)

	_, err = svc.List(context.Background(), "vencido")
	assert.True(t, apperr.IsValidation(err))
}

func TestGastoRoleGate(t *testing.T) {
	ctx := context.Background()
	in := entities.GastoInput{Concepto: "Jardinería", Monto: 70000, Fecha: "2025-10-01"}

	for _, role := range []auth.Role{auth.RoleConserje, auth.RoleResidente} {
		svc := NewGastoService(repository.NewMemoryGastoRepository(nil), testLogger)
		_, err := svc.Create(ctx, testSession(role), in)
		assert.Equal(t, http.StatusForbidden, apperr.StatusCode(err), role)
		assert.Equal(t, http.StatusForbidden, apperr.StatusCode(svc.Delete(ctx, testSession(role), 1)), role)
	}
	for _, role := range []auth.Role{auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleDirectiva} {
		svc := NewGastoService(repository.NewMemoryGastoRepository(nil), testLogger)
		g, err := svc.Create(ctx, testSession(role), in)
		require.NoError(t, err, role)
		assert.Equal(t, entities.GastoPendiente, g.Estado)
	}
}

func TestGastoValidation(t *testing.T) {
	svc := NewGastoService(repository.NewMemoryGastoRepository(nil), testLogger)
	sess := testSession(auth.RoleAdmin)
	ctx := context.Background()

	cases := map[string]entities.GastoInput{
		"sin concepto": {Concepto: "  ", Monto: 10, Fecha: "2025-10-01"},
		"monto cero":   {Concepto: "Agua", Monto: 0, Fecha: "2025-10-01"},
		"fecha":        {Concepto: "Agua", Monto: 10, Fecha: "01-10-2025"},
		"estado":       {Concepto: "Agua", Monto: 10, Fecha: "2025-10-01", Estado: "vencido"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, sess, in)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestGastoUpdateDelete(t *testing.T) {
	svc := NewGastoService(repository.NewMemoryGastoRepository(repository.SeedGastos), testLogger)
	sess := testSession(auth.RoleDirectiva)
	ctx := context.Background()

	g, err := svc.Update(ctx, sess, 2, entities.GastoInput{Concepto: "Mantenimiento Ascensores", Monto: 280000, Fecha: "2023-10-01", Estado: "Pagado"})
	require.NoError(t, err)
	assert.Equal(t, entities.GastoPagado, g.Estado)

	_, err = svc.Update(ctx, sess, 99, entities.GastoInput{Concepto: "x", Monto: 1, Fecha: "2023-10-01"})
	assert.Equal(t, http.StatusNotFound, apperr.StatusCode(err))

	require.NoError(t, svc.Delete(ctx, sess, 2))
	assert.Equal(t, http.StatusNotFound, apperr.StatusCode(svc.Delete(ctx, sess, 2)))
}
