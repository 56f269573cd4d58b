package service

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDesglose() *entities.Desglose {
	return &entities.Desglose{
		Viviendas:   []int{3},
		CargoFijoUF: 1.5,
		GastosComunes: []entities.GastoComun{
			{ID: 10, ViviendaID: 3, Mes: 9, Ano: 2025, MontoTotal: 85000, Estado: "pagado"},
			{ID: 11, ViviendaID: 3, Mes: 10, Ano: 2025, MontoTotal: 90000, Estado: "pendiente"},
		},
		Multas: []entities.Multa{
			{ID: 1, ViviendaID: 3, Monto: 20000, Descripcion: "Ruidos molestos", FechaAplicada: "2025-10-02"},
		},
	}
}

func TestPagosResumen(t *testing.T) {
	uf := &fakeUF{value: &entities.UFValue{ValueCLP: 20000, Date: "2025-10-25"}}
	svc := NewPaymentService(&fakeDesglose{desglose: sampleDesglose()}, uf, nil, testLogger)

	r, err := svc.Resumen(context.Background(), testSession(auth.RoleResidente))
	require.NoError(t, err)
	assert.Equal(t, 90000.0, r.GastosPendientes)
	assert.Equal(t, 20000.0, r.MultasTotal)
	assert.Equal(t, 110000.0, r.TotalPendiente)
	assert.Equal(t, "$110.000", r.TotalPendienteFmt)
	require.NotNil(t, r.CargoFijoCLP)
	assert.Equal(t, 30000.0, *r.CargoFijoCLP)
	assert.NotNil(t, r.Reservas)
}

func TestPagosResumenWithoutUF(t *testing.T) {
	uf := &fakeUF{err: errors.New("falta CMF_API_KEY")}
	svc := NewPaymentService(&fakeDesglose{desglose: sampleDesglose()}, uf, nil, testLogger)

	r, err := svc.Resumen(context.Background(), testSession(auth.RoleResidente))
	require.NoError(t, err)
	assert.Nil(t, r.UF)
	assert.Nil(t, r.CargoFijoCLP)
	assert.Equal(t, 110000.0, r.TotalPendiente)
}

func TestPagosCheckout(t *testing.T) {
	ctx := context.Background()
	sess := testSession(auth.RoleResidente)
	checkout := &fakeCheckout{}
	svc := NewPaymentService(&fakeDesglose{desglose: sampleDesglose()}, nil, checkout, testLogger)

	resp, err := svc.Checkout(ctx, sess, 11)
	require.NoError(t, err)
	assert.Equal(t, "cs_1", resp.SessionID)
	assert.Equal(t, int64(90000), checkout.last.Amount)
	assert.Equal(t, "clp", checkout.last.Currency)
	assert.Equal(t, "Gasto común 10/2025", checkout.last.Description)
	assert.Equal(t, "11", checkout.last.Metadata["gasto_comun_id"])
	assert.Equal(t, sess.Email, checkout.last.CustomerEmail)

	_, err = svc.Checkout(ctx, sess, 10)
	assert.Equal(t, http.StatusConflict, apperr.StatusCode(err))
	_, err = svc.Checkout(ctx, sess, 99)
	assert.Equal(t, http.StatusNotFound, apperr.StatusCode(err))

	disabled := NewPaymentService(&fakeDesglose{desglose: sampleDesglose()}, nil, nil, testLogger)
	_, err = disabled.Checkout(ctx, sess, 11)
	assert.Equal(t, http.StatusServiceUnavailable, apperr.StatusCode(err))
}
