package repository

import (
	"condominio/internal/entities"
	"context"
	"fmt"
	"net/http"
)

type PaymentRepository struct {
	client *BackendClient
}

func NewPaymentRepository(client *BackendClient) *PaymentRepository {
	return &PaymentRepository{client: client}
}

// GetDesglose returns the fee breakdown of a resident.
func (r *PaymentRepository) GetDesglose(ctx context.Context, token string, usuarioID int) (*entities.Desglose, error) {
	var d entities.Desglose
	err := r.client.do(ctx, backendCall{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/pagos/residente/%d", usuarioID),
		token:   token,
		failMsg: "Error al cargar pagos",
	}, &d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
