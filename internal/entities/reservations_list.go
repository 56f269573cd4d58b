package entities

type ReservationListItem struct {
	ID              int     `json:"id"`
	Espacio         string  `json:"espacio"`
	FechaHoraInicio string  `json:"fecha_hora_inicio"`
	FechaHoraFin    string  `json:"fecha_hora_fin"`
	EstadoPago      string  `json:"estado_pago"`
	MontoPago       float64 `json:"monto_pago"`
}
