package entities

// ReservationRequest is the create-reservation body. Times are local and
// carry no offset suffix.
type ReservationRequest struct {
	Espacio         SpaceID `json:"espacio"`
	FechaHoraInicio string  `json:"fecha_hora_inicio"`
	FechaHoraFin    string  `json:"fecha_hora_fin"`
}

type Reservation struct {
	ID              int     `json:"id"`
	EspacioComunID  int     `json:"espacio_comun_id"`
	UsuarioID       int     `json:"usuario_id"`
	FechaHoraInicio string  `json:"fecha_hora_inicio"`
	FechaHoraFin    string  `json:"fecha_hora_fin"`
	MontoPago       float64 `json:"monto_pago"`
	EstadoPago      string  `json:"estado_pago"`
	CreatedAt       string  `json:"created_at"`
	GoogleEventID   *string `json:"google_event_id,omitempty"`
}
