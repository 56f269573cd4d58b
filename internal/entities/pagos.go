package entities

type GastoComun struct {
	ID          int     `json:"id"`
	ViviendaID  int     `json:"vivienda_id"`
	Mes         int     `json:"mes"`
	Ano         int     `json:"ano"`
	MontoTotal  float64 `json:"monto_total"`
	Estado      string  `json:"estado"`
	Vencimiento *string `json:"vencimiento"`
}

type Multa struct {
	ID            int     `json:"id"`
	ViviendaID    int     `json:"vivienda_id"`
	Monto         float64 `json:"monto"`
	Descripcion   string  `json:"descripcion"`
	FechaAplicada string  `json:"fecha_aplicada"`
}

type ReservaPago struct {
	ID         int     `json:"id"`
	MontoPago  float64 `json:"monto_pago"`
	EstadoPago string  `json:"estado_pago"`
	Inicio     string  `json:"inicio"`
	Fin        string  `json:"fin"`
}

// Desglose is the backend's fee breakdown for a resident.
type Desglose struct {
	Viviendas     []int         `json:"viviendas"`
	CargoFijoUF   float64       `json:"cargo_fijo_uf"`
	GastosComunes []GastoComun  `json:"gastos_comunes"`
	Multas        []Multa       `json:"multas"`
	Reservas      []ReservaPago `json:"reservas"`
}

type PagosResumen struct {
	Desglose
	UF                *UFValue `json:"uf,omitempty"`
	CargoFijoCLP      *float64 `json:"cargo_fijo_clp,omitempty"`
	GastosPendientes  float64  `json:"gastos_pendientes"`
	MultasTotal       float64  `json:"multas_total"`
	TotalPendiente    float64  `json:"total_pendiente"`
	TotalPendienteFmt string   `json:"total_pendiente_fmt"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PagoConfirmado is a completed Stripe checkout as reported by its webhook.
type PagoConfirmado struct {
	SessionID    string
	Email        string
	Nombre       string
	Descripcion  string
	MontoCLP     int64
	GastoComunID string
}
