package entities

const (
	GastoPendiente = "pendiente"
	GastoPagado    = "pagado"
)

type Gasto struct {
	ID       int64   `json:"id"`
	Concepto string  `json:"concepto"`
	Monto    float64 `json:"monto"`
	Fecha    string  `json:"fecha"`
	Estado   string  `json:"estado"`
}

type GastoInput struct {
	Concepto string  `json:"concepto"`
	Monto    float64 `json:"monto"`
	Fecha    string  `json:"fecha"`
	Estado   string  `json:"estado"`
}

type GastosResumen struct {
	Gastos     []Gasto `json:"gastos"`
	Total      float64 `json:"total"`
	Pendientes int     `json:"pendientes"`
	Pagados    int     `json:"pagados"`
}
