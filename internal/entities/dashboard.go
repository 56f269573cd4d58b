package entities

type DashboardStat struct {
	Titulo  string `json:"titulo"`
	Valor   string `json:"valor"`
	Detalle string `json:"detalle"`
}

type Dashboard struct {
	Usuario string            `json:"usuario"`
	Rol     string            `json:"rol"`
	Stats   []DashboardStat   `json:"stats"`
	UF      *UFValue          `json:"uf,omitempty"`
	Errores map[string]string `json:"errores,omitempty"`
}
