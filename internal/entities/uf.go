package entities

// UFValue is the daily currency index in Chilean pesos.
type UFValue struct {
	ValueCLP float64 `json:"valor_clp"`
	Date     string  `json:"fecha"`
}
