package entities

// SpaceID identifies a reservable common space.
type SpaceID string

const (
	SpaceMulticancha SpaceID = "multicancha"
	SpaceQuincho     SpaceID = "quincho"
	SpaceSalaEventos SpaceID = "sala_eventos"
)

type Space struct {
	ID          SpaceID `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Icono       string  `json:"icono"`
	Color       string  `json:"color"`
}

// EspacioComun is the backend's record of a space, carrying pricing.
type EspacioComun struct {
	ID           int      `json:"id"`
	Nombre       string   `json:"nombre"`
	Descripcion  string   `json:"descripcion"`
	RequierePago bool     `json:"requiere_pago"`
	Precio       *float64 `json:"precio"`
}

type SpaceDetail struct {
	Space
	RequierePago bool     `json:"requiere_pago"`
	Precio       *float64 `json:"precio,omitempty"`
}
