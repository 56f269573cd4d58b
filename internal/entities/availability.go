package entities

import "time"

// Slot is a time interval as returned by the backend. Inicio and Fin keep
// the backend's ISO-8601 text untouched.
type Slot struct {
	Inicio     string `json:"inicio"`
	Fin        string `json:"fin"`
	Disponible bool   `json:"disponible"`
}

type SelectedSlot struct {
	Slot
	Espacio  SpaceID `json:"espacio"`
	Duracion int     `json:"duracion"`
}

// DateGroup holds the slots sharing a calendar date, in server order.
type DateGroup struct {
	Fecha string `json:"fecha"`
	Slots []Slot `json:"slots"`
}

type AvailabilityQuery struct {
	DuracionMinutos int
	FechaInicio     *time.Time
	FechaFin        *time.Time
}

type AvailabilityResponse struct {
	Espacio     string `json:"espacio"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	Slots       []Slot `json:"slots"`
}
