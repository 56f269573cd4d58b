package entities

type ReservationEmailData struct {
	UserName           string
	EspacioNombre      string
	ReservationID      int
	StartTimeFormatted string
	EndTimeFormatted   string
	Duracion           int
	CurrentYear        int
}
