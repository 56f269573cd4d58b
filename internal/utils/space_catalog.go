package utils

import (
	"condominio/internal/entities"
	"strings"
)

var spaceCatalog = []entities.Space{
	{
		ID:          entities.SpaceMulticancha,
		Nombre:      "Multicancha",
		Descripcion: "Cancha multiusos para fútbol, vóleibol, etc.",
		Icono:       "⚽",
		Color:       "blue",
	},
	{
		ID:          entities.SpaceQuincho,
		Nombre:      "Quincho",
		Descripcion: "Área de asados y reuniones",
		Icono:       "🍖",
		Color:       "orange",
	},
	{
		ID:          entities.SpaceSalaEventos,
		Nombre:      "Sala de Eventos",
		Descripcion: "Sala para reuniones y eventos",
		Icono:       "🎉",
		Color:       "purple",
	},
}

// Spaces returns a copy of the reservable spaces in display order.
func Spaces() []entities.Space {
	out := make([]entities.Space, len(spaceCatalog))
	copy(out, spaceCatalog)
	return out
}

// LookupSpace finds a space by id, ignoring case and surrounding spaces.
func LookupSpace(id string) (entities.Space, bool) {
	key := entities.SpaceID(strings.ToLower(strings.TrimSpace(id)))
	for _, s := range spaceCatalog {
		if s.ID == key {
			return s, true
		}
	}
	return entities.Space{}, false
}
