package utils

import (
	"condominio/internal/entities"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// LocalISOLayout is the backend's wall-clock format: no offset suffix.
const LocalISOLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	LocalISOLayout + ".999999999",
	LocalISOLayout,
	"2006-01-02T15:04",
	"2006-01-02",
}

var (
	diasSemana = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	meses      = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// ParseTimestamp reads an ISO-8601 timestamp. Values without an offset are
// taken as local time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// SlotDuration returns fin - inicio in whole minutes, rounded.
func SlotDuration(inicio, fin string) (int, error) {
	start, err := ParseTimestamp(inicio)
	if err != nil {
		return 0, err
	}
	end, err := ParseTimestamp(fin)
	if err != nil {
		return 0, err
	}
	return int(math.Round(end.Sub(start).Minutes())), nil
}

// DateKey is the calendar-date part of a slot start: its first 10 characters.
func DateKey(inicio string) string {
	if len(inicio) < 10 {
		return inicio
	}
	return inicio[:10]
}

// GroupByDate partitions slots by DateKey. Groups come out sorted by key and
// each group keeps the input order.
func GroupByDate(slots []entities.Slot) []entities.DateGroup {
	index := make(map[string]int)
	var groups []entities.DateGroup
	for _, slot := range slots {
		key := DateKey(slot.Inicio)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, entities.DateGroup{Fecha: key})
		}
		groups[i].Slots = append(groups[i].Slots, slot)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Fecha < groups[b].Fecha })
	return groups
}

func FormatLocalISO(t time.Time) string {
	return t.In(time.Local).Format(LocalISOLayout)
}

// FormatHora renders "18:00". Unparseable input is returned as is.
func FormatHora(ts string) string {
	t, err := ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return t.In(time.Local).Format("15:04")
}

// FormatFecha renders "25 de octubre de 2025, 18:00".
func FormatFecha(ts string) string {
	t, err := ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	t = t.In(time.Local)
	return fmt.Sprintf("%d de %s de %d, %s", t.Day(), meses[t.Month()-1], t.Year(), t.Format("15:04"))
}

// FormatDateTitle renders a date key as "sábado, 25 de octubre de 2025".
func FormatDateTitle(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s, %d de %s de %d", diasSemana[t.Weekday()], t.Day(), meses[t.Month()-1], t.Year())
}
