// Package scheduling contiene la lógica pura de solape de intervalos para la
// agenda de activos de uso exclusivo. Los intervalos son semiabiertos
// [Start, End): dos reservas adyacentes ([T1,T2) y [T2,T3)) no chocan.
package scheduling

import (
	"fmt"
	"sort"
	"time"
)

// Interval es un intervalo semiabierto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reporta si el intervalo tiene duración positiva.
func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// Overlaps aplica el test semiabierto: a.Start < b.End && a.End > b.Start.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// Booking es una reserva existente sobre un activo, con la identidad de quien
// la solicitó para componer el mensaje de conflicto.
type Booking struct {
	ReservationID string
	ReservedBy    string
	Interval      Interval
}

// String devuelve el rango en formato legible (HH:MM–HH:MM del día local).
func (b Booking) String() string {
	return fmt.Sprintf("%s de %s a %s",
		b.Interval.Start.Format("2006-01-02"),
		b.Interval.Start.Format("15:04"),
		b.Interval.End.Format("15:04"))
}

// Conflicts devuelve las reservas existentes que se solapan con el intervalo
// solicitado, ordenadas por inicio ascendente.
func Conflicts(existing []Booking, requested Interval) []Booking {
	var out []Booking
	for _, b := range existing {
		if b.Interval.Overlaps(requested) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Interval.Start.Before(out[j].Interval.Start)
	})
	return out
}
