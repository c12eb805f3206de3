package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/odontosys/inventario-api/internal/domain/scheduling"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) scheduling.Interval {
	return scheduling.Interval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestInterval_Valid(t *testing.T) {
	assert.True(t, iv(9, 0, 10, 0).Valid())
	assert.False(t, iv(10, 0, 10, 0).Valid(), "duración cero no es válida")
	assert.False(t, iv(11, 0, 10, 0).Valid(), "fin antes del inicio no es válido")
}

// Reservas adyacentes no chocan: [09:00,10:00) y [10:00,11:00) comparten
// el instante 10:00 pero el intervalo es semiabierto.
func TestInterval_AdyacentesNoSolapan(t *testing.T) {
	a := iv(9, 0, 10, 0)
	b := iv(10, 0, 11, 0)
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestInterval_SolapeParcial(t *testing.T) {
	a := iv(9, 0, 10, 30)
	b := iv(10, 0, 11, 0)
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestInterval_Contenido(t *testing.T) {
	outer := iv(9, 0, 12, 0)
	inner := iv(10, 0, 11, 0)
	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}

func TestConflicts_OrdenaPorInicio(t *testing.T) {
	existing := []scheduling.Booking{
		{ReservationID: "r2", ReservedBy: "ana", Interval: iv(11, 0, 12, 0)},
		{ReservationID: "r1", ReservedBy: "luis", Interval: iv(9, 30, 10, 30)},
		{ReservationID: "r3", ReservedBy: "eva", Interval: iv(14, 0, 15, 0)},
	}

	got := scheduling.Conflicts(existing, iv(10, 0, 11, 30))

	assert.Len(t, got, 2, "solo r1 y r2 chocan con el pedido")
	assert.Equal(t, "r1", got[0].ReservationID)
	assert.Equal(t, "r2", got[1].ReservationID)
}

func TestConflicts_SinChoques(t *testing.T) {
	existing := []scheduling.Booking{
		{ReservationID: "r1", Interval: iv(8, 0, 9, 0)},
	}
	got := scheduling.Conflicts(existing, iv(9, 0, 10, 0))
	assert.Empty(t, got)
}

func TestBooking_StringIncluyeFechaYHoras(t *testing.T) {
	b := scheduling.Booking{Interval: iv(9, 0, 10, 30)}
	assert.Equal(t, "2026-03-10 de 09:00 a 10:30", b.String())
}
