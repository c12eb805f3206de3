package reservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/inventario-api/internal/application/reservation"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/pkg/logger"
	"github.com/odontosys/inventario-api/pkg/metrics"
)

func TestPromoverReservasVencidas(t *testing.T) {
	f := newFixture()
	now := at(10, 0)
	window := time.Minute

	seedAsset(f, "eq-1", entity.AssetStateAvailable)
	seedAsset(f, "eq-2", entity.AssetStateAvailable)
	due := reserveAsset(t, f, "eq-1", "cita-1", now, now.Add(time.Hour))
	future := reserveAsset(t, f, "eq-2", "cita-2", now.Add(2*time.Hour), now.Add(3*time.Hour))

	promoted, err := f.uc.PromoverReservasVencidas(context.Background(), now, window)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	got, _ := f.assetRes.GetByID(due.ID)
	assert.Equal(t, entity.ReservationStateConfirmed, got.State)
	a, _ := f.assets.GetByID("eq-1")
	assert.Equal(t, entity.AssetStateInUse, a.State)

	require.Len(t, f.bitacora.entries, 1)
	assert.Equal(t, reservation.SweepUser, f.bitacora.entries[0].CreatedBy,
		"el barrido firma como sistema")

	untouched, _ := f.assetRes.GetByID(future.ID)
	assert.Equal(t, entity.ReservationStatePending, untouched.State,
		"una reserva fuera de la ventana no se promueve")
}

func TestLiberarActivosVencidos(t *testing.T) {
	f := newFixture()
	now := at(12, 0)
	window := time.Minute

	seedAsset(f, "eq-1", entity.AssetStateAvailable)
	res := reserveAsset(t, f, "eq-1", "cita-1", now.Add(-time.Hour), now)
	require.NoError(t, f.uc.ConfirmarReservaActivo(context.Background(), res.ID, "dra-gomez"))

	released, err := f.uc.LiberarActivosVencidos(context.Background(), now, window)
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	a, _ := f.assets.GetByID("eq-1")
	assert.Equal(t, entity.AssetStateAvailable, a.State)
}

// Si otra reserva CONFIRMED del mismo activo sigue vigente, el fin de una no
// libera el activo.
func TestLiberarActivosVencidos_OtraReservaVigente(t *testing.T) {
	f := newFixture()
	now := at(12, 0)
	window := time.Minute

	seedAsset(f, "eq-1", entity.AssetStateAvailable)
	ending := reserveAsset(t, f, "eq-1", "cita-1", now.Add(-time.Hour), now)
	ongoing := reserveAsset(t, f, "eq-1", "cita-2", now, now.Add(time.Hour))
	require.NoError(t, f.uc.ConfirmarReservaActivo(context.Background(), ending.ID, "dra-gomez"))
	require.NoError(t, f.uc.ConfirmarReservaActivo(context.Background(), ongoing.ID, "dra-gomez"))

	released, err := f.uc.LiberarActivosVencidos(context.Background(), now, window)
	require.NoError(t, err)
	assert.Equal(t, 0, released)

	a, _ := f.assets.GetByID("eq-1")
	assert.Equal(t, entity.AssetStateInUse, a.State)
}

func TestSweeperTick_PromueveYLibera(t *testing.T) {
	f := newFixture()
	now := at(10, 0)

	seedAsset(f, "eq-1", entity.AssetStateAvailable)
	seedAsset(f, "eq-2", entity.AssetStateAvailable)
	starting := reserveAsset(t, f, "eq-1", "cita-1", now, now.Add(time.Hour))
	ending := reserveAsset(t, f, "eq-2", "cita-2", now.Add(-time.Hour), now)
	require.NoError(t, f.uc.ConfirmarReservaActivo(context.Background(), ending.ID, "dra-gomez"))

	s := reservation.NewSweeper(f.uc, time.Minute, time.Minute, logger.Nop(), metrics.Nop())
	s.Tick(context.Background(), now)

	got, _ := f.assetRes.GetByID(starting.ID)
	assert.Equal(t, entity.ReservationStateConfirmed, got.State)
	a1, _ := f.assets.GetByID("eq-1")
	assert.Equal(t, entity.AssetStateInUse, a1.State)
	a2, _ := f.assets.GetByID("eq-2")
	assert.Equal(t, entity.AssetStateAvailable, a2.State)
}
