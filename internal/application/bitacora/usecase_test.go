package bitacora_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/inventario-api/internal/application/bitacora"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

func TestNewEntry(t *testing.T) {
	e, err := bitacora.NewEntry(bitacora.EntryInput{
		InventoryID: "inv-1",
		AssetID:     "eq-1",
		StateBefore: entity.AssetStateAvailable,
		StateAfter:  entity.AssetStateInMaintenance,
		Motive:      "calibración anual",
		CreatedBy:   "dra-gomez",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestNewEntry_Invalidas(t *testing.T) {
	base := func() bitacora.EntryInput {
		return bitacora.EntryInput{
			InventoryID: "inv-1",
			AssetID:     "eq-1",
			StateBefore: entity.AssetStateAvailable,
			StateAfter:  entity.AssetStateInUse,
			CreatedBy:   "dra-gomez",
		}
	}

	in := base()
	in.StateAfter = in.StateBefore
	_, err := bitacora.NewEntry(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los estados deben ser distintos")

	in = base()
	in.StateAfter = "LIMBO"
	_, err = bitacora.NewEntry(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido")

	in = base()
	in.AssetID = ""
	_, err = bitacora.NewEntry(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base()
	in.CreatedBy = ""
	_, err = bitacora.NewEntry(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Consultas ───────────────────────────────────────────────────────────────

type memRepo struct {
	entries []*entity.BitacoraEntry
}

func (r *memRepo) Create(e *entity.BitacoraEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *memRepo) ListByAsset(assetID string, _ repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	var out []*entity.BitacoraEntry
	for _, e := range r.entries {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (r *memRepo) ListByInventory(string, repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	return r.entries, len(r.entries), nil
}

func (r *memRepo) ListRecent(_ string, limit int) ([]*entity.BitacoraEntry, error) {
	out := r.entries
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memRepo) ListRange(string, time.Time, time.Time) ([]*entity.BitacoraEntry, error) {
	return r.entries, nil
}

func transition(t *testing.T, assetID, before, after string) *entity.BitacoraEntry {
	t.Helper()
	e, err := bitacora.NewEntry(bitacora.EntryInput{
		InventoryID: "inv-1",
		AssetID:     assetID,
		StateBefore: before,
		StateAfter:  after,
		CreatedBy:   "dra-gomez",
	})
	require.NoError(t, err)
	return e
}

func TestHistorialPorActivo(t *testing.T) {
	repo := &memRepo{entries: []*entity.BitacoraEntry{
		transition(t, "eq-1", entity.AssetStateAvailable, entity.AssetStateInUse),
		transition(t, "eq-2", entity.AssetStateAvailable, entity.AssetStateInMaintenance),
		transition(t, "eq-1", entity.AssetStateInUse, entity.AssetStateAvailable),
	}}
	uc := bitacora.NewUseCase(repo)

	entries, total, err := uc.HistorialPorActivo(context.Background(), "eq-1", repository.BitacoraFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "eq-1", entries[0].AssetID)
}

func TestEstadisticas(t *testing.T) {
	repo := &memRepo{entries: []*entity.BitacoraEntry{
		transition(t, "eq-1", entity.AssetStateAvailable, entity.AssetStateInUse),
		transition(t, "eq-1", entity.AssetStateInUse, entity.AssetStateAvailable),
		transition(t, "eq-2", entity.AssetStateAvailable, entity.AssetStateInUse),
		transition(t, "eq-3", entity.AssetStateAvailable, entity.AssetStateInUse),
	}}
	uc := bitacora.NewUseCase(repo)

	stats, err := uc.Estadisticas(context.Background(), "inv-1", time.Time{}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalRows)
	require.NotEmpty(t, stats.ByStateAfter)
	assert.Equal(t, entity.AssetStateInUse, stats.ByStateAfter[0].Key, "el estado más frecuente va primero")
	assert.Equal(t, 3, stats.ByStateAfter[0].Count)

	require.Len(t, stats.ByAsset, 3)
	assert.Equal(t, "eq-1", stats.ByAsset[0].Key, "a igual conteo desempata el id")
	assert.Equal(t, 2, stats.ByAsset[0].Count)
}
