// Package bitacora implementa el registro inmutable de transiciones de
// estado de activos y su superficie de consulta.
package bitacora

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// EntryInput datos de una transición de estado de activo.
type EntryInput struct {
	InventoryID   string
	AssetID       string
	StateBefore   string
	StateAfter    string
	ReferenceKind *string
	ReferenceID   *string
	Motive        string
	CreatedBy     string
	At            time.Time
}

// NewEntry construye una fila de bitácora. Los estados deben ser válidos y
// distintos entre sí.
func NewEntry(in EntryInput) (*entity.BitacoraEntry, error) {
	if in.InventoryID == "" || in.AssetID == "" || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidAssetState(in.StateBefore) || !entity.ValidAssetState(in.StateAfter) || in.StateBefore == in.StateAfter {
		return nil, domain.ErrInvalidInput
	}
	at := in.At
	if at.IsZero() {
		at = time.Now()
	}
	return &entity.BitacoraEntry{
		ID:            uuid.New().String(),
		InventoryID:   in.InventoryID,
		AssetID:       in.AssetID,
		StateBefore:   in.StateBefore,
		StateAfter:    in.StateAfter,
		ReferenceKind: in.ReferenceKind,
		ReferenceID:   in.ReferenceID,
		Motive:        in.Motive,
		CreatedAt:     at,
		CreatedBy:     in.CreatedBy,
	}, nil
}

// UseCase superficie de consulta de la bitácora. Las escrituras ocurren
// dentro de las transacciones que mutan el estado del activo.
type UseCase struct {
	repo repository.BitacoraRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.BitacoraRepository) *UseCase {
	return &UseCase{repo: repo}
}

// HistorialPorActivo lista las transiciones de un activo.
func (uc *UseCase) HistorialPorActivo(ctx context.Context, assetID string, f repository.BitacoraFilter) ([]dto.BitacoraEntryDTO, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	entries, total, err := uc.repo.ListByAsset(assetID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("bitácora por activo: %w", err)
	}
	return toDTOs(entries), total, nil
}

// HistorialPorInventario lista las transiciones de todos los activos del inventario.
func (uc *UseCase) HistorialPorInventario(ctx context.Context, inventoryID string, f repository.BitacoraFilter) ([]dto.BitacoraEntryDTO, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	entries, total, err := uc.repo.ListByInventory(inventoryID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("bitácora por inventario: %w", err)
	}
	return toDTOs(entries), total, nil
}

// EventosRecientes devuelve los últimos eventos del inventario.
func (uc *UseCase) EventosRecientes(ctx context.Context, inventoryID string, limit int) ([]dto.BitacoraEntryDTO, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := uc.repo.ListRecent(inventoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("eventos recientes: %w", err)
	}
	return toDTOs(entries), nil
}

// Estadisticas agrega las transiciones del rango por estado resultante y por activo.
func (uc *UseCase) Estadisticas(ctx context.Context, inventoryID string, from, to time.Time) (*dto.BitacoraStatsDTO, error) {
	entries, err := uc.repo.ListRange(inventoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("estadísticas de bitácora: %w", err)
	}
	stats := &dto.BitacoraStatsDTO{From: from, To: to, TotalRows: len(entries)}
	byState := map[string]int{}
	byAsset := map[string]int{}
	for _, e := range entries {
		byState[e.StateAfter]++
		byAsset[e.AssetID]++
	}
	stats.ByStateAfter = sortedCounts(byState)
	stats.ByAsset = sortedCounts(byAsset)
	return stats, nil
}

func sortedCounts(m map[string]int) []dto.CountDTO {
	out := make([]dto.CountDTO, 0, len(m))
	for k, n := range m {
		out = append(out, dto.CountDTO{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func toDTOs(entries []*entity.BitacoraEntry) []dto.BitacoraEntryDTO {
	out := make([]dto.BitacoraEntryDTO, 0, len(entries))
	for _, e := range entries {
		d := dto.BitacoraEntryDTO{
			ID:          e.ID,
			InventoryID: e.InventoryID,
			AssetID:     e.AssetID,
			StateBefore: e.StateBefore,
			StateAfter:  e.StateAfter,
			Motive:      e.Motive,
			CreatedAt:   e.CreatedAt,
			CreatedBy:   e.CreatedBy,
		}
		if e.ReferenceKind != nil {
			d.ReferenceKind = *e.ReferenceKind
		}
		if e.ReferenceID != nil {
			d.ReferenceID = *e.ReferenceID
		}
		out = append(out, d)
	}
	return out
}
