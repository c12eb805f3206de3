package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

var _ repository.BitacoraRepository = (*BitacoraRepo)(nil)

const bitacoraColumns = `id, inventory_id, asset_id, state_before, state_after,
	reference_kind, reference_id, motive, created_at, created_by`

// BitacoraRepo implementación sobre PostgreSQL (usable con pool o tx).
// Filas inmutables: solo inserción y lectura.
type BitacoraRepo struct {
	q Querier
}

// NewBitacoraRepository construye el adaptador de la bitácora. Pasar pool o tx (Querier).
func NewBitacoraRepository(q Querier) *BitacoraRepo {
	return &BitacoraRepo{q: q}
}

// Create persiste una transición de estado.
func (r *BitacoraRepo) Create(e *entity.BitacoraEntry) error {
	query := `
		INSERT INTO bitacora_entries (id, inventory_id, asset_id, state_before, state_after,
			reference_kind, reference_id, motive, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.InventoryID, e.AssetID, e.StateBefore, e.StateAfter,
		e.ReferenceKind, e.ReferenceID, e.Motive, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert bitacora entry: %w", err)
	}
	return nil
}

// ListByAsset lista la historia de un activo con filtros y total.
func (r *BitacoraRepo) ListByAsset(assetID string, f repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	return r.listFiltered(`asset_id = $1`, assetID, f)
}

// ListByInventory lista la historia del inventario con filtros y total.
func (r *BitacoraRepo) ListByInventory(inventoryID string, f repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	return r.listFiltered(`inventory_id = $1`, inventoryID, f)
}

func (r *BitacoraRepo) listFiltered(base string, baseArg any, f repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	where := ` WHERE ` + base
	args := []any{baseArg}
	pos := 2
	if f.StateAfter != "" {
		where += fmt.Sprintf(" AND state_after = $%d", pos)
		args = append(args, f.StateAfter)
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.UserID != "" {
		where += fmt.Sprintf(" AND created_by = $%d", pos)
		args = append(args, f.UserID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM bitacora_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bitacora entries: %w", err)
	}

	query := `SELECT ` + bitacoraColumns + ` FROM bitacora_entries` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bitacora entries: %w", err)
	}
	defer rows.Close()
	list, err := collectBitacoraEntries(rows)
	return list, total, err
}

// ListRecent devuelve los últimos eventos del inventario.
func (r *BitacoraRepo) ListRecent(inventoryID string, limit int) ([]*entity.BitacoraEntry, error) {
	query := `SELECT ` + bitacoraColumns + `
		FROM bitacora_entries WHERE inventory_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, inventoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent bitacora: %w", err)
	}
	defer rows.Close()
	return collectBitacoraEntries(rows)
}

// ListRange devuelve los eventos del inventario en [from, to] en orden cronológico.
func (r *BitacoraRepo) ListRange(inventoryID string, from, to time.Time) ([]*entity.BitacoraEntry, error) {
	query := `SELECT ` + bitacoraColumns + `
		FROM bitacora_entries
		WHERE inventory_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, inventoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bitacora range: %w", err)
	}
	defer rows.Close()
	return collectBitacoraEntries(rows)
}

func collectBitacoraEntries(rows pgx.Rows) ([]*entity.BitacoraEntry, error) {
	var list []*entity.BitacoraEntry
	for rows.Next() {
		var e entity.BitacoraEntry
		if err := rows.Scan(
			&e.ID, &e.InventoryID, &e.AssetID, &e.StateBefore, &e.StateAfter,
			&e.ReferenceKind, &e.ReferenceID, &e.Motive, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan bitacora entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
