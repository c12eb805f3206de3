package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

const kardexColumns = `id, inventory_id, product_id, material_id, movement_type, direction,
	quantity, stock_before, stock_after, amount, unit_cost, reference_kind, reference_id,
	observations, created_at, created_by`

// KardexRepo implementación sobre PostgreSQL (usable con pool o tx). Solo
// inserción y lectura: las filas del kardex son inmutables.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador del kardex. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// Create persiste una fila del kardex.
func (r *KardexRepo) Create(e *entity.KardexEntry) error {
	query := `
		INSERT INTO kardex_entries (id, inventory_id, product_id, material_id, movement_type, direction,
			quantity, stock_before, stock_after, amount, unit_cost, reference_kind, reference_id,
			observations, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.InventoryID, e.ProductID, e.MaterialID, e.MovementType, e.Direction,
		e.Quantity, e.StockBefore, e.StockAfter, e.Amount, e.UnitCost, e.ReferenceKind, e.ReferenceID,
		e.Observations, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert kardex entry: %w", err)
	}
	return nil
}

// ListByProduct lista el historial de un producto con filtros y total.
func (r *KardexRepo) ListByProduct(productID string, f repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	return r.listFiltered(`product_id = $1`, productID, f)
}

// ListByInventory lista el historial de un inventario con filtros y total.
func (r *KardexRepo) ListByInventory(inventoryID string, f repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	return r.listFiltered(`inventory_id = $1`, inventoryID, f)
}

func (r *KardexRepo) listFiltered(base string, baseArg any, f repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	where := ` WHERE ` + base
	args := []any{baseArg}
	pos := 2
	if f.MovementType != "" {
		where += fmt.Sprintf(" AND movement_type = $%d", pos)
		args = append(args, f.MovementType)
		pos++
	}
	if f.Direction != "" {
		where += fmt.Sprintf(" AND direction = $%d", pos)
		args = append(args, f.Direction)
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
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM kardex_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count kardex entries: %w", err)
	}

	query := `SELECT ` + kardexColumns + ` FROM kardex_entries` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list kardex entries: %w", err)
	}
	defer rows.Close()
	list, err := collectKardexEntries(rows)
	return list, total, err
}

// ListRange devuelve todas las filas del inventario en [from, to] para el
// informe agregado de rango, en orden cronológico.
func (r *KardexRepo) ListRange(inventoryID string, from, to time.Time) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + `
		FROM kardex_entries
		WHERE inventory_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, inventoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list kardex range: %w", err)
	}
	defer rows.Close()
	return collectKardexEntries(rows)
}

func collectKardexEntries(rows pgx.Rows) ([]*entity.KardexEntry, error) {
	var list []*entity.KardexEntry
	for rows.Next() {
		var e entity.KardexEntry
		if err := rows.Scan(
			&e.ID, &e.InventoryID, &e.ProductID, &e.MaterialID, &e.MovementType, &e.Direction,
			&e.Quantity, &e.StockBefore, &e.StockAfter, &e.Amount, &e.UnitCost, &e.ReferenceKind, &e.ReferenceID,
			&e.Observations, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan kardex entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
