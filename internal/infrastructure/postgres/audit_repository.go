package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = `id, inventory_id, action, category, product_id, material_id, asset_id,
	before_snapshot, after_snapshot, motive, ip, user_agent, created_at, created_by`

// AuditRepo implementación sobre PostgreSQL (usable con pool o tx).
// Filas inmutables: solo inserción y lectura.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una fila de auditoría.
func (r *AuditRepo) Create(e *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, inventory_id, action, category, product_id, material_id, asset_id,
			before_snapshot, after_snapshot, motive, ip, user_agent, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.InventoryID, e.Action, e.Category, e.ProductID, e.MaterialID, e.AssetID,
		e.Before, e.After, e.Motive, e.IP, e.UserAgent, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Search busca en la auditoría del inventario con filtros combinables y
// total. Text busca texto libre dentro de las fotos JSON antes/después.
func (r *AuditRepo) Search(inventoryID string, f repository.AuditFilter) ([]*entity.AuditEntry, int, error) {
	where := ` WHERE inventory_id = $1`
	args := []any{inventoryID}
	pos := 2
	add := func(cond string, arg any) {
		where += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, arg)
		pos++
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.MaterialID != "" {
		add("material_id = $%d", f.MaterialID)
	}
	if f.AssetID != "" {
		add("asset_id = $%d", f.AssetID)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if f.UserID != "" {
		add("created_by = $%d", f.UserID)
	}
	if f.IP != "" {
		add("ip = $%d", f.IP)
	}
	if f.Text != "" {
		cond := fmt.Sprintf("(before_snapshot::text ILIKE '%%' || $%d || '%%' OR after_snapshot::text ILIKE '%%' || $%d || '%%')", pos, pos)
		where += " AND " + cond
		args = append(args, f.Text)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM audit_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	query := `SELECT ` + auditColumns + ` FROM audit_entries` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search audit entries: %w", err)
	}
	defer rows.Close()
	list, err := collectAuditEntries(rows)
	return list, total, err
}

// ListRange devuelve las filas del inventario en [from, to] en orden
// cronológico, para el informe anti-manipulación.
func (r *AuditRepo) ListRange(inventoryID string, from, to time.Time) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + `
		FROM audit_entries
		WHERE inventory_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, inventoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list audit range: %w", err)
	}
	defer rows.Close()
	return collectAuditEntries(rows)
}

func collectAuditEntries(rows pgx.Rows) ([]*entity.AuditEntry, error) {
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(
			&e.ID, &e.InventoryID, &e.Action, &e.Category, &e.ProductID, &e.MaterialID, &e.AssetID,
			&e.Before, &e.After, &e.Motive, &e.IP, &e.UserAgent, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
