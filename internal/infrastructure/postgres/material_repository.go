package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, inventory_id, product_id, lot, serial, expires_at,
	quantity_on_hand, quantity_reserved, unit_cost, ingested_at, deleted_at`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste una fila de material. QuantityReserved inicia en 0.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (id, inventory_id, product_id, lot, serial, expires_at,
			quantity_on_hand, quantity_reserved, unit_cost, ingested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.InventoryID, m.ProductID, m.Lot, m.Serial, m.ExpiresAt,
		m.QuantityOnHand, m.QuantityReserved, m.UnitCost, m.IngestedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID (excluye borrados lógicos).
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.get(id, "")
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Usar dentro de una
// transacción para toda mutación de cantidades.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *MaterialRepo) get(id, suffix string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 AND deleted_at IS NULL` + suffix
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// Update actualiza cantidades y vencimiento.
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials SET quantity_on_hand = $2, quantity_reserved = $3, expires_at = $4, unit_cost = $5
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.QuantityOnHand, m.QuantityReserved, m.ExpiresAt, m.UnitCost,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("cantidades fuera del invariante reservado <= en mano: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el borrado lógico. El kardex referencia la fila, así que
// nunca se borra físicamente.
func (r *MaterialRepo) SoftDelete(id string, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE materials SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveByProduct devuelve los lotes activos del producto en orden FIFO:
// vencimiento ascendente (NULL al final), luego fecha de ingreso ascendente.
func (r *MaterialRepo) ListActiveByProduct(productID string) ([]*entity.Material, error) {
	return r.listActive(productID, "")
}

// ListActiveByProductForUpdate igual que ListActiveByProduct pero bloqueando
// todas las filas, para salidas y ajustes multi-lote.
func (r *MaterialRepo) ListActiveByProductForUpdate(productID string) ([]*entity.Material, error) {
	return r.listActive(productID, " FOR UPDATE")
}

func (r *MaterialRepo) listActive(productID, suffix string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + `
		FROM materials WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY expires_at ASC NULLS LAST, ingested_at ASC` + suffix
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

// ListExpiring devuelve materiales del inventario con vencimiento antes del
// límite y stock en mano positivo.
func (r *MaterialRepo) ListExpiring(inventoryID string, before time.Time) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + `
		FROM materials
		WHERE inventory_id = $1 AND deleted_at IS NULL
		  AND expires_at IS NOT NULL AND expires_at <= $2 AND quantity_on_hand > 0
		ORDER BY expires_at ASC`
	rows, err := r.q.Query(context.Background(), query, inventoryID, before)
	if err != nil {
		return nil, fmt.Errorf("list expiring materials: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.InventoryID, &m.ProductID, &m.Lot, &m.Serial, &m.ExpiresAt,
		&m.QuantityOnHand, &m.QuantityReserved, &m.UnitCost, &m.IngestedAt, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMaterials(rows pgx.Rows) ([]*entity.Material, error) {
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
