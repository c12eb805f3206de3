package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, inventory_id, product_id, internal_code, serial, name, location,
	purchase_cost, purchased_at, state, created_at, updated_at`

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de persistencia para activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste una unidad de activo fijo.
func (r *AssetRepo) Create(a *entity.Asset) error {
	query := `
		INSERT INTO assets (id, inventory_id, product_id, internal_code, serial, name, location,
			purchase_cost, purchased_at, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.InventoryID, a.ProductID, a.InternalCode, a.Serial, a.Name, a.Location,
		a.PurchaseCost, a.PurchasedAt, a.State, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	return r.get(id, "")
}

// GetForUpdate bloquea la fila para transiciones de estado y reservas.
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *AssetRepo) get(id, suffix string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1` + suffix
	a, err := scanAsset(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// Update actualiza estado, ubicación y datos descriptivos.
func (r *AssetRepo) Update(a *entity.Asset) error {
	query := `
		UPDATE assets SET internal_code = $2, serial = $3, name = $4, location = $5, state = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		a.ID, a.InternalCode, a.Serial, a.Name, a.Location, a.State, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByInventory lista los activos del inventario con paginación y total.
func (r *AssetRepo) ListByInventory(inventoryID string, limit, offset int) ([]*entity.Asset, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM assets WHERE inventory_id = $1`, inventoryID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	query := `SELECT ` + assetColumns + `
		FROM assets WHERE inventory_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, inventoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	list, err := collectAssets(rows)
	return list, total, err
}

// ListByInventoryAndStates devuelve los activos del inventario cuyo estado
// está en la lista dada.
func (r *AssetRepo) ListByInventoryAndStates(inventoryID string, states []string) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + `
		FROM assets WHERE inventory_id = $1 AND state = ANY($2) ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, inventoryID, states)
	if err != nil {
		return nil, fmt.Errorf("list assets by state: %w", err)
	}
	defer rows.Close()
	return collectAssets(rows)
}

// CountActiveByProduct cuenta las unidades del producto en estado no terminal.
func (r *AssetRepo) CountActiveByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM assets WHERE product_id = $1 AND state NOT IN ($2, $3)`,
		productID, entity.AssetStateDiscarded, entity.AssetStateSold,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active assets: %w", err)
	}
	return count, nil
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.InventoryID, &a.ProductID, &a.InternalCode, &a.Serial, &a.Name, &a.Location,
		&a.PurchaseCost, &a.PurchasedAt, &a.State, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAssets(rows pgx.Rows) ([]*entity.Asset, error) {
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
