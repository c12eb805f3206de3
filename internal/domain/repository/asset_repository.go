package repository

import "github.com/odontosys/inventario-api/internal/domain/entity"

// AssetRepository define el puerto de persistencia para Asset.
type AssetRepository interface {
	Create(a *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	// GetForUpdate bloquea la fila para transiciones de estado y reservas.
	GetForUpdate(id string) (*entity.Asset, error)
	Update(a *entity.Asset) error
	ListByInventory(inventoryID string, limit, offset int) ([]*entity.Asset, int, error)
	// ListByInventoryAndStates devuelve los activos del inventario cuyo
	// estado está en la lista dada.
	ListByInventoryAndStates(inventoryID string, states []string) ([]*entity.Asset, error)
	// CountActiveByProduct cuenta las unidades del producto en estado no
	// terminal; es el "stock" de un producto FIXED_ASSET para el kardex.
	CountActiveByProduct(productID string) (int, error)
}
