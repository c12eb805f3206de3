package repository

import (
	"time"

	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory.
type InventoryRepository interface {
	Create(inv *entity.Inventory) error
	GetByID(id string) (*entity.Inventory, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Inventory, int, error)
	Update(inv *entity.Inventory) error
	SoftDelete(id string, at time.Time) error
}
