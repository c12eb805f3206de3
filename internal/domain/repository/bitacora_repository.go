package repository

import (
	"time"

	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// BitacoraFilter filtros opcionales para consultar la bitácora.
type BitacoraFilter struct {
	StateAfter string
	From       *time.Time
	To         *time.Time
	UserID     string
	Limit      int
	Offset     int
}

// BitacoraRepository define el puerto de persistencia para la bitácora de
// transiciones de estado de activos. Filas inmutables.
type BitacoraRepository interface {
	Create(e *entity.BitacoraEntry) error
	ListByAsset(assetID string, f BitacoraFilter) ([]*entity.BitacoraEntry, int, error)
	ListByInventory(inventoryID string, f BitacoraFilter) ([]*entity.BitacoraEntry, int, error)
	// ListRecent devuelve los últimos eventos del inventario.
	ListRecent(inventoryID string, limit int) ([]*entity.BitacoraEntry, error)
	ListRange(inventoryID string, from, to time.Time) ([]*entity.BitacoraEntry, error)
}
