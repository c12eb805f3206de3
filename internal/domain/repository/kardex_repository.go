package repository

import (
	"time"

	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// KardexFilter filtros opcionales para consultar el kardex.
type KardexFilter struct {
	MovementType string
	Direction    string
	From         *time.Time
	To           *time.Time
	UserID       string
	Limit        int
	Offset       int
}

// KardexRepository define el puerto de persistencia para el kardex.
// Solo inserción y lectura: las filas son inmutables.
type KardexRepository interface {
	Create(e *entity.KardexEntry) error
	ListByProduct(productID string, f KardexFilter) ([]*entity.KardexEntry, int, error)
	ListByInventory(inventoryID string, f KardexFilter) ([]*entity.KardexEntry, int, error)
	// ListRange devuelve todas las filas del inventario en [from, to] para
	// el informe agregado de rango.
	ListRange(inventoryID string, from, to time.Time) ([]*entity.KardexEntry, error)
}
