package repository

import (
	"time"

	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material.
// Las consultas excluyen por defecto las filas con borrado lógico.
type MaterialRepository interface {
	Create(m *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Usar dentro de una
	// transacción para toda mutación de cantidades.
	GetForUpdate(id string) (*entity.Material, error)
	Update(m *entity.Material) error
	SoftDelete(id string, at time.Time) error
	// ListActiveByProduct devuelve los lotes activos (no borrados) del
	// producto en orden FIFO: vencimiento ascendente (NULL al final), luego
	// fecha de ingreso ascendente.
	ListActiveByProduct(productID string) ([]*entity.Material, error)
	// ListActiveByProductForUpdate igual que ListActiveByProduct pero
	// bloqueando todas las filas, para salidas y ajustes multi-lote.
	ListActiveByProductForUpdate(productID string) ([]*entity.Material, error)
	// ListExpiring devuelve materiales del inventario con vencimiento antes
	// del límite y stock en mano positivo.
	ListExpiring(inventoryID string, before time.Time) ([]*entity.Material, error)
}
