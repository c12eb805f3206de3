package inventory

import (
	"context"

	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Inventories repository.InventoryRepository
	Products    repository.ProductRepository
	Materials   repository.MaterialRepository
	Assets      repository.AssetRepository
	Kardex      repository.KardexRepository
	Bitacora    repository.BitacoraRepository
	Audit       repository.AuditRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD. Cada
// operación de stock escribe su fila de catálogo, la del kardex y la de
// auditoría en la misma transacción: se confirman o se revierten juntas.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(r TxRepos) error) error
}
