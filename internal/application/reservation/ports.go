package reservation

import (
	"context"

	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Materials            repository.MaterialRepository
	MaterialReservations repository.MaterialReservationRepository
	Assets               repository.AssetRepository
	AssetReservations    repository.AssetReservationRepository
	Kardex               repository.KardexRepository
	Bitacora             repository.BitacoraRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// reservas: toda mutación de cantidades corre bajo bloqueo de fila y
// Commit/Rollback.
type TxRunner interface {
	RunReservation(ctx context.Context, fn func(r TxRepos) error) error
}
