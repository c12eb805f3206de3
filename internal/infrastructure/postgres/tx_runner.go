package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odontosys/inventario-api/internal/application/inventory"
	"github.com/odontosys/inventario-api/internal/application/reservation"
)

// Ensure TxRunner implements inventory.TxRunner and reservation.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ reservation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInventory inicia una transacción, ejecuta fn con los repos del
// orquestador de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.TxRepos{
		Inventories: NewInventoryRepository(tx),
		Products:    NewProductRepository(tx),
		Materials:   NewMaterialRepository(tx),
		Assets:      NewAssetRepository(tx),
		Kardex:      NewKardexRepository(tx),
		Bitacora:    NewBitacoraRepository(tx),
		Audit:       NewAuditRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReservation inicia una transacción con los repos del motor de reservas.
func (r *TxRunner) RunReservation(ctx context.Context, fn func(repos reservation.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := reservation.TxRepos{
		Materials:            NewMaterialRepository(tx),
		MaterialReservations: NewMaterialReservationRepository(tx),
		Assets:               NewAssetRepository(tx),
		AssetReservations:    NewAssetReservationRepository(tx),
		Kardex:               NewKardexRepository(tx),
		Bitacora:             NewBitacoraRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
