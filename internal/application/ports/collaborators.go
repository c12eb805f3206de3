// Package ports declara las interfaces de los colaboradores externos que el
// motor de inventario consume: agenda de citas, finanzas y permisos. Las
// implementaciones viven fuera de este repositorio; aquí solo el contrato.
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentService expone lo que el motor necesita del módulo de citas.
type AppointmentService interface {
	// Exists verifica que la cita exista y pertenezca a la clínica.
	Exists(ctx context.Context, appointmentID string) (bool, error)
	// MarkMaterialsConfirmed marca la cita como "materiales confirmados".
	// Se invoca dentro de la transacción de confirmación en lote: si falla,
	// toda la confirmación se revierte.
	MarkMaterialsConfirmed(ctx context.Context, appointmentID string) error
}

// FinanceService recibe registros opcionales de ingreso/gasto generados por
// entradas de stock y ventas de activos. Llamadas best-effort tras el commit.
type FinanceService interface {
	RegisterExpense(ctx context.Context, inventoryID, concept string, amount decimal.Decimal, at time.Time) error
	RegisterIncome(ctx context.Context, inventoryID, concept string, amount decimal.Decimal, at time.Time) error
}

// PermissionService resuelve el acceso dueño/editor/lector por inventario.
type PermissionService interface {
	CanRead(ctx context.Context, userID, inventoryID string) (bool, error)
	CanWrite(ctx context.Context, userID, inventoryID string) (bool, error)
	// IsOwner aplica a operaciones destructivas (borrar inventario/producto).
	IsOwner(ctx context.Context, userID, inventoryID string) (bool, error)
}
