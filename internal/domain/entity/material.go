package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material es una unidad física de stock de un producto consumible: un lote,
// un ítem serializado o una cantidad a granel. Invariante en todo momento:
// 0 ≤ QuantityReserved ≤ QuantityOnHand.
//
// Las filas nunca se borran físicamente una vez referenciadas por el kardex;
// DeletedAt marca el borrado lógico y las consultas por defecto lo excluyen.
type Material struct {
	ID               string
	InventoryID      string
	ProductID        string
	Lot              string
	Serial           string
	ExpiresAt        *time.Time
	QuantityOnHand   decimal.Decimal
	QuantityReserved decimal.Decimal
	UnitCost         decimal.Decimal
	IngestedAt       time.Time
	DeletedAt        *time.Time
}

// Available devuelve la cantidad disponible para reservar o consumir.
func (m *Material) Available() decimal.Decimal {
	return m.QuantityOnHand.Sub(m.QuantityReserved)
}

// InvariantOK reporta si la fila respeta 0 ≤ reservado ≤ en mano.
func (m *Material) InvariantOK() bool {
	return !m.QuantityReserved.IsNegative() && m.QuantityReserved.LessThanOrEqual(m.QuantityOnHand)
}
