package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un movimiento del kardex.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// Tipos de movimiento de stock.
const (
	MovementTypePurchase             = "PURCHASE"
	MovementTypeGift                 = "GIFT"
	MovementTypeDonation             = "DONATION"
	MovementTypeOtherIncome          = "OTHER_INCOME"
	MovementTypeAppointmentConsume   = "APPOINTMENT_CONSUMPTION"
	MovementTypeTreatmentConsume     = "TREATMENT_CONSUMPTION"
	MovementTypeSale                 = "SALE"
	MovementTypeDiscard              = "DISCARD"
	MovementTypeTheft                = "THEFT"
	MovementTypeAdjustment           = "ADJUSTMENT"
)

// InflowMovementType reporta si el tipo corresponde a una entrada.
func InflowMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeGift, MovementTypeDonation, MovementTypeOtherIncome, MovementTypeAdjustment:
		return true
	}
	return false
}

// OutflowMovementType reporta si el tipo corresponde a una salida.
func OutflowMovementType(t string) bool {
	switch t {
	case MovementTypeAppointmentConsume, MovementTypeTreatmentConsume, MovementTypeSale,
		MovementTypeDiscard, MovementTypeTheft, MovementTypeAdjustment:
		return true
	}
	return false
}

// Tipos de referencia externa de un movimiento o bitácora.
const (
	ReferenceKindAppointment   = "APPOINTMENT"
	ReferenceKindTreatmentPlan = "TREATMENT_PLAN"
	ReferenceKindReservation   = "RESERVATION"
)

// KardexEntry es una fila inmutable del libro de movimientos de stock.
// StockBefore/StockAfter son la foto del stock total del producto antes y
// después de aplicar el movimiento; StockAfter − StockBefore debe coincidir
// con el delta real aplicado al stock cacheado (contrato de conciliación).
type KardexEntry struct {
	ID            string
	InventoryID   string
	ProductID     string
	MaterialID    *string
	MovementType  string
	Direction     string
	Quantity      decimal.Decimal
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	Amount        *decimal.Decimal
	UnitCost      *decimal.Decimal
	ReferenceKind *string
	ReferenceID   *string
	Observations  string
	CreatedAt     time.Time
	CreatedBy     string
}
