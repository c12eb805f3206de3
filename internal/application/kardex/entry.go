// Package kardex implementa el libro de movimientos de stock: construcción
// de filas inmutables con foto antes/después y su superficie de consulta.
package kardex

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// EntryInput datos para construir una fila del kardex. El llamador aporta
// StockBefore/StockAfter; los constructores verifican que el par sea
// internamente consistente con la cantidad.
type EntryInput struct {
	InventoryID   string
	ProductID     string
	MaterialID    *string
	MovementType  string
	Quantity      decimal.Decimal
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	Amount        *decimal.Decimal
	UnitCost      *decimal.Decimal
	ReferenceKind *string
	ReferenceID   *string
	Observations  string
	CreatedBy     string
	At            time.Time
}

// NewEntrada construye una fila IN. Exige stock_after = stock_before + quantity.
func NewEntrada(in EntryInput) (*entity.KardexEntry, error) {
	if !entity.InflowMovementType(in.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	return build(in, entity.DirectionIn)
}

// NewSalida construye una fila OUT. Exige stock_after = stock_before − quantity.
func NewSalida(in EntryInput) (*entity.KardexEntry, error) {
	if !entity.OutflowMovementType(in.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	return build(in, entity.DirectionOut)
}

func build(in EntryInput, direction string) (*entity.KardexEntry, error) {
	if in.InventoryID == "" || in.ProductID == "" || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	want := in.StockBefore.Add(in.Quantity)
	if direction == entity.DirectionOut {
		want = in.StockBefore.Sub(in.Quantity)
	}
	if !in.StockAfter.Equal(want) {
		return nil, domain.ErrInvalidInput
	}
	at := in.At
	if at.IsZero() {
		at = time.Now()
	}
	return &entity.KardexEntry{
		ID:            uuid.New().String(),
		InventoryID:   in.InventoryID,
		ProductID:     in.ProductID,
		MaterialID:    in.MaterialID,
		MovementType:  in.MovementType,
		Direction:     direction,
		Quantity:      in.Quantity,
		StockBefore:   in.StockBefore,
		StockAfter:    in.StockAfter,
		Amount:        in.Amount,
		UnitCost:      in.UnitCost,
		ReferenceKind: in.ReferenceKind,
		ReferenceID:   in.ReferenceID,
		Observations:  in.Observations,
		CreatedAt:     at,
		CreatedBy:     in.CreatedBy,
	}, nil
}
