package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KardexEntryDTO fila del kardex en respuestas HTTP.
type KardexEntryDTO struct {
	ID            string           `json:"id"`
	InventoryID   string           `json:"inventory_id"`
	ProductID     string           `json:"product_id"`
	MaterialID    string           `json:"material_id,omitempty"`
	MovementType  string           `json:"movement_type"`
	Direction     string           `json:"direction"`
	Quantity      decimal.Decimal  `json:"quantity"`
	StockBefore   decimal.Decimal  `json:"stock_before"`
	StockAfter    decimal.Decimal  `json:"stock_after"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceKind string           `json:"reference_kind,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	Observations  string           `json:"observations,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CreatedBy     string           `json:"created_by"`
}

// KardexTypeTotalDTO total agregado por tipo de movimiento.
type KardexTypeTotalDTO struct {
	MovementType string          `json:"movement_type"`
	Direction    string          `json:"direction"`
	Quantity     decimal.Decimal `json:"quantity"`
	Entries      int             `json:"entries"`
}

// KardexProductTotalDTO total agregado por producto.
type KardexProductTotalDTO struct {
	ProductID string          `json:"product_id"`
	In        decimal.Decimal `json:"in"`
	Out       decimal.Decimal `json:"out"`
	Entries   int             `json:"entries"`
}

// KardexReportDTO informe de rango del kardex.
type KardexReportDTO struct {
	From       time.Time               `json:"from"`
	To         time.Time               `json:"to"`
	TotalIn    decimal.Decimal         `json:"total_in"`
	TotalOut   decimal.Decimal         `json:"total_out"`
	ByType     []KardexTypeTotalDTO    `json:"by_type"`
	ByProduct  []KardexProductTotalDTO `json:"by_product"`
	TotalRows  int                     `json:"total_rows"`
}
