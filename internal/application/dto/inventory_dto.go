package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRequest body para POST /api/inventario.
type CreateInventoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateInventoryRequest body para PUT /api/inventario/:id.
type UpdateInventoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateProductRequest body para POST /api/inventario/:id/productos.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`    // MATERIAL | FIXED_ASSET
	Subtype  string          `json:"subtype"` // LOT_TRACKED | SERIAL_TRACKED | UNLOTTED | INSTRUMENT | FURNITURE_EQUIPMENT
	MinStock decimal.Decimal `json:"min_stock"`
	Unit     string          `json:"unit"`
}

// UpdateProductRequest body para PUT /api/inventario/productos/:id.
type UpdateProductRequest struct {
	Name     string          `json:"name"`
	MinStock decimal.Decimal `json:"min_stock"`
	Unit     string          `json:"unit"`
	Active   *bool           `json:"active,omitempty"`
}

// MaterialInflowRequest body para POST /api/inventario/:id/materiales/entrada.
type MaterialInflowRequest struct {
	ProductID    string           `json:"product_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     decimal.Decimal  `json:"unit_cost"`
	MovementType string           `json:"movement_type"` // PURCHASE | GIFT | DONATION | OTHER_INCOME
	Lot          string           `json:"lot,omitempty"`
	Serial       string           `json:"serial,omitempty"`
	ExpiresAt    *time.Time       `json:"expires_at,omitempty"`
	Observations string           `json:"observations,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"` // gasto a registrar en finanzas; nil = quantity*unit_cost
}

// AssetInflowRequest body para POST /api/inventario/:id/activos/entrada.
type AssetInflowRequest struct {
	ProductID    string          `json:"product_id"`
	Cost         decimal.Decimal `json:"cost"`
	MovementType string          `json:"movement_type"`
	InternalCode string          `json:"internal_code,omitempty"`
	Serial       string          `json:"serial,omitempty"`
	Name         string          `json:"name,omitempty"`
	Location     string          `json:"location,omitempty"`
	PurchasedAt  *time.Time      `json:"purchased_at,omitempty"`
	Observations string          `json:"observations,omitempty"`
}

// MaterialOutflowRequest body para POST /api/inventario/:id/materiales/salida.
type MaterialOutflowRequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementType string          `json:"movement_type"` // SALE | DISCARD | THEFT | ...
	MaterialID   string          `json:"material_id,omitempty"`
	Observations string          `json:"observations,omitempty"`
}

// Modos de ajuste de stock.
const (
	AdjustModeIncrement = "INCREMENT"
	AdjustModeDecrement = "DECREMENT"
	AdjustModeSet       = "SET"
)

// AdjustStockRequest body para POST /api/inventario/:id/ajustar-stock.
// Motive es obligatorio: todo cambio de valor auditado debe explicar por qué.
type AdjustStockRequest struct {
	ProductID  string          `json:"product_id"`
	MaterialID string          `json:"material_id,omitempty"`
	Mode       string          `json:"mode"` // INCREMENT | DECREMENT | SET
	Quantity   decimal.Decimal `json:"quantity"`
	Motive     string          `json:"motive"`
}

// SellAssetRequest body para POST /api/inventario/activos/:id/vender.
type SellAssetRequest struct {
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	Observations string           `json:"observations,omitempty"`
}

// ChangeAssetStateRequest body para PUT /api/inventario/activos/:id/estado.
type ChangeAssetStateRequest struct {
	NewState string `json:"new_state"`
	Motive   string `json:"motive,omitempty"`
}

// StockLevelDTO stock agregado de un producto (suma de lotes activos).
type StockLevelDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	OnHand      decimal.Decimal `json:"on_hand"`
	Reserved    decimal.Decimal `json:"reserved"`
	Available   decimal.Decimal `json:"available"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// ExpiringMaterialDTO material próximo a vencer.
type ExpiringMaterialDTO struct {
	MaterialID string          `json:"material_id"`
	ProductID  string          `json:"product_id"`
	Lot        string          `json:"lot,omitempty"`
	Serial     string          `json:"serial,omitempty"`
	ExpiresAt  time.Time       `json:"expires_at"`
	OnHand     decimal.Decimal `json:"on_hand"`
}
