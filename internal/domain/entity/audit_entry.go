package entity

import (
	"encoding/json"
	"time"
)

// Categorías de auditoría.
const (
	AuditCategoryProduct    = "PRODUCT"
	AuditCategoryMaterial   = "MATERIAL"
	AuditCategoryAsset      = "ASSET"
	AuditCategoryAdjustment = "ADJUSTMENT"
	AuditCategoryInventory  = "INVENTORY"
)

// Acciones auditables.
const (
	AuditActionProductCreated    = "PRODUCT_CREATED"
	AuditActionProductUpdated    = "PRODUCT_UPDATED"
	AuditActionProductDeleted    = "PRODUCT_DELETED"
	AuditActionMaterialCreated   = "MATERIAL_CREATED"
	AuditActionMaterialUpdated   = "MATERIAL_UPDATED"
	AuditActionMaterialDeleted   = "MATERIAL_DELETED"
	AuditActionAssetCreated      = "ASSET_CREATED"
	AuditActionAssetUpdated      = "ASSET_UPDATED"
	AuditActionAssetStateChanged = "ASSET_STATE_CHANGED"
	AuditActionAssetSold         = "ASSET_SOLD"
	AuditActionStockAdjusted     = "STOCK_ADJUSTED"
	AuditActionInventoryCreated  = "INVENTORY_CREATED"
	AuditActionInventoryUpdated  = "INVENTORY_UPDATED"
	AuditActionInventoryDeleted  = "INVENTORY_DELETED"
)

// auditCategoryByAction es la tabla fija acción → categoría.
var auditCategoryByAction = map[string]string{
	AuditActionProductCreated:    AuditCategoryProduct,
	AuditActionProductUpdated:    AuditCategoryProduct,
	AuditActionProductDeleted:    AuditCategoryProduct,
	AuditActionMaterialCreated:   AuditCategoryMaterial,
	AuditActionMaterialUpdated:   AuditCategoryMaterial,
	AuditActionMaterialDeleted:   AuditCategoryMaterial,
	AuditActionAssetCreated:      AuditCategoryAsset,
	AuditActionAssetUpdated:      AuditCategoryAsset,
	AuditActionAssetStateChanged: AuditCategoryAsset,
	AuditActionAssetSold:         AuditCategoryAsset,
	AuditActionStockAdjusted:     AuditCategoryAdjustment,
	AuditActionInventoryCreated:  AuditCategoryInventory,
	AuditActionInventoryUpdated:  AuditCategoryInventory,
	AuditActionInventoryDeleted:  AuditCategoryInventory,
}

// AuditCategoryFor devuelve la categoría de una acción; "" si es desconocida.
func AuditCategoryFor(action string) string {
	return auditCategoryByAction[action]
}

// AuditFlagged reporta si la acción debe marcarse en el informe
// anti-manipulación (borrados y ajustes de stock llevan motivo obligatorio).
func AuditFlagged(action string) bool {
	switch action {
	case AuditActionProductDeleted, AuditActionMaterialDeleted, AuditActionInventoryDeleted, AuditActionStockAdjusted:
		return true
	}
	return false
}

// AuditEntry es una fila inmutable de la auditoría general: qué mutación
// ocurrió, sobre qué entidad, con foto JSON del antes y el después.
type AuditEntry struct {
	ID          string
	InventoryID string
	Action      string
	Category    string
	ProductID   *string
	MaterialID  *string
	AssetID     *string
	Before      json.RawMessage
	After       json.RawMessage
	Motive      string
	IP          string
	UserAgent   string
	CreatedAt   time.Time
	CreatedBy   string
}
