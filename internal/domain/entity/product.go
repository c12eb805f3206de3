package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de producto.
const (
	ProductKindMaterial   = "MATERIAL"    // consumible (se repone por lotes/series)
	ProductKindFixedAsset = "FIXED_ASSET" // activo fijo (unidades individuales con estado)
)

// Subtipos de material.
const (
	MaterialSubtypeLot      = "LOT_TRACKED"    // exige número de lote en la entrada
	MaterialSubtypeSerial   = "SERIAL_TRACKED" // exige número de serie en la entrada
	MaterialSubtypeUnlotted = "UNLOTTED"       // granel, sin lote ni serie
)

// Subtipos de activo fijo.
const (
	AssetSubtypeInstrument = "INSTRUMENT"
	AssetSubtypeFurniture  = "FURNITURE_EQUIPMENT"
)

// Product define qué puede almacenarse en un inventario: un consumible
// (MATERIAL) o un activo fijo (FIXED_ASSET). El stock real vive en las filas
// Material/Asset; aquí solo la definición estática y el umbral mínimo.
type Product struct {
	ID          string
	InventoryID string
	Name        string
	Kind        string
	Subtype     string
	MinStock    decimal.Decimal
	Unit        string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidSubtype verifica que el subtipo corresponda a la clase del producto.
func (p *Product) ValidSubtype() bool {
	switch p.Kind {
	case ProductKindMaterial:
		return p.Subtype == MaterialSubtypeLot || p.Subtype == MaterialSubtypeSerial || p.Subtype == MaterialSubtypeUnlotted
	case ProductKindFixedAsset:
		return p.Subtype == AssetSubtypeInstrument || p.Subtype == AssetSubtypeFurniture
	}
	return false
}
