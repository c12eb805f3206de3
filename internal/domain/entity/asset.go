package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un activo. DISCARDED y SOLD son terminales:
// un activo no puede reservarse ni reactivarse desde esos estados.
const (
	AssetStateAvailable     = "AVAILABLE"
	AssetStateInUse         = "IN_USE"
	AssetStateInMaintenance = "IN_MAINTENANCE"
	AssetStateDiscarded     = "DISCARDED"
	AssetStateSold          = "SOLD"
)

// ValidAssetState verifica que el valor sea un estado conocido.
func ValidAssetState(s string) bool {
	switch s {
	case AssetStateAvailable, AssetStateInUse, AssetStateInMaintenance, AssetStateDiscarded, AssetStateSold:
		return true
	}
	return false
}

// AssetStateTerminal reporta si el estado es terminal.
func AssetStateTerminal(s string) bool {
	return s == AssetStateDiscarded || s == AssetStateSold
}

// Asset es una unidad física individual de un producto FIXED_ASSET
// (instrumento, mueble o equipo) con su propio estado y ubicación.
type Asset struct {
	ID           string
	InventoryID  string
	ProductID    string
	InternalCode string
	Serial       string
	Name         string
	Location     string
	PurchaseCost decimal.Decimal
	PurchasedAt  *time.Time
	State        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reservable reporta si el activo admite nuevas reservas.
func (a *Asset) Reservable() bool {
	return !AssetStateTerminal(a.State)
}
