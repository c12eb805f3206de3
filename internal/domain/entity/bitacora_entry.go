package entity

import "time"

// BitacoraEntry es una fila inmutable de la bitácora: una transición de
// estado de un activo, con su motivo y referencia opcional (cita, plan,
// reserva) que la originó.
type BitacoraEntry struct {
	ID            string
	InventoryID   string
	AssetID       string
	StateBefore   string
	StateAfter    string
	ReferenceKind *string
	ReferenceID   *string
	Motive        string
	CreatedAt     time.Time
	CreatedBy     string
}
