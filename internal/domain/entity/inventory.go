package entity

import "time"

// Inventory agrupa el stock de una clínica. Cada producto, material y activo
// pertenece a exactamente un inventario; la autorización (dueño/invitados)
// la resuelve un colaborador externo vía el puerto de permisos.
type Inventory struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
