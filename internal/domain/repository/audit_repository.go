package repository

import (
	"time"

	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// AuditFilter filtros opcionales para buscar en la auditoría.
// Text busca texto libre dentro de las fotos JSON antes/después.
type AuditFilter struct {
	ProductID  string
	MaterialID string
	AssetID    string
	Action     string
	Category   string
	From       *time.Time
	To         *time.Time
	UserID     string
	IP         string
	Text       string
	Limit      int
	Offset     int
}

// AuditRepository define el puerto de persistencia para la auditoría
// general. Filas inmutables.
type AuditRepository interface {
	Create(e *entity.AuditEntry) error
	Search(inventoryID string, f AuditFilter) ([]*entity.AuditEntry, int, error)
	ListRange(inventoryID string, from, to time.Time) ([]*entity.AuditEntry, error)
}
