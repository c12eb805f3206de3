package dto

import (
	"encoding/json"
	"time"
)

// AuditEntryDTO fila de auditoría en respuestas HTTP.
type AuditEntryDTO struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventory_id"`
	Action      string          `json:"action"`
	Category    string          `json:"category"`
	ProductID   string          `json:"product_id,omitempty"`
	MaterialID  string          `json:"material_id,omitempty"`
	AssetID     string          `json:"asset_id,omitempty"`
	Before      json.RawMessage `json:"before,omitempty"`
	After       json.RawMessage `json:"after,omitempty"`
	Motive      string          `json:"motive,omitempty"`
	IP          string          `json:"ip,omitempty"`
	UserAgent   string          `json:"user_agent,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
}

// CountDTO par clave → número de eventos.
type CountDTO struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// FlaggedEventDTO evento marcado en el informe anti-manipulación
// (borrados y ajustes de stock, siempre con su motivo).
type FlaggedEventDTO struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Motive    string    `json:"motive"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// AuditReportDTO informe anti-manipulación sobre un rango de fechas.
type AuditReportDTO struct {
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	ByAction   []CountDTO        `json:"by_action"`
	ByCategory []CountDTO        `json:"by_category"`
	ByUser     []CountDTO        `json:"by_user"`
	ByIP       []CountDTO        `json:"by_ip"`
	Flagged    []FlaggedEventDTO `json:"flagged"`
	TotalRows  int               `json:"total_rows"`
}
