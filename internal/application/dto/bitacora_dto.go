package dto

import "time"

// BitacoraEntryDTO fila de bitácora en respuestas HTTP.
type BitacoraEntryDTO struct {
	ID            string    `json:"id"`
	InventoryID   string    `json:"inventory_id"`
	AssetID       string    `json:"asset_id"`
	StateBefore   string    `json:"state_before"`
	StateAfter    string    `json:"state_after"`
	ReferenceKind string    `json:"reference_kind,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Motive        string    `json:"motive,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
}

// BitacoraStatsDTO agregados de la bitácora sobre un rango de fechas.
type BitacoraStatsDTO struct {
	From         time.Time  `json:"from"`
	To           time.Time  `json:"to"`
	ByStateAfter []CountDTO `json:"by_state_after"`
	ByAsset      []CountDTO `json:"by_asset"`
	TotalRows    int        `json:"total_rows"`
}
