package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReserveMaterialRequest reserva de material contra una cita o un plan.
type ReserveMaterialRequest struct {
	MaterialID      string          `json:"material_id"`
	AppointmentID   string          `json:"appointment_id,omitempty"`
	TreatmentPlanID string          `json:"treatment_plan_id,omitempty"`
	Kind            string          `json:"kind,omitempty"` // TREATMENT_ONCE | TREATMENT_PER_VISIT (solo planes)
	Quantity        decimal.Decimal `json:"quantity"`
}

// ReserveAssetRequest reserva de activo por intervalo.
type ReserveAssetRequest struct {
	AssetID         string    `json:"asset_id"`
	AppointmentID   string    `json:"appointment_id,omitempty"`
	TreatmentPlanID string    `json:"treatment_plan_id,omitempty"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
}

// ConfirmMaterialReservationRequest body para confirmar una reserva suelta.
// Quantity nil confirma la cantidad reservada.
type ConfirmMaterialReservationRequest struct {
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
}

// CheckAssetAvailabilityRequest body para POST /api/verificar-disponibilidad-activo.
type CheckAssetAvailabilityRequest struct {
	AssetID              string    `json:"asset_id"`
	StartAt              time.Time `json:"start_at"`
	EndAt                time.Time `json:"end_at"`
	ExcludeReservationID string    `json:"exclude_reservation_id,omitempty"`
}

// AssetAvailabilityDTO resultado de la verificación de disponibilidad.
type AssetAvailabilityDTO struct {
	Available bool                 `json:"available"`
	Reason    string               `json:"reason,omitempty"`
	Conflicts []BookingConflictDTO `json:"conflicts,omitempty"`
}

// BookingConflictDTO reserva existente que choca con el intervalo pedido.
type BookingConflictDTO struct {
	ReservationID string    `json:"reservation_id"`
	ReservedBy    string    `json:"reserved_by"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
}

// DesiredMaterial elemento deseado en la reconciliación de una cita.
type DesiredMaterial struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// DesiredAsset activo deseado en la reconciliación de una cita.
type DesiredAsset struct {
	AssetID string    `json:"asset_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// ReconcileResourcesRequest body para PUT /api/citas/:id/reservas.
// En modo estricto el primer fallo aborta toda la llamada; si no, los fallos
// se registran y se continúa.
type ReconcileResourcesRequest struct {
	Materials []DesiredMaterial `json:"materials"`
	Assets    []DesiredAsset    `json:"assets"`
	Strict    bool              `json:"strict,omitempty"`
}

// MaterialUsage consumo real de una reserva al confirmar la cita.
type MaterialUsage struct {
	ReservationID string           `json:"reservation_id"`
	QuantityUsed  *decimal.Decimal `json:"quantity_used,omitempty"` // nil = cantidad reservada
}

// ConfirmAppointmentRequest body para POST /api/citas/:id/confirmar-materiales.
type ConfirmAppointmentRequest struct {
	Usages []MaterialUsage `json:"usages"`
}

// MaterialReservationDTO reserva de material en respuestas.
type MaterialReservationDTO struct {
	ID                string           `json:"id"`
	MaterialID        string           `json:"material_id"`
	AppointmentID     string           `json:"appointment_id,omitempty"`
	TreatmentPlanID   string           `json:"treatment_plan_id,omitempty"`
	Kind              string           `json:"kind"`
	QuantityReserved  decimal.Decimal  `json:"quantity_reserved"`
	QuantityConfirmed *decimal.Decimal `json:"quantity_confirmed,omitempty"`
	State             string           `json:"state"`
	CreatedBy         string           `json:"created_by"`
	CreatedAt         time.Time        `json:"created_at"`
	ConfirmedAt       *time.Time       `json:"confirmed_at,omitempty"`
}

// AssetReservationDTO reserva de activo en respuestas.
type AssetReservationDTO struct {
	ID              string     `json:"id"`
	AssetID         string     `json:"asset_id"`
	AppointmentID   string     `json:"appointment_id,omitempty"`
	TreatmentPlanID string     `json:"treatment_plan_id,omitempty"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           time.Time  `json:"end_at"`
	State           string     `json:"state"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
}

// ReconcileResultDTO resumen de una reconciliación best-effort.
type ReconcileResultDTO struct {
	Created   int      `json:"created"`
	Adjusted  int      `json:"adjusted"`
	Cancelled int      `json:"cancelled"`
	Failures  []string `json:"failures,omitempty"`
}

// AvailableAssetDTO activo libre en un rango de fechas.
type AvailableAssetDTO struct {
	AssetID      string `json:"asset_id"`
	ProductID    string `json:"product_id"`
	Name         string `json:"name,omitempty"`
	InternalCode string `json:"internal_code,omitempty"`
	State        string `json:"state"`
}
