package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva (de material o de activo).
// CANCELLED es terminal; CONFIRMED nunca puede cancelarse (el stock ya se consumió).
const (
	ReservationStatePending   = "PENDING"
	ReservationStateConfirmed = "CONFIRMED"
	ReservationStateCancelled = "CANCELLED"
)

// Orígenes de una reserva de material.
const (
	ReservationKindAppointment       = "APPOINTMENT"
	ReservationKindTreatmentOnce     = "TREATMENT_ONCE"
	ReservationKindTreatmentPerVisit = "TREATMENT_PER_VISIT"
)

// MaterialReservation es una retención de cantidad sobre un Material,
// asociada a una cita o a un plan de tratamiento. Mientras está PENDING la
// cantidad cuenta en QuantityReserved del material; al confirmar se descuenta
// del stock en mano (la cantidad confirmada puede diferir de la reservada).
type MaterialReservation struct {
	ID                string
	MaterialID        string
	AppointmentID     *string
	TreatmentPlanID   *string
	Kind              string
	QuantityReserved  decimal.Decimal
	QuantityConfirmed *decimal.Decimal
	State             string
	CreatedBy         string
	CreatedAt         time.Time
	ConfirmedAt       *time.Time
}
