package entity

import "time"

// AssetReservation es una retención de uso exclusivo de un activo durante el
// intervalo semiabierto [StartAt, EndAt). Dos reservas activas (PENDING o
// CONFIRMED) sobre el mismo activo no pueden solaparse.
type AssetReservation struct {
	ID              string
	AssetID         string
	AppointmentID   *string
	TreatmentPlanID *string
	StartAt         time.Time
	EndAt           time.Time
	State           string
	CreatedBy       string
	CreatedAt       time.Time
	ConfirmedAt     *time.Time
}

// Active reporta si la reserva cuenta para conflictos de agenda.
func (r *AssetReservation) Active() bool {
	return r.State == ReservationStatePending || r.State == ReservationStateConfirmed
}
