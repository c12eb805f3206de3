package repository

import "github.com/odontosys/inventario-api/internal/domain/entity"

// MaterialReservationRepository define el puerto de persistencia para
// reservas de material. Las reservas nunca se borran: cancelar es un estado
// terminal, no una eliminación.
type MaterialReservationRepository interface {
	Create(r *entity.MaterialReservation) error
	GetByID(id string) (*entity.MaterialReservation, error)
	GetForUpdate(id string) (*entity.MaterialReservation, error)
	Update(r *entity.MaterialReservation) error
	ListByAppointment(appointmentID string) ([]*entity.MaterialReservation, error)
	ListPendingByAppointment(appointmentID string) ([]*entity.MaterialReservation, error)
	ListByTreatmentPlan(treatmentPlanID string) ([]*entity.MaterialReservation, error)
}
