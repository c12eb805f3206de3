package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

var _ repository.MaterialReservationRepository = (*MaterialReservationRepo)(nil)

const materialReservationColumns = `id, material_id, appointment_id, treatment_plan_id, kind,
	quantity_reserved, quantity_confirmed, state, created_by, created_at, confirmed_at`

// MaterialReservationRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaterialReservationRepo struct {
	q Querier
}

// NewMaterialReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialReservationRepository(q Querier) *MaterialReservationRepo {
	return &MaterialReservationRepo{q: q}
}

// Create persiste una reserva de material.
func (r *MaterialReservationRepo) Create(res *entity.MaterialReservation) error {
	query := `
		INSERT INTO material_reservations (id, material_id, appointment_id, treatment_plan_id, kind,
			quantity_reserved, quantity_confirmed, state, created_by, created_at, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.MaterialID, res.AppointmentID, res.TreatmentPlanID, res.Kind,
		res.QuantityReserved, res.QuantityConfirmed, res.State, res.CreatedBy, res.CreatedAt, res.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("insert material reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *MaterialReservationRepo) GetByID(id string) (*entity.MaterialReservation, error) {
	return r.get(id, "")
}

// GetForUpdate bloquea la fila para confirmación/cancelación.
func (r *MaterialReservationRepo) GetForUpdate(id string) (*entity.MaterialReservation, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *MaterialReservationRepo) get(id, suffix string) (*entity.MaterialReservation, error) {
	query := `SELECT ` + materialReservationColumns + ` FROM material_reservations WHERE id = $1` + suffix
	res, err := scanMaterialReservation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material reservation: %w", err)
	}
	return res, nil
}

// Update actualiza estado y cantidad confirmada.
func (r *MaterialReservationRepo) Update(res *entity.MaterialReservation) error {
	query := `
		UPDATE material_reservations SET quantity_reserved = $2, quantity_confirmed = $3, state = $4, confirmed_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		res.ID, res.QuantityReserved, res.QuantityConfirmed, res.State, res.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("update material reservation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByAppointment lista todas las reservas de una cita.
func (r *MaterialReservationRepo) ListByAppointment(appointmentID string) ([]*entity.MaterialReservation, error) {
	return r.list(`WHERE appointment_id = $1`, appointmentID)
}

// ListPendingByAppointment lista las reservas PENDING de una cita.
func (r *MaterialReservationRepo) ListPendingByAppointment(appointmentID string) ([]*entity.MaterialReservation, error) {
	return r.list(`WHERE appointment_id = $1 AND state = 'PENDING'`, appointmentID)
}

// ListByTreatmentPlan lista todas las reservas de un plan de tratamiento.
func (r *MaterialReservationRepo) ListByTreatmentPlan(treatmentPlanID string) ([]*entity.MaterialReservation, error) {
	return r.list(`WHERE treatment_plan_id = $1`, treatmentPlanID)
}

func (r *MaterialReservationRepo) list(where string, arg any) ([]*entity.MaterialReservation, error) {
	query := `SELECT ` + materialReservationColumns + `
		FROM material_reservations ` + where + ` ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list material reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialReservation
	for rows.Next() {
		res, err := scanMaterialReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

func scanMaterialReservation(row pgx.Row) (*entity.MaterialReservation, error) {
	var res entity.MaterialReservation
	err := row.Scan(
		&res.ID, &res.MaterialID, &res.AppointmentID, &res.TreatmentPlanID, &res.Kind,
		&res.QuantityReserved, &res.QuantityConfirmed, &res.State, &res.CreatedBy, &res.CreatedAt, &res.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
