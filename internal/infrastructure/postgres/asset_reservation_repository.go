package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

var _ repository.AssetReservationRepository = (*AssetReservationRepo)(nil)

const assetReservationColumns = `id, asset_id, appointment_id, treatment_plan_id,
	start_at, end_at, state, created_by, created_at, confirmed_at`

// AssetReservationRepo implementación sobre PostgreSQL (usable con pool o tx).
type AssetReservationRepo struct {
	q Querier
}

// NewAssetReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetReservationRepository(q Querier) *AssetReservationRepo {
	return &AssetReservationRepo{q: q}
}

// Create persiste una reserva de activo.
func (r *AssetReservationRepo) Create(res *entity.AssetReservation) error {
	query := `
		INSERT INTO asset_reservations (id, asset_id, appointment_id, treatment_plan_id,
			start_at, end_at, state, created_by, created_at, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.AssetID, res.AppointmentID, res.TreatmentPlanID,
		res.StartAt, res.EndAt, res.State, res.CreatedBy, res.CreatedAt, res.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *AssetReservationRepo) GetByID(id string) (*entity.AssetReservation, error) {
	return r.get(id, "")
}

// GetForUpdate bloquea la fila para confirmación/cancelación.
func (r *AssetReservationRepo) GetForUpdate(id string) (*entity.AssetReservation, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *AssetReservationRepo) get(id, suffix string) (*entity.AssetReservation, error) {
	query := `SELECT ` + assetReservationColumns + ` FROM asset_reservations WHERE id = $1` + suffix
	res, err := scanAssetReservation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset reservation: %w", err)
	}
	return res, nil
}

// Update actualiza intervalo y estado.
func (r *AssetReservationRepo) Update(res *entity.AssetReservation) error {
	query := `
		UPDATE asset_reservations SET start_at = $2, end_at = $3, state = $4, confirmed_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		res.ID, res.StartAt, res.EndAt, res.State, res.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset reservation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveByAsset devuelve las reservas PENDING y CONFIRMED del activo.
func (r *AssetReservationRepo) ListActiveByAsset(assetID string) ([]*entity.AssetReservation, error) {
	return r.list(`WHERE asset_id = $1 AND state IN ('PENDING', 'CONFIRMED')`, assetID)
}

// ListByAppointment lista todas las reservas de activo de una cita.
func (r *AssetReservationRepo) ListByAppointment(appointmentID string) ([]*entity.AssetReservation, error) {
	return r.list(`WHERE appointment_id = $1`, appointmentID)
}

// ListPendingByAppointment lista las reservas PENDING de una cita.
func (r *AssetReservationRepo) ListPendingByAppointment(appointmentID string) ([]*entity.AssetReservation, error) {
	return r.list(`WHERE appointment_id = $1 AND state = 'PENDING'`, appointmentID)
}

func (r *AssetReservationRepo) list(where string, arg any) ([]*entity.AssetReservation, error) {
	query := `SELECT ` + assetReservationColumns + `
		FROM asset_reservations ` + where + ` ORDER BY start_at ASC`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list asset reservations: %w", err)
	}
	defer rows.Close()
	return collectAssetReservations(rows)
}

// ListPendingStartingBetween devuelve reservas PENDING cuyo inicio cae en
// [from, to]; alimenta el barrido que promueve PENDING a CONFIRMED.
func (r *AssetReservationRepo) ListPendingStartingBetween(from, to time.Time) ([]*entity.AssetReservation, error) {
	query := `SELECT ` + assetReservationColumns + `
		FROM asset_reservations
		WHERE state = 'PENDING' AND start_at >= $1 AND start_at <= $2
		ORDER BY start_at ASC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list pending starting: %w", err)
	}
	defer rows.Close()
	return collectAssetReservations(rows)
}

// ListConfirmedEndingBetween devuelve reservas CONFIRMED cuyo fin cae en
// [from, to]; alimenta el barrido que libera activos.
func (r *AssetReservationRepo) ListConfirmedEndingBetween(from, to time.Time) ([]*entity.AssetReservation, error) {
	query := `SELECT ` + assetReservationColumns + `
		FROM asset_reservations
		WHERE state = 'CONFIRMED' AND end_at >= $1 AND end_at <= $2
		ORDER BY end_at ASC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list confirmed ending: %w", err)
	}
	defer rows.Close()
	return collectAssetReservations(rows)
}

// CountConfirmedEndingAfter cuenta reservas CONFIRMED del activo cuyo fin es
// posterior al instante dado, excluyendo la reserva indicada.
func (r *AssetReservationRepo) CountConfirmedEndingAfter(assetID string, t time.Time, excludeID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM asset_reservations
		 WHERE asset_id = $1 AND state = 'CONFIRMED' AND end_at > $2 AND id <> $3`,
		assetID, t, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count confirmed ending after: %w", err)
	}
	return count, nil
}

func scanAssetReservation(row pgx.Row) (*entity.AssetReservation, error) {
	var res entity.AssetReservation
	err := row.Scan(
		&res.ID, &res.AssetID, &res.AppointmentID, &res.TreatmentPlanID,
		&res.StartAt, &res.EndAt, &res.State, &res.CreatedBy, &res.CreatedAt, &res.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func collectAssetReservations(rows pgx.Rows) ([]*entity.AssetReservation, error) {
	var list []*entity.AssetReservation
	for rows.Next() {
		res, err := scanAssetReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}
