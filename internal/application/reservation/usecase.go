// Package reservation implementa el motor de reservas: retenciones de
// cantidad sobre materiales, reservas por intervalo de activos de uso
// exclusivo, su confirmación/cancelación y la conciliación por cita.
//
// Invariante de conservación: para todo material, en todo momento,
// 0 ≤ quantity_reserved ≤ quantity_on_hand. Toda mutación corre dentro de
// una transacción con la fila del material bloqueada (SELECT FOR UPDATE).
package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/application/ports"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
	"github.com/odontosys/inventario-api/pkg/logger"
	"github.com/odontosys/inventario-api/pkg/metrics"
)

// UseCase motor de reservas de materiales y activos.
type UseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	matResRepo   repository.MaterialReservationRepository
	assetRepo    repository.AssetRepository
	assetResRepo repository.AssetReservationRepository
	appointments ports.AppointmentService
	log          *logger.Logger
	metrics      *metrics.Metrics
}

// NewUseCase construye el motor. Los repositorios sueltos se usan solo para
// lecturas; toda escritura pasa por el TxRunner.
func NewUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	matResRepo repository.MaterialReservationRepository,
	assetRepo repository.AssetRepository,
	assetResRepo repository.AssetReservationRepository,
	appointments ports.AppointmentService,
	log *logger.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		matResRepo:   matResRepo,
		assetRepo:    assetRepo,
		assetResRepo: assetResRepo,
		appointments: appointments,
		log:          log,
		metrics:      m,
	}
}

// ReserveMaterialInput entrada para reservar cantidad de un material.
type ReserveMaterialInput struct {
	MaterialID      string
	AppointmentID   string
	TreatmentPlanID string
	Kind            string
	Quantity        decimal.Decimal
	UserID          string
}

func (in ReserveMaterialInput) validate() error {
	if in.MaterialID == "" || in.UserID == "" || !in.Quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	// Exactamente un destino: cita o plan de tratamiento.
	if (in.AppointmentID == "") == (in.TreatmentPlanID == "") {
		return domain.ErrInvalidInput
	}
	return nil
}

// ReservarParaCita retiene cantidad de un material contra una cita.
// Falla con ErrInsufficientStock si disponible = en_mano − reservado < cantidad.
func (uc *UseCase) ReservarParaCita(ctx context.Context, in ReserveMaterialInput) (*entity.MaterialReservation, error) {
	in.Kind = entity.ReservationKindAppointment
	in.TreatmentPlanID = ""
	if in.AppointmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.reserve(ctx, in)
}

// ReservarParaTratamiento retiene cantidad contra un plan de tratamiento.
// Kind debe ser TREATMENT_ONCE o TREATMENT_PER_VISIT.
func (uc *UseCase) ReservarParaTratamiento(ctx context.Context, in ReserveMaterialInput) (*entity.MaterialReservation, error) {
	if in.Kind != entity.ReservationKindTreatmentOnce && in.Kind != entity.ReservationKindTreatmentPerVisit {
		return nil, domain.ErrInvalidInput
	}
	in.AppointmentID = ""
	if in.TreatmentPlanID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.reserve(ctx, in)
}

func (uc *UseCase) reserve(ctx context.Context, in ReserveMaterialInput) (*entity.MaterialReservation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var created *entity.MaterialReservation
	err := uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		res, err := reserveIn(r, in, time.Now())
		if err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		uc.metrics.Reservations.WithLabelValues("material", "rechazada").Inc()
		return nil, err
	}
	uc.metrics.Reservations.WithLabelValues("material", "creada").Inc()
	return created, nil
}

// reserveIn crea la retención dentro de la transacción del caller.
func reserveIn(r TxRepos, in ReserveMaterialInput, now time.Time) (*entity.MaterialReservation, error) {
	m, err := r.Materials.GetForUpdate(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if m.Available().LessThan(in.Quantity) {
		return nil, fmt.Errorf("material %s: disponible %s < solicitado %s: %w",
			m.ID, m.Available(), in.Quantity, domain.ErrInsufficientStock)
	}
	m.QuantityReserved = m.QuantityReserved.Add(in.Quantity)
	if err := r.Materials.Update(m); err != nil {
		return nil, err
	}
	res := &entity.MaterialReservation{
		ID:               uuid.New().String(),
		MaterialID:       m.ID,
		Kind:             in.Kind,
		QuantityReserved: in.Quantity,
		State:            entity.ReservationStatePending,
		CreatedBy:        in.UserID,
		CreatedAt:        now,
	}
	if in.AppointmentID != "" {
		res.AppointmentID = &in.AppointmentID
	}
	if in.TreatmentPlanID != "" {
		res.TreatmentPlanID = &in.TreatmentPlanID
	}
	if err := r.MaterialReservations.Create(res); err != nil {
		return nil, err
	}
	return res, nil
}

// ConfirmarReserva confirma una reserva PENDING: libera la cantidad retenida
// y descuenta del stock en mano la cantidad confirmada (por defecto la
// reservada; el uso real puede diferir). Escribe la fila OUT del kardex.
// Re-confirmar o confirmar una cancelada es ErrConflict.
func (uc *UseCase) ConfirmarReserva(ctx context.Context, reservationID string, confirmedQty *decimal.Decimal, userID string) error {
	if reservationID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		return confirmIn(r, reservationID, confirmedQty, userID, time.Now())
	})
	if err != nil {
		uc.metrics.Reservations.WithLabelValues("material", "confirmacion_fallida").Inc()
		return err
	}
	uc.metrics.Reservations.WithLabelValues("material", "confirmada").Inc()
	return nil
}

func confirmIn(r TxRepos, reservationID string, confirmedQty *decimal.Decimal, userID string, now time.Time) error {
	res, err := r.MaterialReservations.GetForUpdate(reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	switch res.State {
	case entity.ReservationStateConfirmed:
		return fmt.Errorf("reserva %s ya confirmada: %w", res.ID, domain.ErrConflict)
	case entity.ReservationStateCancelled:
		return fmt.Errorf("reserva %s cancelada: %w", res.ID, domain.ErrConflict)
	}

	m, err := r.Materials.GetForUpdate(res.MaterialID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}

	qty := res.QuantityReserved
	if confirmedQty != nil {
		qty = *confirmedQty
	}
	if qty.IsNegative() {
		return domain.ErrInvalidInput
	}
	// La cantidad confirmada puede superar la reservada, pero nunca comerse
	// las retenciones de otras reservas: qty ≤ disponible + lo retenido aquí.
	usable := m.Available().Add(res.QuantityReserved)
	if usable.LessThan(qty) {
		return fmt.Errorf("material %s: utilizable %s < confirmado %s: %w",
			m.ID, usable, qty, domain.ErrInsufficientStock)
	}

	stockBefore := m.QuantityOnHand
	m.QuantityReserved = m.QuantityReserved.Sub(res.QuantityReserved)
	if m.QuantityReserved.IsNegative() {
		m.QuantityReserved = decimal.Zero
	}
	m.QuantityOnHand = m.QuantityOnHand.Sub(qty)
	if err := r.Materials.Update(m); err != nil {
		return err
	}

	res.State = entity.ReservationStateConfirmed
	res.QuantityConfirmed = &qty
	res.ConfirmedAt = &now
	if err := r.MaterialReservations.Update(res); err != nil {
		return err
	}

	// Nada consumido: la reserva queda confirmada sin fila de kardex porque
	// no hubo delta de stock que conciliar.
	if qty.IsZero() {
		return nil
	}
	return writeConsumptionEntry(r, m, res, qty, stockBefore, userID, now)
}

// writeConsumptionEntry escribe la fila OUT que concilia la confirmación.
func writeConsumptionEntry(r TxRepos, m *entity.Material, res *entity.MaterialReservation, qty, stockBefore decimal.Decimal, userID string, now time.Time) error {
	movType := entity.MovementTypeAppointmentConsume
	refKind, refID := entity.ReferenceKindAppointment, res.AppointmentID
	if res.TreatmentPlanID != nil {
		movType = entity.MovementTypeTreatmentConsume
		refKind, refID = entity.ReferenceKindTreatmentPlan, res.TreatmentPlanID
	}
	entry := &entity.KardexEntry{
		ID:            uuid.New().String(),
		InventoryID:   m.InventoryID,
		ProductID:     m.ProductID,
		MaterialID:    &m.ID,
		MovementType:  movType,
		Direction:     entity.DirectionOut,
		Quantity:      qty,
		StockBefore:   stockBefore,
		StockAfter:    stockBefore.Sub(qty),
		ReferenceKind: &refKind,
		ReferenceID:   refID,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	return r.Kardex.Create(entry)
}

// CancelarReserva libera la retención de una reserva PENDING. Es idempotente
// sobre CANCELLED; una reserva CONFIRMED no puede cancelarse (el stock ya se
// consumió) y devuelve ErrConflict.
func (uc *UseCase) CancelarReserva(ctx context.Context, reservationID, userID string) error {
	if reservationID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		return cancelIn(r, reservationID)
	})
	if err != nil {
		return err
	}
	uc.metrics.Reservations.WithLabelValues("material", "cancelada").Inc()
	return nil
}

func cancelIn(r TxRepos, reservationID string) error {
	res, err := r.MaterialReservations.GetForUpdate(reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	switch res.State {
	case entity.ReservationStateCancelled:
		return nil // idempotente
	case entity.ReservationStateConfirmed:
		return fmt.Errorf("reserva %s confirmada, el consumo no puede deshacerse: %w", res.ID, domain.ErrConflict)
	}

	m, err := r.Materials.GetForUpdate(res.MaterialID)
	if err != nil {
		return err
	}
	if m != nil {
		m.QuantityReserved = m.QuantityReserved.Sub(res.QuantityReserved)
		if m.QuantityReserved.IsNegative() {
			m.QuantityReserved = decimal.Zero
		}
		if err := r.Materials.Update(m); err != nil {
			return err
		}
	}
	res.State = entity.ReservationStateCancelled
	return r.MaterialReservations.Update(res)
}

// ReservasPorCita lista todas las reservas (materiales y activos) de una cita.
func (uc *UseCase) ReservasPorCita(ctx context.Context, appointmentID string) ([]*entity.MaterialReservation, []*entity.AssetReservation, error) {
	mats, err := uc.matResRepo.ListByAppointment(appointmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("reservas de materiales: %w", err)
	}
	assets, err := uc.assetResRepo.ListByAppointment(appointmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("reservas de activos: %w", err)
	}
	return mats, assets, nil
}

// ReservasPorTratamiento lista las reservas de material de un plan.
func (uc *UseCase) ReservasPorTratamiento(ctx context.Context, treatmentPlanID string) ([]*entity.MaterialReservation, error) {
	return uc.matResRepo.ListByTreatmentPlan(treatmentPlanID)
}
