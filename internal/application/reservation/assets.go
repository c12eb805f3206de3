package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/inventario-api/internal/application/bitacora"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/scheduling"
)

// DoubleBookingError un activo ya está reservado en un intervalo que se
// solapa con el pedido. Conflicts viene ordenado por inicio ascendente.
type DoubleBookingError struct {
	AssetID   string
	Conflicts []scheduling.Booking
}

func (e *DoubleBookingError) Error() string {
	first := e.Conflicts[0]
	return fmt.Sprintf("activo %s ya reservado por %s el %s", e.AssetID, first.ReservedBy, first)
}

// Unwrap permite errors.Is(err, domain.ErrConflict).
func (e *DoubleBookingError) Unwrap() error { return domain.ErrConflict }

// Availability resultado de la verificación de disponibilidad de un activo.
type Availability struct {
	Available bool
	// Reason explica la indisponibilidad sin conflicto (estado terminal).
	Reason    string
	Conflicts []scheduling.Booking
}

// VerificarDisponibilidadActivo aplica el test de solape semiabierto sobre
// las reservas activas (PENDING y CONFIRMED) del activo. excludeReservationID
// permite re-verificar una reserva existente sin chocar consigo misma.
func (uc *UseCase) VerificarDisponibilidadActivo(ctx context.Context, assetID string, startAt, endAt time.Time, excludeReservationID string) (*Availability, error) {
	a, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return checkAvailabilityIn(assetResLister{uc.assetResRepo}, a, startAt, endAt, excludeReservationID)
}

// assetResLister adapta el repositorio suelto o el de la tx al mismo uso.
type assetResLister struct {
	repo interface {
		ListActiveByAsset(assetID string) ([]*entity.AssetReservation, error)
	}
}

func checkAvailabilityIn(lister assetResLister, a *entity.Asset, startAt, endAt time.Time, excludeReservationID string) (*Availability, error) {
	requested := scheduling.Interval{Start: startAt, End: endAt}
	if !requested.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !a.Reservable() {
		return &Availability{Available: false, Reason: fmt.Sprintf("activo en estado terminal %s", a.State)}, nil
	}
	active, err := lister.repo.ListActiveByAsset(a.ID)
	if err != nil {
		return nil, err
	}
	var bookings []scheduling.Booking
	for _, res := range active {
		if res.ID == excludeReservationID {
			continue
		}
		bookings = append(bookings, scheduling.Booking{
			ReservationID: res.ID,
			ReservedBy:    reservationOwner(res),
			Interval:      scheduling.Interval{Start: res.StartAt, End: res.EndAt},
		})
	}
	conflicts := scheduling.Conflicts(bookings, requested)
	return &Availability{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

func reservationOwner(res *entity.AssetReservation) string {
	switch {
	case res.AppointmentID != nil:
		return "cita " + *res.AppointmentID
	case res.TreatmentPlanID != nil:
		return "tratamiento " + *res.TreatmentPlanID
	}
	return res.CreatedBy
}

// ReserveAssetInput entrada para reservar un activo por intervalo.
type ReserveAssetInput struct {
	AssetID         string
	AppointmentID   string
	TreatmentPlanID string
	StartAt         time.Time
	EndAt           time.Time
	UserID          string
}

// ReservarActivo crea una reserva PENDING si el intervalo está libre.
// Con solape devuelve *DoubleBookingError (Conflict) nombrando la reserva en
// conflicto más temprana; con activo en estado terminal, ErrInvalidInput.
func (uc *UseCase) ReservarActivo(ctx context.Context, in ReserveAssetInput) (*entity.AssetReservation, error) {
	if in.AssetID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if (in.AppointmentID == "") == (in.TreatmentPlanID == "") {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.AssetReservation
	err := uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		res, err := reserveAssetIn(r, in, time.Now())
		if err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		uc.metrics.Reservations.WithLabelValues("activo", "rechazada").Inc()
		return nil, err
	}
	uc.metrics.Reservations.WithLabelValues("activo", "creada").Inc()
	return created, nil
}

func reserveAssetIn(r TxRepos, in ReserveAssetInput, now time.Time) (*entity.AssetReservation, error) {
	a, err := r.Assets.GetForUpdate(in.AssetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	avail, err := checkAvailabilityIn(assetResLister{r.AssetReservations}, a, in.StartAt, in.EndAt, "")
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		if len(avail.Conflicts) > 0 {
			return nil, &DoubleBookingError{AssetID: a.ID, Conflicts: avail.Conflicts}
		}
		return nil, fmt.Errorf("%s: %w", avail.Reason, domain.ErrInvalidInput)
	}
	res := &entity.AssetReservation{
		ID:        uuid.New().String(),
		AssetID:   a.ID,
		StartAt:   in.StartAt,
		EndAt:     in.EndAt,
		State:     entity.ReservationStatePending,
		CreatedBy: in.UserID,
		CreatedAt: now,
	}
	if in.AppointmentID != "" {
		res.AppointmentID = &in.AppointmentID
	}
	if in.TreatmentPlanID != "" {
		res.TreatmentPlanID = &in.TreatmentPlanID
	}
	if err := r.AssetReservations.Create(res); err != nil {
		return nil, err
	}
	return res, nil
}

// ConfirmarReservaActivo pasa una reserva PENDING a CONFIRMED y el activo a
// IN_USE, con su fila de bitácora. Re-confirmar es ErrConflict.
func (uc *UseCase) ConfirmarReservaActivo(ctx context.Context, reservationID, userID string) error {
	if reservationID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		return confirmAssetIn(r, reservationID, userID, time.Now())
	})
}

func confirmAssetIn(r TxRepos, reservationID, userID string, now time.Time) error {
	res, err := r.AssetReservations.GetForUpdate(reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	switch res.State {
	case entity.ReservationStateConfirmed:
		return fmt.Errorf("reserva de activo %s ya confirmada: %w", res.ID, domain.ErrConflict)
	case entity.ReservationStateCancelled:
		return fmt.Errorf("reserva de activo %s cancelada: %w", res.ID, domain.ErrConflict)
	}

	a, err := r.Assets.GetForUpdate(res.AssetID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if entity.AssetStateTerminal(a.State) {
		return fmt.Errorf("activo %s en estado terminal %s: %w", a.ID, a.State, domain.ErrInvalidInput)
	}

	if a.State != entity.AssetStateInUse {
		if err := transitionAssetIn(r, a, entity.AssetStateInUse, res, "inicio de reserva", userID, now); err != nil {
			return err
		}
	}
	res.State = entity.ReservationStateConfirmed
	res.ConfirmedAt = &now
	return r.AssetReservations.Update(res)
}

// CancelarReservaActivo cancela una reserva PENDING de activo; idempotente
// sobre CANCELLED, ErrConflict sobre CONFIRMED.
func (uc *UseCase) CancelarReservaActivo(ctx context.Context, reservationID string) error {
	if reservationID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		return cancelAssetIn(r, reservationID)
	})
}

func cancelAssetIn(r TxRepos, reservationID string) error {
	res, err := r.AssetReservations.GetForUpdate(reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	switch res.State {
	case entity.ReservationStateCancelled:
		return nil
	case entity.ReservationStateConfirmed:
		return fmt.Errorf("reserva de activo %s confirmada: %w", res.ID, domain.ErrConflict)
	}
	res.State = entity.ReservationStateCancelled
	return r.AssetReservations.Update(res)
}

// LiberarActivo devuelve un activo IN_USE a AVAILABLE; en cualquier otro
// estado no hace nada.
func (uc *UseCase) LiberarActivo(ctx context.Context, assetID, userID string) error {
	if assetID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		a, err := r.Assets.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.State != entity.AssetStateInUse {
			return nil
		}
		return transitionAssetIn(r, a, entity.AssetStateAvailable, nil, "fin de reserva", userID, time.Now())
	})
}

// transitionAssetIn cambia el estado del activo escribiendo primero la fila
// de bitácora y luego la actualización (dentro de la misma transacción).
func transitionAssetIn(r TxRepos, a *entity.Asset, newState string, res *entity.AssetReservation, motive, userID string, now time.Time) error {
	in := bitacora.EntryInput{
		InventoryID: a.InventoryID,
		AssetID:     a.ID,
		StateBefore: a.State,
		StateAfter:  newState,
		Motive:      motive,
		CreatedBy:   userID,
		At:          now,
	}
	if res != nil {
		kind := entity.ReferenceKindReservation
		in.ReferenceKind = &kind
		in.ReferenceID = &res.ID
	}
	entry, err := bitacora.NewEntry(in)
	if err != nil {
		return err
	}
	if err := r.Bitacora.Create(entry); err != nil {
		return err
	}
	a.State = newState
	a.UpdatedAt = now
	return r.Assets.Update(a)
}

// ActivosDisponibles lista los activos del inventario sin reservas activas
// solapadas con [startAt, endAt) y en estado no terminal.
func (uc *UseCase) ActivosDisponibles(ctx context.Context, inventoryID string, startAt, endAt time.Time) ([]*entity.Asset, error) {
	requested := scheduling.Interval{Start: startAt, End: endAt}
	if !requested.Valid() {
		return nil, domain.ErrInvalidInput
	}
	assets, err := uc.assetRepo.ListByInventoryAndStates(inventoryID, []string{
		entity.AssetStateAvailable, entity.AssetStateInUse, entity.AssetStateInMaintenance,
	})
	if err != nil {
		return nil, err
	}
	var free []*entity.Asset
	for _, a := range assets {
		avail, err := checkAvailabilityIn(assetResLister{uc.assetResRepo}, a, startAt, endAt, "")
		if err != nil {
			return nil, err
		}
		if avail.Available {
			free = append(free, a)
		}
	}
	return free, nil
}
