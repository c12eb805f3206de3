package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// DesiredMaterial cantidad deseada de un material para una cita.
type DesiredMaterial struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// DesiredAsset intervalo deseado de un activo para una cita.
type DesiredAsset struct {
	AssetID string
	StartAt time.Time
	EndAt   time.Time
}

// ReconcileInput entrada para conciliar los recursos de una cita contra el
// estado deseado. En modo estricto todo corre en una sola transacción y el
// primer fallo revierte la llamada completa; si no, cada acción corre por
// separado y los fallos se registran y se omiten.
type ReconcileInput struct {
	AppointmentID string
	Materials     []DesiredMaterial
	Assets        []DesiredAsset
	UserID        string
	Strict        bool
}

// ReconcileResult resumen de acciones aplicadas.
type ReconcileResult struct {
	Created   int
	Adjusted  int
	Cancelled int
	Failures  []string
}

// ReconciliarRecursosCita compara la lista deseada con las reservas PENDING
// existentes de la cita: cancela las que sobran, ajusta deltas de cantidad en
// las que siguen (validando disponibilidad para aumentos) y crea las nuevas.
func (uc *UseCase) ReconciliarRecursosCita(ctx context.Context, in ReconcileInput) (*ReconcileResult, error) {
	if in.AppointmentID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.appointments != nil {
		ok, err := uc.appointments.Exists(ctx, in.AppointmentID)
		if err != nil {
			return nil, fmt.Errorf("verificar cita: %w", err)
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
	}
	if in.Strict {
		result := &ReconcileResult{}
		err := uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
			return uc.reconcileIn(r, in, result, true)
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	// Best-effort: cada acción en su propia transacción; un fallo se anota y
	// se continúa con el resto.
	result := &ReconcileResult{}
	err := uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		return uc.reconcileIn(r, in, result, false)
	})
	if err != nil {
		// El modo best-effort no propaga fallos por ítem; un error aquí es de
		// infraestructura (la transacción no pudo ejecutarse).
		return nil, err
	}
	return result, nil
}

// reconcileIn aplica el diff dentro de una transacción. En modo estricto el
// primer fallo corta y revierte; en best-effort se anota en result.Failures y
// se sigue (las acciones ya aplicadas de esta pasada se conservan).
func (uc *UseCase) reconcileIn(r TxRepos, in ReconcileInput, result *ReconcileResult, strict bool) error {
	fail := func(err error) error {
		if strict {
			return err
		}
		uc.log.Warn().Err(err).Str("cita", in.AppointmentID).Msg("reserva omitida en conciliación")
		result.Failures = append(result.Failures, err.Error())
		return nil
	}

	if err := uc.reconcileMaterialsIn(r, in, result, fail); err != nil {
		return err
	}
	return uc.reconcileAssetsIn(r, in, result, fail)
}

func (uc *UseCase) reconcileMaterialsIn(r TxRepos, in ReconcileInput, result *ReconcileResult, fail func(error) error) error {
	existing, err := r.MaterialReservations.ListPendingByAppointment(in.AppointmentID)
	if err != nil {
		return err
	}
	byMaterial := map[string]*entity.MaterialReservation{}
	for _, res := range existing {
		byMaterial[res.MaterialID] = res
	}
	desired := map[string]decimal.Decimal{}
	for _, d := range in.Materials {
		desired[d.MaterialID] = desired[d.MaterialID].Add(d.Quantity)
	}

	// Cancelar las que ya no se desean.
	for materialID, res := range byMaterial {
		if _, ok := desired[materialID]; ok {
			continue
		}
		if err := cancelIn(r, res.ID); err != nil {
			if err = fail(err); err != nil {
				return err
			}
			continue
		}
		result.Cancelled++
	}

	// Ajustar o crear las deseadas. Las entradas repetidas de un material ya
	// están sumadas en desired; cada material se procesa una sola vez.
	done := map[string]bool{}
	for _, d := range in.Materials {
		if done[d.MaterialID] {
			continue
		}
		done[d.MaterialID] = true
		qty := desired[d.MaterialID]
		if res, ok := byMaterial[d.MaterialID]; ok {
			if res.QuantityReserved.Equal(qty) {
				continue
			}
			if err := adjustIn(r, res.ID, qty); err != nil {
				if err = fail(err); err != nil {
					return err
				}
				continue
			}
			result.Adjusted++
			continue
		}
		_, err := reserveIn(r, ReserveMaterialInput{
			MaterialID:    d.MaterialID,
			AppointmentID: in.AppointmentID,
			Kind:          entity.ReservationKindAppointment,
			Quantity:      qty,
			UserID:        in.UserID,
		}, time.Now())
		if err != nil {
			if err = fail(err); err != nil {
				return err
			}
			continue
		}
		result.Created++
	}
	return nil
}

// adjustIn cambia la cantidad retenida de una reserva PENDING, validando
// disponibilidad para los aumentos.
func adjustIn(r TxRepos, reservationID string, newQty decimal.Decimal) error {
	if !newQty.IsPositive() {
		return domain.ErrInvalidInput
	}
	res, err := r.MaterialReservations.GetForUpdate(reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	if res.State != entity.ReservationStatePending {
		return fmt.Errorf("reserva %s no está pendiente: %w", res.ID, domain.ErrConflict)
	}
	m, err := r.Materials.GetForUpdate(res.MaterialID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	delta := newQty.Sub(res.QuantityReserved)
	if delta.IsPositive() && m.Available().LessThan(delta) {
		return fmt.Errorf("material %s: disponible %s < aumento %s: %w",
			m.ID, m.Available(), delta, domain.ErrInsufficientStock)
	}
	m.QuantityReserved = m.QuantityReserved.Add(delta)
	if m.QuantityReserved.IsNegative() {
		m.QuantityReserved = decimal.Zero
	}
	if err := r.Materials.Update(m); err != nil {
		return err
	}
	res.QuantityReserved = newQty
	return r.MaterialReservations.Update(res)
}

func (uc *UseCase) reconcileAssetsIn(r TxRepos, in ReconcileInput, result *ReconcileResult, fail func(error) error) error {
	existing, err := r.AssetReservations.ListPendingByAppointment(in.AppointmentID)
	if err != nil {
		return err
	}
	byAsset := map[string]*entity.AssetReservation{}
	for _, res := range existing {
		byAsset[res.AssetID] = res
	}
	desired := map[string]DesiredAsset{}
	for _, d := range in.Assets {
		desired[d.AssetID] = d
	}

	for assetID, res := range byAsset {
		if _, ok := desired[assetID]; ok {
			continue
		}
		if err := cancelAssetIn(r, res.ID); err != nil {
			if err = fail(err); err != nil {
				return err
			}
			continue
		}
		result.Cancelled++
	}

	// Entradas repetidas de un activo colapsan a la última; cada activo se
	// procesa una sola vez (repetirlo chocaría contra su propia reserva).
	done := map[string]bool{}
	for _, d := range in.Assets {
		if done[d.AssetID] {
			continue
		}
		done[d.AssetID] = true
		want := desired[d.AssetID]
		if res, ok := byAsset[want.AssetID]; ok {
			if res.StartAt.Equal(want.StartAt) && res.EndAt.Equal(want.EndAt) {
				continue
			}
			if err := rescheduleAssetIn(r, res.ID, want.StartAt, want.EndAt); err != nil {
				if err = fail(err); err != nil {
					return err
				}
				continue
			}
			result.Adjusted++
			continue
		}
		_, err := reserveAssetIn(r, ReserveAssetInput{
			AssetID:       want.AssetID,
			AppointmentID: in.AppointmentID,
			StartAt:       want.StartAt,
			EndAt:         want.EndAt,
			UserID:        in.UserID,
		}, time.Now())
		if err != nil {
			if err = fail(err); err != nil {
				return err
			}
			continue
		}
		result.Created++
	}
	return nil
}

// rescheduleAssetIn mueve el intervalo de una reserva PENDING, verificando
// disponibilidad sin chocar con ella misma.
func rescheduleAssetIn(r TxRepos, reservationID string, startAt, endAt time.Time) error {
	res, err := r.AssetReservations.GetForUpdate(reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	if res.State != entity.ReservationStatePending {
		return fmt.Errorf("reserva de activo %s no está pendiente: %w", res.ID, domain.ErrConflict)
	}
	a, err := r.Assets.GetForUpdate(res.AssetID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	avail, err := checkAvailabilityIn(assetResLister{r.AssetReservations}, a, startAt, endAt, res.ID)
	if err != nil {
		return err
	}
	if !avail.Available {
		if len(avail.Conflicts) > 0 {
			return &DoubleBookingError{AssetID: a.ID, Conflicts: avail.Conflicts}
		}
		return fmt.Errorf("%s: %w", avail.Reason, domain.ErrInvalidInput)
	}
	res.StartAt = startAt
	res.EndAt = endAt
	return r.AssetReservations.Update(res)
}
