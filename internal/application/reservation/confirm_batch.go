package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/domain"
)

// MaterialUsage consumo real de una reserva al cerrar la cita. QuantityUsed
// nil confirma la cantidad reservada.
type MaterialUsage struct {
	ReservationID string
	QuantityUsed  *decimal.Decimal
}

// ConfirmAppointmentInput entrada de la confirmación en lote de una cita.
type ConfirmAppointmentInput struct {
	AppointmentID string
	Usages        []MaterialUsage
	UserID        string
}

// ConfirmarRecursosCita confirma en una sola transacción todos los recursos
// de una cita: cada reserva de material con su consumo real (una fila OUT de
// kardex por consumo), cada reserva de activo pendiente (activo a IN_USE con
// su fila de bitácora) y finalmente la marca "materiales confirmados" de la
// cita. Cualquier fallo revierte todas las escrituras del lote.
func (uc *UseCase) ConfirmarRecursosCita(ctx context.Context, in ConfirmAppointmentInput) error {
	if in.AppointmentID == "" || in.UserID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.RunReservation(ctx, func(r TxRepos) error {
		now := time.Now()
		for _, usage := range in.Usages {
			if err := confirmIn(r, usage.ReservationID, usage.QuantityUsed, in.UserID, now); err != nil {
				return fmt.Errorf("confirmar reserva %s: %w", usage.ReservationID, err)
			}
		}

		assetRes, err := r.AssetReservations.ListPendingByAppointment(in.AppointmentID)
		if err != nil {
			return err
		}
		for _, res := range assetRes {
			if err := confirmAssetIn(r, res.ID, in.UserID, now); err != nil {
				return fmt.Errorf("confirmar reserva de activo %s: %w", res.ID, err)
			}
		}

		// La marca de la cita participa de la transacción: si el módulo de
		// citas falla, todo el lote se revierte.
		if uc.appointments != nil {
			if err := uc.appointments.MarkMaterialsConfirmed(ctx, in.AppointmentID); err != nil {
				return fmt.Errorf("marcar cita %s: %w", in.AppointmentID, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.metrics.Reservations.WithLabelValues("cita", "confirmacion_fallida").Inc()
		return err
	}
	uc.metrics.Reservations.WithLabelValues("cita", "confirmada").Inc()
	return nil
}
