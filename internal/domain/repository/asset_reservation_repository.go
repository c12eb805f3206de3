package repository

import (
	"time"

	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// AssetReservationRepository define el puerto de persistencia para reservas
// de activo.
type AssetReservationRepository interface {
	Create(r *entity.AssetReservation) error
	GetByID(id string) (*entity.AssetReservation, error)
	GetForUpdate(id string) (*entity.AssetReservation, error)
	Update(r *entity.AssetReservation) error
	// ListActiveByAsset devuelve las reservas PENDING y CONFIRMED del activo.
	ListActiveByAsset(assetID string) ([]*entity.AssetReservation, error)
	ListByAppointment(appointmentID string) ([]*entity.AssetReservation, error)
	ListPendingByAppointment(appointmentID string) ([]*entity.AssetReservation, error)
	// ListPendingStartingBetween devuelve reservas PENDING cuyo inicio cae en
	// [from, to]; alimenta el barrido que promueve PENDING→CONFIRMED.
	ListPendingStartingBetween(from, to time.Time) ([]*entity.AssetReservation, error)
	// ListConfirmedEndingBetween devuelve reservas CONFIRMED cuyo fin cae en
	// [from, to]; alimenta el barrido que libera activos.
	ListConfirmedEndingBetween(from, to time.Time) ([]*entity.AssetReservation, error)
	// CountConfirmedEndingAfter cuenta reservas CONFIRMED del activo cuyo fin
	// es posterior al instante dado, excluyendo la reserva indicada.
	CountConfirmedEndingAfter(assetID string, t time.Time, excludeID string) (int, error)
}
