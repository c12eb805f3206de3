// Package stock contiene la planificación pura de consumo FIFO sobre los
// lotes de un producto: vencimiento ascendente primero (sin vencimiento al
// final), luego fecha de ingreso ascendente.
package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/domain"
)

// Lot es la vista mínima de un material para planificar el consumo.
type Lot struct {
	MaterialID string
	ExpiresAt  *time.Time
	IngestedAt time.Time
	Available  decimal.Decimal
}

// Draw indica cuánto consumir de un material concreto.
type Draw struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// SortFIFO ordena los lotes en el orden de consumo.
func SortFIFO(lots []Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		switch {
		case a.ExpiresAt != nil && b.ExpiresAt != nil && !a.ExpiresAt.Equal(*b.ExpiresAt):
			return a.ExpiresAt.Before(*b.ExpiresAt)
		case a.ExpiresAt != nil && b.ExpiresAt == nil:
			return true
		case a.ExpiresAt == nil && b.ExpiresAt != nil:
			return false
		}
		return a.IngestedAt.Before(b.IngestedAt)
	})
}

// PlanDepletion reparte la cantidad solicitada entre los lotes en orden FIFO.
// Si el disponible agregado no alcanza devuelve ErrInsufficientStock y ningún
// consumo parcial (todo o nada).
func PlanDepletion(lots []Lot, quantity decimal.Decimal) ([]Draw, error) {
	if !quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.Available)
	}
	if total.LessThan(quantity) {
		return nil, domain.ErrInsufficientStock
	}

	ordered := make([]Lot, len(lots))
	copy(ordered, lots)
	SortFIFO(ordered)

	var draws []Draw
	remaining := quantity
	for _, l := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if !l.Available.IsPositive() {
			continue
		}
		take := decimal.Min(l.Available, remaining)
		draws = append(draws, Draw{MaterialID: l.MaterialID, Quantity: take})
		remaining = remaining.Sub(take)
	}
	return draws, nil
}
