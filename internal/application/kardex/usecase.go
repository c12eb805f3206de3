package kardex

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// UseCase superficie de consulta del kardex. La escritura ocurre dentro de
// las transacciones del orquestador y del motor de reservas, vía los
// constructores NewEntrada/NewSalida y el repositorio atado a la tx.
type UseCase struct {
	repo repository.KardexRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.KardexRepository) *UseCase {
	return &UseCase{repo: repo}
}

// HistorialPorProducto lista los movimientos de un producto con filtros y paginación.
func (uc *UseCase) HistorialPorProducto(ctx context.Context, productID string, f repository.KardexFilter) ([]dto.KardexEntryDTO, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	entries, total, err := uc.repo.ListByProduct(productID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("historial por producto: %w", err)
	}
	return toDTOs(entries), total, nil
}

// HistorialPorInventario lista los movimientos de un inventario con filtros y paginación.
func (uc *UseCase) HistorialPorInventario(ctx context.Context, inventoryID string, f repository.KardexFilter) ([]dto.KardexEntryDTO, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	entries, total, err := uc.repo.ListByInventory(inventoryID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("historial por inventario: %w", err)
	}
	return toDTOs(entries), total, nil
}

// ReporteRango agrega los movimientos del rango por dirección, tipo y producto.
func (uc *UseCase) ReporteRango(ctx context.Context, inventoryID string, from, to time.Time) (*dto.KardexReportDTO, error) {
	entries, err := uc.repo.ListRange(inventoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte de rango: %w", err)
	}

	report := &dto.KardexReportDTO{
		From:      from,
		To:        to,
		TotalIn:   decimal.Zero,
		TotalOut:  decimal.Zero,
		TotalRows: len(entries),
	}

	type typeKey struct{ movType, direction string }
	byType := map[typeKey]*dto.KardexTypeTotalDTO{}
	byProduct := map[string]*dto.KardexProductTotalDTO{}

	for _, e := range entries {
		if e.Direction == entity.DirectionIn {
			report.TotalIn = report.TotalIn.Add(e.Quantity)
		} else {
			report.TotalOut = report.TotalOut.Add(e.Quantity)
		}

		tk := typeKey{e.MovementType, e.Direction}
		tt := byType[tk]
		if tt == nil {
			tt = &dto.KardexTypeTotalDTO{MovementType: e.MovementType, Direction: e.Direction, Quantity: decimal.Zero}
			byType[tk] = tt
		}
		tt.Quantity = tt.Quantity.Add(e.Quantity)
		tt.Entries++

		pt := byProduct[e.ProductID]
		if pt == nil {
			pt = &dto.KardexProductTotalDTO{ProductID: e.ProductID, In: decimal.Zero, Out: decimal.Zero}
			byProduct[e.ProductID] = pt
		}
		if e.Direction == entity.DirectionIn {
			pt.In = pt.In.Add(e.Quantity)
		} else {
			pt.Out = pt.Out.Add(e.Quantity)
		}
		pt.Entries++
	}

	for _, tt := range byType {
		report.ByType = append(report.ByType, *tt)
	}
	sort.Slice(report.ByType, func(i, j int) bool {
		a, b := report.ByType[i], report.ByType[j]
		if a.MovementType != b.MovementType {
			return a.MovementType < b.MovementType
		}
		return a.Direction < b.Direction
	})
	for _, pt := range byProduct {
		report.ByProduct = append(report.ByProduct, *pt)
	}
	sort.Slice(report.ByProduct, func(i, j int) bool {
		return report.ByProduct[i].ProductID < report.ByProduct[j].ProductID
	})
	return report, nil
}

func toDTOs(entries []*entity.KardexEntry) []dto.KardexEntryDTO {
	out := make([]dto.KardexEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToDTO(e))
	}
	return out
}

// ToDTO convierte una fila del kardex a su representación HTTP.
func ToDTO(e *entity.KardexEntry) dto.KardexEntryDTO {
	d := dto.KardexEntryDTO{
		ID:           e.ID,
		InventoryID:  e.InventoryID,
		ProductID:    e.ProductID,
		MovementType: e.MovementType,
		Direction:    e.Direction,
		Quantity:     e.Quantity,
		StockBefore:  e.StockBefore,
		StockAfter:   e.StockAfter,
		Amount:       e.Amount,
		UnitCost:     e.UnitCost,
		Observations: e.Observations,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	if e.MaterialID != nil {
		d.MaterialID = *e.MaterialID
	}
	if e.ReferenceKind != nil {
		d.ReferenceKind = *e.ReferenceKind
	}
	if e.ReferenceID != nil {
		d.ReferenceID = *e.ReferenceID
	}
	return d
}
