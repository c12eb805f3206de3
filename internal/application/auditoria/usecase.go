// Package auditoria implementa la auditoría general: filas inmutables con
// foto JSON del antes y el después de cada mutación, clasificadas por
// categoría, y su superficie de búsqueda e informe anti-manipulación.
package auditoria

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// RecordInput datos de una acción auditable. Before/After se serializan a
// JSON; nil omite la foto correspondiente (p. ej. creaciones sin "antes").
type RecordInput struct {
	InventoryID string
	Action      string
	ProductID   *string
	MaterialID  *string
	AssetID     *string
	Before      any
	After       any
	Motive      string
	IP          string
	UserAgent   string
	CreatedBy   string
	At          time.Time
}

// NewEntry construye una fila de auditoría. La categoría se deriva de la
// acción con la tabla fija; una acción desconocida es entrada inválida.
func NewEntry(in RecordInput) (*entity.AuditEntry, error) {
	if in.InventoryID == "" || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	category := entity.AuditCategoryFor(in.Action)
	if category == "" {
		return nil, domain.ErrInvalidInput
	}
	before, err := marshalSnapshot(in.Before)
	if err != nil {
		return nil, err
	}
	after, err := marshalSnapshot(in.After)
	if err != nil {
		return nil, err
	}
	at := in.At
	if at.IsZero() {
		at = time.Now()
	}
	return &entity.AuditEntry{
		ID:          uuid.New().String(),
		InventoryID: in.InventoryID,
		Action:      in.Action,
		Category:    category,
		ProductID:   in.ProductID,
		MaterialID:  in.MaterialID,
		AssetID:     in.AssetID,
		Before:      before,
		After:       after,
		Motive:      in.Motive,
		IP:          in.IP,
		UserAgent:   in.UserAgent,
		CreatedAt:   at,
		CreatedBy:   in.CreatedBy,
	}, nil
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializar foto de auditoría: %w", err)
	}
	return raw, nil
}

// UseCase superficie de búsqueda e informes de la auditoría.
type UseCase struct {
	repo repository.AuditRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AuditRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Buscar busca filas de auditoría con filtros y paginación.
func (uc *UseCase) Buscar(ctx context.Context, inventoryID string, f repository.AuditFilter) ([]dto.AuditEntryDTO, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	entries, total, err := uc.repo.Search(inventoryID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("buscar auditoría: %w", err)
	}
	return toDTOs(entries), total, nil
}

// ReporteAntiManipulacion agrega el rango por acción, categoría, usuario e IP
// y lista los eventos marcados (borrados y ajustes de stock con su motivo).
func (uc *UseCase) ReporteAntiManipulacion(ctx context.Context, inventoryID string, from, to time.Time) (*dto.AuditReportDTO, error) {
	entries, err := uc.repo.ListRange(inventoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte anti-manipulación: %w", err)
	}
	report := &dto.AuditReportDTO{From: from, To: to, TotalRows: len(entries)}
	byAction := map[string]int{}
	byCategory := map[string]int{}
	byUser := map[string]int{}
	byIP := map[string]int{}
	for _, e := range entries {
		byAction[e.Action]++
		byCategory[e.Category]++
		byUser[e.CreatedBy]++
		if e.IP != "" {
			byIP[e.IP]++
		}
		if entity.AuditFlagged(e.Action) {
			report.Flagged = append(report.Flagged, dto.FlaggedEventDTO{
				ID:        e.ID,
				Action:    e.Action,
				Category:  e.Category,
				Motive:    e.Motive,
				CreatedAt: e.CreatedAt,
				CreatedBy: e.CreatedBy,
			})
		}
	}
	report.ByAction = sortedCounts(byAction)
	report.ByCategory = sortedCounts(byCategory)
	report.ByUser = sortedCounts(byUser)
	report.ByIP = sortedCounts(byIP)
	return report, nil
}

func sortedCounts(m map[string]int) []dto.CountDTO {
	out := make([]dto.CountDTO, 0, len(m))
	for k, n := range m {
		out = append(out, dto.CountDTO{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func toDTOs(entries []*entity.AuditEntry) []dto.AuditEntryDTO {
	out := make([]dto.AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		d := dto.AuditEntryDTO{
			ID:          e.ID,
			InventoryID: e.InventoryID,
			Action:      e.Action,
			Category:    e.Category,
			Before:      e.Before,
			After:       e.After,
			Motive:      e.Motive,
			IP:          e.IP,
			UserAgent:   e.UserAgent,
			CreatedAt:   e.CreatedAt,
			CreatedBy:   e.CreatedBy,
		}
		if e.ProductID != nil {
			d.ProductID = *e.ProductID
		}
		if e.MaterialID != nil {
			d.MaterialID = *e.MaterialID
		}
		if e.AssetID != nil {
			d.AssetID = *e.AssetID
		}
		out = append(out, d)
	}
	return out
}
