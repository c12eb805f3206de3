package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/auditoria"
	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// AuditoriaHandler expone la búsqueda de auditoría y el informe
// anti-manipulación (protegido).
type AuditoriaHandler struct {
	uc *auditoria.UseCase
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(uc *auditoria.UseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar en la auditoría del inventario
// @Description  Filtros combinables por entidad, acción, categoría, usuario,
//	IP, rango de fechas y texto libre sobre las fotos JSON.
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del inventario"
// @Param        action    query  string  false  "Filtrar por acción"
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        user_id   query  string  false  "Filtrar por usuario"
// @Param        ip        query  string  false  "Filtrar por IP"
// @Param        text      query  string  false  "Texto libre en las fotos JSON"
// @Param        from      query  string  false  "Desde (RFC3339)"
// @Param        to        query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventario/{id}/auditoria [get]
func (h *AuditoriaHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	f := repository.AuditFilter{
		ProductID:  c.Query("product_id"),
		MaterialID: c.Query("material_id"),
		AssetID:    c.Query("asset_id"),
		Action:     c.Query("action"),
		Category:   c.Query("category"),
		From:       from,
		To:         to,
		UserID:     c.Query("user_id"),
		IP:         c.Query("ip"),
		Text:       c.Query("text"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	list, total, err := h.uc.Buscar(c.Context(), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Records: list, Total: total})
}

// Report godoc
// @Summary      Informe anti-manipulación de un rango
// @Description  Totales por acción, categoría, usuario e IP, más los eventos
//	marcados (borrados y ajustes de stock).
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID del inventario"
// @Param        from  query  string  true  "Inicio RFC3339"
// @Param        to    query  string  true  "Fin RFC3339"
// @Success      200  {object}  dto.AuditReportDTO
// @Router       /api/inventario/{id}/auditoria/reporte [get]
func (h *AuditoriaHandler) Report(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.uc.ReporteAntiManipulacion(c.Context(), c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
