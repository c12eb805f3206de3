package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/application/kardex"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// KardexHandler expone la consulta del libro de movimientos (protegido).
type KardexHandler struct {
	uc *kardex.UseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *kardex.UseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

func kardexFilterFrom(c *fiber.Ctx) (repository.KardexFilter, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return repository.KardexFilter{}, err
	}
	page.DefaultPage()
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return repository.KardexFilter{}, err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return repository.KardexFilter{}, err
	}
	return repository.KardexFilter{
		MovementType: c.Query("movement_type"),
		Direction:    c.Query("direction"),
		From:         from,
		To:           to,
		UserID:       c.Query("user_id"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}, nil
}

// InventoryHistory godoc
// @Summary      Historial del kardex de un inventario
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id             path   string  true   "ID del inventario"
// @Param        movement_type  query  string  false  "Filtrar por tipo de movimiento"
// @Param        direction      query  string  false  "IN u OUT"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Param        user_id        query  string  false  "Filtrar por usuario"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventario/{id}/kardex [get]
func (h *KardexHandler) InventoryHistory(c *fiber.Ctx) error {
	f, err := kardexFilterFrom(c)
	if err != nil {
		return badBody(c)
	}
	list, total, err := h.uc.HistorialPorInventario(c.Context(), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Records: list, Total: total})
}

// ProductHistory godoc
// @Summary      Historial del kardex de un producto
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventario/productos/{id}/kardex [get]
func (h *KardexHandler) ProductHistory(c *fiber.Ctx) error {
	f, err := kardexFilterFrom(c)
	if err != nil {
		return badBody(c)
	}
	list, total, err := h.uc.HistorialPorProducto(c.Context(), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Records: list, Total: total})
}

// RangeReport godoc
// @Summary      Informe agregado del kardex en un rango
// @Description  Totales por dirección, por tipo de movimiento y por producto.
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID del inventario"
// @Param        from  query  string  true  "Inicio RFC3339"
// @Param        to    query  string  true  "Fin RFC3339"
// @Success      200  {object}  dto.KardexReportDTO
// @Router       /api/inventario/{id}/kardex/reporte [get]
func (h *KardexHandler) RangeReport(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.uc.ReporteRango(c.Context(), c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
