package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/bitacora"
	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

// BitacoraHandler expone la consulta de la bitácora de activos (protegido).
type BitacoraHandler struct {
	uc *bitacora.UseCase
}

// NewBitacoraHandler construye el handler.
func NewBitacoraHandler(uc *bitacora.UseCase) *BitacoraHandler {
	return &BitacoraHandler{uc: uc}
}

func bitacoraFilterFrom(c *fiber.Ctx) (repository.BitacoraFilter, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return repository.BitacoraFilter{}, err
	}
	page.DefaultPage()
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return repository.BitacoraFilter{}, err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return repository.BitacoraFilter{}, err
	}
	return repository.BitacoraFilter{
		StateAfter: c.Query("state_after"),
		From:       from,
		To:         to,
		UserID:     c.Query("user_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}, nil
}

// InventoryHistory godoc
// @Summary      Bitácora de un inventario
// @Tags         bitacora
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "ID del inventario"
// @Param        state_after  query  string  false  "Filtrar por estado resultante"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventario/{id}/bitacora [get]
func (h *BitacoraHandler) InventoryHistory(c *fiber.Ctx) error {
	f, err := bitacoraFilterFrom(c)
	if err != nil {
		return badBody(c)
	}
	list, total, err := h.uc.HistorialPorInventario(c.Context(), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Records: list, Total: total})
}

// AssetHistory godoc
// @Summary      Bitácora de un activo
// @Tags         bitacora
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventario/activos/{id}/bitacora [get]
func (h *BitacoraHandler) AssetHistory(c *fiber.Ctx) error {
	f, err := bitacoraFilterFrom(c)
	if err != nil {
		return badBody(c)
	}
	list, total, err := h.uc.HistorialPorActivo(c.Context(), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Records: list, Total: total})
}

// Recent godoc
// @Summary      Últimos eventos de la bitácora del inventario
// @Tags         bitacora
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del inventario"
// @Param        limit  query  int     false  "Cantidad (por defecto 20)"
// @Success      200  {array}  dto.BitacoraEntryDTO
// @Router       /api/inventario/{id}/bitacora/recientes [get]
func (h *BitacoraHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	list, err := h.uc.EventosRecientes(c.Context(), c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Stats godoc
// @Summary      Estadísticas de transiciones en un rango
// @Tags         bitacora
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID del inventario"
// @Param        from  query  string  true  "Inicio RFC3339"
// @Param        to    query  string  true  "Fin RFC3339"
// @Success      200  {object}  dto.BitacoraStatsDTO
// @Router       /api/inventario/{id}/bitacora/estadisticas [get]
func (h *BitacoraHandler) Stats(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	stats, err := h.uc.Estadisticas(c.Context(), c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
