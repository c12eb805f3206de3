package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/application/inventory"
	"github.com/odontosys/inventario-api/internal/application/kardex"
)

// StockHandler maneja las operaciones que mutan stock: entradas, salidas,
// ajustes, venta de activos y cambios de estado (protegido).
type StockHandler struct {
	uc *inventory.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// MaterialInflow godoc
// @Summary      Registrar entrada de material
// @Description  Crea el lote/serie/granel y su fila del kardex en una sola
//	transacción. El gasto en finanzas se registra tras el commit.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.MaterialInflowRequest  true  "product_id, quantity, unit_cost, movement_type, lot/serial"
// @Success      201  {object}  entity.Material
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id}/materiales/entrada [post]
func (h *StockHandler) MaterialInflow(c *fiber.Ctx) error {
	var in dto.MaterialInflowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.RegistrarEntradaMaterial(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// AssetInflow godoc
// @Summary      Registrar entrada de activo fijo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.AssetInflowRequest  true  "product_id, cost, movement_type"
// @Success      201  {object}  entity.Asset
// @Router       /api/inventario/{id}/activos/entrada [post]
func (h *StockHandler) AssetInflow(c *fiber.Ctx) error {
	var in dto.AssetInflowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a, err := h.uc.RegistrarEntradaActivo(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// MaterialOutflow godoc
// @Summary      Registrar salida de material
// @Description  Consume en orden FIFO (vencimiento primero) salvo que se
//	indique material_id. Todo o nada: stock insuficiente devuelve 409.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.MaterialOutflowRequest  true  "product_id, quantity, movement_type"
// @Success      201  {object}  dto.KardexEntryDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id}/materiales/salida [post]
func (h *StockHandler) MaterialOutflow(c *fiber.Ctx) error {
	var in dto.MaterialOutflowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entry, err := h.uc.RegistrarSalidaMaterial(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(kardex.ToDTO(entry))
}

// AdjustStock godoc
// @Summary      Ajustar stock tras conteo físico
// @Description  Modos INCREMENT, DECREMENT y SET; el motivo es obligatorio.
//	El ajuste nunca rompe reservas vigentes: hacia abajo se recorta al total
//	reservado. Sin delta efectivo no se escribe fila del kardex.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, mode, quantity, motive"
// @Success      200  {object}  dto.KardexEntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id}/ajustar-stock [post]
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entry, err := h.uc.AjustarStock(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if entry == nil {
		return c.JSON(fiber.Map{"message": "sin delta efectivo, ajuste omitido"})
	}
	return c.JSON(kardex.ToDTO(entry))
}

// SellAsset godoc
// @Summary      Vender activo
// @Description  Transición terminal a SOLD con bitácora, kardex y auditoría.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.SellAssetRequest  true  "sale_price, observations"
// @Success      200  {object}  entity.Asset
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/activos/{id}/vender [post]
func (h *StockHandler) SellAsset(c *fiber.Ctx) error {
	var in dto.SellAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a, err := h.uc.VenderActivo(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

// ChangeAssetState godoc
// @Summary      Cambiar estado de un activo
// @Description  Mismo estado es no-op; un estado terminal no admite salida.
//	La venta va por su propia operación.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.ChangeAssetStateRequest  true  "new_state, motive"
// @Success      200  {object}  entity.Asset
// @Router       /api/inventario/activos/{id}/estado [put]
func (h *StockHandler) ChangeAssetState(c *fiber.Ctx) error {
	var in dto.ChangeAssetStateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a, err := h.uc.CambiarEstadoActivo(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}
