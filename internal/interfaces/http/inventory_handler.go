package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/application/inventory"
)

// InventoryHandler maneja el CRUD de inventarios y productos y las consultas
// de stock agregado (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateInventory godoc
// @Summary      Crear inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "name, description"
// @Success      201   {object}  entity.Inventory
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventario [post]
func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.CrearInventario(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// ListInventories godoc
// @Summary      Listar inventarios propios
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) ListInventories(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, total, err := h.uc.ListarInventarios(c.Context(), actorFrom(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Records: list, Total: total})
}

// GetInventory godoc
// @Summary      Obtener inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del inventario"
// @Success      200  {object}  entity.Inventory
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id} [get]
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	inv, err := h.uc.ObtenerInventario(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// UpdateInventory godoc
// @Summary      Actualizar inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.UpdateInventoryRequest  true  "name, description"
// @Success      200  {object}  entity.Inventory
// @Router       /api/inventario/{id} [put]
func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.ActualizarInventario(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// DeleteInventory godoc
// @Summary      Eliminar inventario (solo dueño)
// @Tags         inventario
// @Security     Bearer
// @Param        id  path  string  true  "ID del inventario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id} [delete]
func (h *InventoryHandler) DeleteInventory(c *fiber.Ctx) error {
	if err := h.uc.EliminarInventario(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProduct godoc
// @Summary      Crear producto en un inventario
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.CreateProductRequest  true  "name, kind, subtype, min_stock, unit"
// @Success      201  {object}  entity.Product
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id}/productos [post]
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.CrearProducto(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ListProducts godoc
// @Summary      Listar productos del inventario
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "ID del inventario"
// @Param        only_active  query  bool    false  "Solo productos activos"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventario/{id}/productos [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	onlyActive := c.QueryBool("only_active", true)
	list, total, err := h.uc.ListarProductos(c.Context(), actorFrom(c), c.Params("id"), onlyActive, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Records: list, Total: total})
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/productos/{id} [get]
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.ObtenerProducto(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// UpdateProduct godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "name, min_stock, unit, active"
// @Success      200  {object}  entity.Product
// @Router       /api/inventario/productos/{id} [put]
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.ActualizarProducto(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// DeleteProduct godoc
// @Summary      Desactivar producto (solo dueño)
// @Tags         productos
// @Security     Bearer
// @Param        id      path   string  true   "ID del producto"
// @Param        motive  query  string  false  "Motivo de la baja"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventario/productos/{id} [delete]
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.uc.EliminarProducto(c.Context(), actorFrom(c), c.Params("id"), c.Query("motive")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StockLevels godoc
// @Summary      Niveles de stock agregados por producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del inventario"
// @Success      200  {array}  dto.StockLevelDTO
// @Router       /api/inventario/{id}/stock [get]
func (h *InventoryHandler) StockLevels(c *fiber.Ctx) error {
	levels, err := h.uc.NivelesDeStock(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(levels)
}

// LowStock godoc
// @Summary      Productos por debajo del stock mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del inventario"
// @Success      200  {array}  dto.StockLevelDTO
// @Router       /api/inventario/{id}/bajo-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	levels, err := h.uc.ProductosBajoStock(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(levels)
}

// ExpiringMaterials godoc
// @Summary      Materiales por vencer
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del inventario"
// @Param        days  query  int     false  "Días hacia adelante (por defecto 30)"
// @Success      200  {array}  dto.ExpiringMaterialDTO
// @Router       /api/inventario/{id}/por-vencer [get]
func (h *InventoryHandler) ExpiringMaterials(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	mats, err := h.uc.MaterialesPorVencer(c.Context(), actorFrom(c), c.Params("id"), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mats)
}
