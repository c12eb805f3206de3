package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/auditoria"
	"github.com/odontosys/inventario-api/internal/application/bitacora"
	"github.com/odontosys/inventario-api/internal/application/inventory"
	"github.com/odontosys/inventario-api/internal/application/kardex"
	"github.com/odontosys/inventario-api/internal/application/reservation"
	"github.com/odontosys/inventario-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC   *inventory.UseCase
	ReservationUC *reservation.UseCase
	KardexUC      *kardex.UseCase
	BitacoraUC    *bitacora.UseCase
	AuditoriaUC   *auditoria.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todas las rutas requieren Bearer Token;
// las de escritura además exigen rol owner o editor. El control fino por
// inventario lo hace el puerto de permisos en los use cases.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	escritura := RequireRole(jwt.RoleOwner, jwt.RoleEditor)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	stockHandler := NewStockHandler(deps.InventoryUC)
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	kardexHandler := NewKardexHandler(deps.KardexUC)
	bitacoraHandler := NewBitacoraHandler(deps.BitacoraUC)
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)

	inv := api.Group("/inventario")

	// Rutas con prefijo estático primero: /productos y /activos no deben
	// capturarse como :id de inventario.
	inv.Get("/productos/:id", inventoryHandler.GetProduct)
	inv.Put("/productos/:id", escritura, inventoryHandler.UpdateProduct)
	inv.Delete("/productos/:id", escritura, inventoryHandler.DeleteProduct)
	inv.Get("/productos/:id/kardex", kardexHandler.ProductHistory)

	inv.Post("/activos/:id/vender", escritura, stockHandler.SellAsset)
	inv.Put("/activos/:id/estado", escritura, stockHandler.ChangeAssetState)
	inv.Get("/activos/:id/bitacora", bitacoraHandler.AssetHistory)

	inv.Post("/", escritura, inventoryHandler.CreateInventory)
	inv.Get("/", inventoryHandler.ListInventories)
	inv.Get("/:id", inventoryHandler.GetInventory)
	inv.Put("/:id", escritura, inventoryHandler.UpdateInventory)
	inv.Delete("/:id", RequireRole(jwt.RoleOwner), inventoryHandler.DeleteInventory)

	inv.Post("/:id/productos", escritura, inventoryHandler.CreateProduct)
	inv.Get("/:id/productos", inventoryHandler.ListProducts)

	inv.Post("/:id/materiales/entrada", escritura, stockHandler.MaterialInflow)
	inv.Post("/:id/activos/entrada", escritura, stockHandler.AssetInflow)
	inv.Post("/:id/materiales/salida", escritura, stockHandler.MaterialOutflow)
	inv.Post("/:id/ajustar-stock", escritura, stockHandler.AdjustStock)

	inv.Get("/:id/stock", inventoryHandler.StockLevels)
	inv.Get("/:id/bajo-stock", inventoryHandler.LowStock)
	inv.Get("/:id/por-vencer", inventoryHandler.ExpiringMaterials)
	inv.Get("/:id/activos-disponibles", reservationHandler.AvailableAssets)

	inv.Get("/:id/kardex", kardexHandler.InventoryHistory)
	inv.Get("/:id/kardex/reporte", kardexHandler.RangeReport)
	inv.Get("/:id/bitacora", bitacoraHandler.InventoryHistory)
	inv.Get("/:id/bitacora/recientes", bitacoraHandler.Recent)
	inv.Get("/:id/bitacora/estadisticas", bitacoraHandler.Stats)
	inv.Get("/:id/auditoria", auditoriaHandler.Search)
	inv.Get("/:id/auditoria/reporte", auditoriaHandler.Report)

	reservas := api.Group("/reservas", escritura)
	reservas.Post("/materiales", reservationHandler.ReserveMaterial)
	reservas.Post("/materiales/:id/confirmar", reservationHandler.ConfirmMaterialReservation)
	reservas.Post("/materiales/:id/cancelar", reservationHandler.CancelMaterialReservation)
	reservas.Post("/activos", reservationHandler.ReserveAsset)
	reservas.Post("/activos/:id/confirmar", reservationHandler.ConfirmAssetReservation)
	reservas.Post("/activos/:id/cancelar", reservationHandler.CancelAssetReservation)

	citas := api.Group("/citas")
	citas.Get("/:id/reservas", reservationHandler.AppointmentReservations)
	citas.Put("/:id/reservas", escritura, reservationHandler.ReconcileAppointment)
	citas.Post("/:id/confirmar-materiales", escritura, reservationHandler.ConfirmAppointmentMaterials)

	tratamientos := api.Group("/tratamientos")
	tratamientos.Get("/:id/reservas", reservationHandler.TreatmentReservations)

	api.Post("/verificar-disponibilidad-activo", reservationHandler.CheckAssetAvailability)
}
