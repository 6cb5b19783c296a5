package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *inventory.RecordMovementUseCase
	History     *inventory.HistoryUseCase
	Stock       *inventory.StockUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ClientUC    *usecase.ClientUseCase
	ProviderUC  *usecase.ProviderUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo /api requiere Bearer Token; el usuario del token se registra en cada movimiento.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(RoleAdmin)

	movementHandler := NewMovementHandler(deps.Ledger, deps.History, deps.Stock)
	movimientos := api.Group("/movimientos")
	movimientos.Get("/", movementHandler.List)
	movimientos.Post("/ingresos", RequireRole(RoleAdmin, RoleBodeguero), movementHandler.RecordIngreso)
	movimientos.Post("/despachos", RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor), movementHandler.RecordDespacho)
	api.Get("/stock/:producto_id", movementHandler.GetStock)

	productHandler := NewProductHandler(deps.ProductUC)
	productos := api.Group("/productos")
	productos.Get("/", productHandler.List)
	productos.Get("/inactivos", productHandler.ListInactive)
	productos.Get("/:id", productHandler.GetByID)
	productos.Post("/", productHandler.Create)
	productos.Put("/:id", productHandler.Update)
	productos.Delete("/:id", productHandler.Delete)
	productos.Put("/:id/reactivar", productHandler.Reactivate)
	productos.Delete("/:id/hard", adminOnly, productHandler.HardDelete)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	bodegas := api.Group("/bodegas")
	bodegas.Get("/", warehouseHandler.List)
	bodegas.Get("/inactivos", warehouseHandler.ListInactive)
	bodegas.Get("/:id", warehouseHandler.GetByID)
	bodegas.Post("/", warehouseHandler.Create)
	bodegas.Put("/:id", warehouseHandler.Update)
	bodegas.Delete("/:id", warehouseHandler.Delete)
	bodegas.Put("/:id/reactivar", warehouseHandler.Reactivate)
	bodegas.Delete("/:id/hard", adminOnly, warehouseHandler.HardDelete)

	registerParty(api.Group("/clientes"), NewPartyHandler(deps.ClientUC, "cliente"))
	proveedores := api.Group("/proveedores")
	registerParty(proveedores, NewPartyHandler(deps.ProviderUC, "proveedor"))
	proveedores.Delete("/:id/hard", adminOnly, providerHardDelete(deps.ProviderUC))
}

func registerParty(r fiber.Router, h *PartyHandler) {
	r.Get("/", h.List)
	r.Get("/inactivos", h.ListInactive)
	r.Get("/:id", h.GetByID)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Put("/:id/reactivar", h.Reactivate)
}
