package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/application/inventory"
)

// MovementHandler expone el libro de movimientos y la consulta de stock (protegido).
type MovementHandler struct {
	ledger  *inventory.RecordMovementUseCase
	history *inventory.HistoryUseCase
	stock   *inventory.StockUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *inventory.RecordMovementUseCase, history *inventory.HistoryUseCase, stock *inventory.StockUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledger, history: history, stock: stock}
}

// RecordIngreso godoc
// @Summary      Registrar ingreso
// @Description  Cabecera, detalles y stock se confirman en una sola transacción.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordIngresoRequest  true  "bodega_id, proveedor_id, detalles"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimientos/ingresos [post]
func (h *MovementHandler) RecordIngreso(c *fiber.Ctx) error {
	var in dto.RecordIngresoRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return writeError(c, err)
	}
	lines := make([]inventory.IngresoLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.IngresoLineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	id, err := h.ledger.RecordIngreso(c.UserContext(), inventory.RecordIngresoInput{
		WarehouseID: in.WarehouseID,
		ProviderID:  in.ProviderID,
		UserID:      optionalString(GetUserID(c)),
		Date:        date,
		Note:        in.Note,
		Lines:       lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{ID: id, Message: "ingreso registrado"})
}

// RecordDespacho godoc
// @Summary      Registrar despacho
// @Description  Rechaza con 409 si algún stock quedaría negativo; en ese caso no se persiste nada.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordDespachoRequest  true  "bodega_id, cliente_id, detalles con precio_tipo"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos/despachos [post]
func (h *MovementHandler) RecordDespacho(c *fiber.Ctx) error {
	var in dto.RecordDespachoRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return writeError(c, err)
	}
	lines := make([]inventory.DespachoLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.DespachoLineInput{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			PriceTier:      l.PriceTier,
			DiscountReason: l.DiscountReason,
		})
	}
	id, err := h.ledger.RecordDespacho(c.UserContext(), inventory.RecordDespachoInput{
		WarehouseID: in.WarehouseID,
		ClientID:    in.ClientID,
		UserID:      optionalString(GetUserID(c)),
		Date:        date,
		Note:        in.Note,
		Lines:       lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{ID: id, Message: "despacho registrado"})
}

// List godoc
// @Summary      Historial de movimientos
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        tipo  query  string  false  "INGRESO | DESPACHO"
// @Success      200   {array}   dto.MovementRowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.history.ListMovements(c.UserContext(), c.Query("tipo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path   string  true   "ID del producto"
// @Param        bodega_id    query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{producto_id} [get]
func (h *MovementHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.stock.GetStock(c.UserContext(), c.Params("producto_id"), c.Query("bodega_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
