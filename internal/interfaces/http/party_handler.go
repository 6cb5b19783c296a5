package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/application/usecase"
)

// partyService lo cumplen usecase.ClientUseCase y usecase.ProviderUseCase.
type partyService interface {
	Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PartyResponse, error)
	Update(ctx context.Context, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error)
	List(ctx context.Context, active bool) ([]dto.PartyResponse, error)
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
}

// PartyHandler CRUD HTTP de clientes o proveedores (protegido).
type PartyHandler struct {
	svc  partyService
	noun string // "cliente" | "proveedor", para los mensajes
}

// NewPartyHandler construye el handler.
func NewPartyHandler(svc partyService, noun string) *PartyHandler {
	return &PartyHandler{svc: svc, noun: noun}
}

// Create godoc
// @Summary      Crear cliente o proveedor
// @Description  identificacion opcional: cédula (10 dígitos) o RUC (13) con dígito verificador válido.
// @Tags         clientes, proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "Datos"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
// @Router       /api/proveedores [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) List(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *PartyHandler) ListInactive(c *fiber.Ctx) error {
	return h.list(c, false)
}

func (h *PartyHandler) list(c *fiber.Ctx, active bool) error {
	out, err := h.svc.List(c.UserContext(), active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{ID: c.Params("id"), Message: h.noun + " desactivado"})
}

func (h *PartyHandler) Reactivate(c *fiber.Ctx) error {
	if err := h.svc.Reactivate(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{ID: c.Params("id"), Message: h.noun + " reactivado"})
}

// providerHardDelete godoc
// @Summary      Eliminar proveedor definitivamente
// @Description  Solo admin. Los ingresos y productos del proveedor quedan sin proveedor asociado.
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del proveedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id}/hard [delete]
func providerHardDelete(uc *usecase.ProviderUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := uc.HardDelete(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.MessageResponse{ID: c.Params("id"), Message: "proveedor eliminado"})
	}
}
