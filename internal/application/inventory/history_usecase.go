package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

// HistoryUseCase historial de movimientos (solo lectura).
type HistoryUseCase struct {
	movRepo repository.MovementRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movRepo repository.MovementRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo}
}

// ListMovements devuelve filas cabecera × detalle ordenadas por fecha DESC, id DESC.
// typeFilter vacío lista ingresos y despachos.
func (uc *HistoryUseCase) ListMovements(ctx context.Context, typeFilter string) ([]dto.MovementRowResponse, error) {
	t := entity.MovementType(strings.ToUpper(strings.TrimSpace(typeFilter)))
	if t != "" && !t.Valid() {
		return nil, fmt.Errorf("%w: tipo %q desconocido", domain.ErrInvalidInput, typeFilter)
	}
	rows, err := uc.movRepo.ListRows(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toMovementRowResponse(r))
	}
	return out, nil
}

func toMovementRowResponse(r entity.MovementRow) dto.MovementRowResponse {
	var tier *string
	if r.PriceTier != nil {
		s := string(*r.PriceTier)
		tier = &s
	}
	return dto.MovementRowResponse{
		ID:             r.MovementID,
		Date:           r.Date,
		Type:           string(r.Type),
		WarehouseID:    r.WarehouseID,
		Warehouse:      r.Warehouse,
		Provider:       r.Provider,
		Client:         r.Client,
		UserID:         r.UserID,
		Note:           r.Note,
		Position:       r.Position,
		ProductID:      r.ProductID,
		ProductSKU:     r.ProductSKU,
		Product:        r.Product,
		Quantity:       r.Quantity,
		UnitCost:       r.UnitCost,
		UnitPrice:      r.UnitPrice,
		PriceTier:      tier,
		DiscountReason: r.DiscountReason,
	}
}
