package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

// ParsePriceTier normaliza el tipo de precio de una línea de despacho.
// Vacío equivale a NORMAL.
func ParsePriceTier(s string) (entity.PriceTier, error) {
	switch t := entity.PriceTier(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return entity.PriceNormal, nil
	case entity.PriceNormal, entity.PriceMayorista, entity.PriceCaja, entity.PriceDescuento:
		return t, nil
	default:
		return "", fmt.Errorf("%w: precio_tipo %q desconocido", domain.ErrInvalidInput, s)
	}
}

// ResolveUnitPrice devuelve el precio unitario a persistir en una línea de despacho.
//
//	NORMAL    → precio de venta
//	MAYORISTA → precio mayorista, si no precio de venta
//	CAJA      → precio por unidad en modo caja (0 si el producto no lo tiene)
//	DESCUENTO → override manual, si no precio de venta
//
// Un precio en cero se considera no definido. Solo DESCUENTO usa override.
func ResolveUnitPrice(p *entity.Product, tier entity.PriceTier, override *decimal.Decimal) decimal.Decimal {
	switch tier {
	case entity.PriceMayorista:
		return firstPositive(p.WholesalePrice, p.RetailPrice)
	case entity.PriceCaja:
		// Sin configuración de caja se persiste 0; ver DESIGN.md.
		return firstPositive(p.BoxPrice)
	case entity.PriceDescuento:
		if override != nil {
			return *override
		}
		return firstPositive(p.RetailPrice)
	default:
		return firstPositive(p.RetailPrice)
	}
}

// DiscountReasonFor conserva el motivo solo para líneas DESCUENTO.
func DiscountReasonFor(tier entity.PriceTier, reason *string) *string {
	if tier != entity.PriceDescuento || reason == nil {
		return nil
	}
	r := strings.TrimSpace(*reason)
	if r == "" {
		return nil
	}
	return &r
}

func firstPositive(values ...decimal.Decimal) decimal.Decimal {
	for _, v := range values {
		if v.GreaterThan(decimal.Zero) {
			return v
		}
	}
	return decimal.Zero
}
