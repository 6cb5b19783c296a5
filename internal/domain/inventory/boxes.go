package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

// BoxBreakdown expresa una cantidad en cajas completas más unidades sueltas.
type BoxBreakdown struct {
	Boxes decimal.Decimal
	Loose decimal.Decimal
}

// SplitBoxes convierte una cantidad en unidades a cajas + sueltas.
// Devuelve nil si el producto no tiene unidades por caja.
func SplitBoxes(p *entity.Product, qty decimal.Decimal) *BoxBreakdown {
	if p == nil || !p.HasBoxConfig() || qty.LessThan(decimal.Zero) {
		return nil
	}
	per := decimal.NewFromInt(int64(*p.UnitsPerBox))
	boxes := qty.Div(per).Floor()
	return &BoxBreakdown{
		Boxes: boxes,
		Loose: qty.Sub(boxes.Mul(per)),
	}
}
