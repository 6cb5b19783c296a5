package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (multi-bodega).
// El stock no vive aquí: se deriva de los movimientos en StockEntry.
type Product struct {
	ID         string
	SKU        string // único
	Name       string
	CategoryID *string
	ProviderID *string
	UnitID     *string

	PurchasePrice  decimal.Decimal // precio de compra (costo de referencia)
	RetailPrice    decimal.Decimal // precio de venta unitario
	WholesalePrice decimal.Decimal // precio mayorista unitario
	BoxPrice       decimal.Decimal // precio por unidad cuando se vende en modo caja
	UnitsPerBox    *int

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBoxConfig indica si el producto tiene un factor de conversión caja→unidades.
func (p *Product) HasBoxConfig() bool {
	return p.UnitsPerBox != nil && *p.UnitsPerBox > 0
}

// BoxConfigValid verifica que un precio por caja venga acompañado de unidades por caja.
func (p *Product) BoxConfigValid() bool {
	if p.BoxPrice.GreaterThan(decimal.Zero) {
		return p.HasBoxConfig()
	}
	return p.UnitsPerBox == nil || *p.UnitsPerBox > 0
}
