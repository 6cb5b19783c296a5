package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngresoLineRequest detalle de un ingreso.
type IngresoLineRequest struct {
	ProductID string           `json:"producto_id"`
	Quantity  decimal.Decimal  `json:"cantidad"`
	UnitCost  *decimal.Decimal `json:"costo_unitario,omitempty"`
}

// RecordIngresoRequest body para POST /api/movimientos/ingresos.
type RecordIngresoRequest struct {
	WarehouseID string               `json:"bodega_id" validate:"required"`
	ProviderID  *string              `json:"proveedor_id,omitempty"`
	Date        string               `json:"fecha,omitempty"` // RFC3339 o YYYY-MM-DD; vacío = ahora
	Note        *string              `json:"observacion,omitempty" validate:"omitempty,max=500"`
	Lines       []IngresoLineRequest `json:"detalles" validate:"required,min=1"`
}

// DespachoLineRequest detalle de un despacho.
type DespachoLineRequest struct {
	ProductID      string           `json:"producto_id"`
	Quantity       decimal.Decimal  `json:"cantidad"`
	UnitPrice      *decimal.Decimal `json:"precio_unitario,omitempty"`
	PriceTier      string           `json:"precio_tipo" validate:"omitempty,max=20"`
	DiscountReason *string          `json:"motivo_descuento,omitempty" validate:"omitempty,max=200"`
}

// RecordDespachoRequest body para POST /api/movimientos/despachos.
type RecordDespachoRequest struct {
	WarehouseID string                `json:"bodega_id" validate:"required"`
	ClientID    *string               `json:"cliente_id,omitempty"`
	Date        string                `json:"fecha,omitempty"`
	Note        *string               `json:"observacion,omitempty" validate:"omitempty,max=500"`
	Lines       []DespachoLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// MovementRowResponse fila del historial (cabecera × detalle).
type MovementRowResponse struct {
	ID             string           `json:"id"`
	Date           time.Time        `json:"fecha"`
	Type           string           `json:"tipo"`
	WarehouseID    string           `json:"bodega_id"`
	Warehouse      string           `json:"bodega"`
	Provider       *string          `json:"proveedor"`
	Client         *string          `json:"cliente"`
	UserID         *string          `json:"usuario_id"`
	Note           *string          `json:"observacion"`
	Position       int              `json:"linea"`
	ProductID      string           `json:"producto_id"`
	ProductSKU     string           `json:"sku"`
	Product        string           `json:"producto"`
	Quantity       decimal.Decimal  `json:"cantidad"`
	UnitCost       *decimal.Decimal `json:"costo_unitario"`
	UnitPrice      *decimal.Decimal `json:"precio_unitario"`
	PriceTier      *string          `json:"precio_tipo"`
	DiscountReason *string          `json:"motivo_descuento"`
}

// BoxBreakdownResponse stock expresado en cajas completas + unidades sueltas.
type BoxBreakdownResponse struct {
	Boxes decimal.Decimal `json:"cajas"`
	Loose decimal.Decimal `json:"sueltas"`
}

// WarehouseStockResponse stock de un producto en una bodega.
type WarehouseStockResponse struct {
	WarehouseID string                `json:"bodega_id"`
	Quantity    decimal.Decimal       `json:"cantidad"`
	Boxes       *BoxBreakdownResponse `json:"cajas,omitempty"`
}

// StockResponse stock de un producto: total y desglose por bodega.
// Con filtro de bodega, Warehouses contiene solo esa bodega.
type StockResponse struct {
	ProductID  string                   `json:"producto_id"`
	SKU        string                   `json:"sku"`
	Name       string                   `json:"nombre"`
	Total      decimal.Decimal          `json:"total"`
	Boxes      *BoxBreakdownResponse    `json:"cajas,omitempty"`
	Warehouses []WarehouseStockResponse `json:"bodegas"`
}
