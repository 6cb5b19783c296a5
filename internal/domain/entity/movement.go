package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro.
type MovementType string

const (
	MovementIngreso  MovementType = "INGRESO"  // entrada de stock
	MovementDespacho MovementType = "DESPACHO" // salida de stock
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	return t == MovementIngreso || t == MovementDespacho
}

// Sign devuelve +1 para ingresos y -1 para despachos.
func (t MovementType) Sign() decimal.Decimal {
	if t == MovementDespacho {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// PriceTier política de precio de una línea de despacho.
type PriceTier string

const (
	PriceNormal    PriceTier = "NORMAL"
	PriceMayorista PriceTier = "MAYORISTA"
	PriceCaja      PriceTier = "CAJA"
	PriceDescuento PriceTier = "DESCUENTO"
)

// Movement cabecera inmutable de un movimiento. Las correcciones se hacen con movimientos compensatorios.
type Movement struct {
	ID          string
	Type        MovementType
	Date        time.Time
	WarehouseID string
	ProviderID  *string // solo INGRESO
	ClientID    *string // solo DESPACHO
	UserID      *string
	Note        *string
	CreatedAt   time.Time
}

// MovementLine detalle de un movimiento; siempre en unidades, nunca en cajas.
type MovementLine struct {
	ID             string
	MovementID     string
	Position       int
	ProductID      string
	Quantity       decimal.Decimal
	UnitCost       *decimal.Decimal // INGRESO
	UnitPrice      *decimal.Decimal // DESPACHO
	PriceTier      *PriceTier       // DESPACHO
	DiscountReason *string          // solo DESCUENTO
}

// MovementRow fila aplanada (cabecera × línea) para el historial.
type MovementRow struct {
	MovementID     string
	Date           time.Time
	Type           MovementType
	WarehouseID    string
	Warehouse      string
	Provider       *string
	Client         *string
	UserID         *string
	Note           *string
	Position       int
	ProductID      string
	ProductSKU     string
	Product        string
	Quantity       decimal.Decimal
	UnitCost       *decimal.Decimal
	UnitPrice      *decimal.Decimal
	PriceTier      *PriceTier
	DiscountReason *string
}
