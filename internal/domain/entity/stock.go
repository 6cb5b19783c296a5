package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry es la cantidad derivada de un producto en una bodega.
// Solo el libro de movimientos la modifica; nunca debe quedar negativa.
type StockEntry struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
