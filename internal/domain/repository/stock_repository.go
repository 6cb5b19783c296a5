package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

// StockRepository puerto para la proyección de stock por producto y bodega.
type StockRepository interface {
	// Get devuelve el stock del par; un par sin fila vale 0, nunca error.
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error)
	// ApplyDelta suma delta al par bloqueando la fila hasta el fin de la transacción
	// y devuelve la cantidad resultante. Solo debe usarse dentro de TxRunner.
	ApplyDelta(ctx context.Context, productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error)
}
