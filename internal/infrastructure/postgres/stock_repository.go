package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega; sin fila devuelve 0.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	zero := &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}
	if !validID(productID) || !validID(warehouseID) {
		return zero, nil
	}
	query := `
		SELECT producto_id::text, bodega_id::text, cantidad, updated_at
		FROM stock WHERE producto_id = $1 AND bodega_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// ListByProduct lista el stock de un producto en todas las bodegas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error) {
	if !validID(productID) {
		return nil, nil
	}
	query := `
		SELECT producto_id::text, bodega_id::text, cantidad, updated_at
		FROM stock WHERE producto_id = $1 ORDER BY bodega_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var s entity.StockEntry
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ApplyDelta suma delta al par con un upsert atómico. La fila queda bloqueada hasta el fin de la
// transacción, así dos despachos concurrentes sobre el mismo par se serializan y el segundo ve
// el decremento del primero.
func (r *StockRepo) ApplyDelta(ctx context.Context, productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (producto_id, bodega_id, cantidad, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (producto_id, bodega_id)
		DO UPDATE SET cantidad = stock.cantidad + EXCLUDED.cantidad, updated_at = now()
		RETURNING cantidad`
	var qty decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, warehouseID, delta).Scan(&qty); err != nil {
		return decimal.Zero, mapWriteError("apply stock delta", err)
	}
	return qty, nil
}
