package repository

import (
	"context"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

// WarehouseRepository puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, active bool) ([]*entity.Warehouse, error)
	SetActive(ctx context.Context, id string, active bool) (bool, error)
	// HardDelete borra la bodega con sus movimientos, líneas y stock.
	HardDelete(ctx context.Context, id string) (bool, error)
}
