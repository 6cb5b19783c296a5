package repository

import (
	"context"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, active bool) ([]*entity.Product, error)
	SetActive(ctx context.Context, id string, active bool) (bool, error)
	// HardDelete borra el producto y purga su stock y líneas de movimiento.
	HardDelete(ctx context.Context, id string) (bool, error)
}
