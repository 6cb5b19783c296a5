package repository

import (
	"context"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, active bool) ([]*entity.Client, error)
	SetActive(ctx context.Context, id string, active bool) (bool, error)
}

// ProviderRepository puerto de persistencia para proveedores.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
	List(ctx context.Context, active bool) ([]*entity.Provider, error)
	SetActive(ctx context.Context, id string, active bool) (bool, error)
	// HardDelete borra el proveedor y lo desvincula de movimientos y productos.
	HardDelete(ctx context.Context, id string) (bool, error)
}
