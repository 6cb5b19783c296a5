package inventory

import (
	"context"

	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Movements  repository.MovementRepository
	Stock      repository.StockRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Clients    repository.ClientRepository
	Providers  repository.ProviderRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en cualquier
// otro caso (incluido panic). Garantiza la atomicidad del libro de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// StockCache caché de lecturas de stock. Las escrituras del libro invalidan todo con Bump.
type StockCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error
	Bump(ctx context.Context) error
}
