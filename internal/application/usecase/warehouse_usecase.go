package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
	"github.com/casaguflo/inventario-api/pkg/logger"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	txRunner inventory.TxRunner
	cache    inventory.StockCache
	log      *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso. cache y log pueden ser nil.
func NewWarehouseUseCase(repo repository.WarehouseRepository, txRunner inventory.TxRunner, cache inventory.StockCache, log *logger.Logger) *WarehouseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &WarehouseUseCase{repo: repo, txRunner: txRunner, cache: cache, log: log.Component("bodegas")}
}

// Create crea una nueva bodega activa.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		warehouse.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		warehouse.Address = strings.TrimSpace(*in.Address)
	}
	if in.Active != nil {
		warehouse.Active = *in.Active
	}
	if warehouse.Name == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	warehouse.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas activas o inactivas.
func (uc *WarehouseUseCase) List(ctx context.Context, active bool) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

// Deactivate borrado lógico de una bodega.
func (uc *WarehouseUseCase) Deactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, false)
}

// Reactivate vuelve a activar una bodega.
func (uc *WarehouseUseCase) Reactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, true)
}

// HardDelete elimina la bodega con sus movimientos, líneas y stock en una sola transacción.
func (uc *WarehouseUseCase) HardDelete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		found, err := repos.Warehouses.HardDelete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	if uc.cache != nil {
		if err := uc.cache.Bump(ctx); err != nil {
			uc.log.Error().Err(err).Msg("invalidar caché de stock")
		}
	}
	return nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
