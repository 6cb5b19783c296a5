package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/inventory"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

// StockUseCase lectura de la proyección de stock. Nunca escribe.
type StockUseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	cache       StockCache
}

// NewStockUseCase construye el caso de uso. cache puede ser nil.
func NewStockUseCase(stockRepo repository.StockRepository, productRepo repository.ProductRepository, cache StockCache) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, productRepo: productRepo, cache: cache}
}

// GetStock devuelve el stock de un producto. Con warehouseID vacío suma todas las bodegas y
// devuelve el desglose; un par sin registro vale 0.
func (uc *StockUseCase) GetStock(ctx context.Context, productID, warehouseID string) (*dto.StockResponse, error) {
	productID = strings.TrimSpace(productID)
	warehouseID = strings.TrimSpace(warehouseID)
	if productID == "" {
		return nil, fmt.Errorf("%w: producto_id es obligatorio", domain.ErrInvalidInput)
	}
	if uc.cache == nil {
		return uc.load(ctx, productID, warehouseID)
	}
	key, err := uc.cache.BuildKey(ctx, "stock", productID, warehouseID)
	if err != nil {
		return uc.load(ctx, productID, warehouseID)
	}
	var out dto.StockResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		return uc.load(ctx, productID, warehouseID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *StockUseCase) load(ctx context.Context, productID, warehouseID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var entries []*entity.StockEntry
	if warehouseID != "" {
		entry, err := uc.stockRepo.Get(ctx, productID, warehouseID)
		if err != nil {
			return nil, err
		}
		entries = []*entity.StockEntry{entry}
	} else {
		entries, err = uc.stockRepo.ListByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
	}

	total := decimal.Zero
	warehouses := make([]dto.WarehouseStockResponse, 0, len(entries))
	for _, e := range entries {
		total = total.Add(e.Quantity)
		warehouses = append(warehouses, dto.WarehouseStockResponse{
			WarehouseID: e.WarehouseID,
			Quantity:    e.Quantity,
			Boxes:       toBoxResponse(inventory.SplitBoxes(product, e.Quantity)),
		})
	}
	return &dto.StockResponse{
		ProductID:  product.ID,
		SKU:        product.SKU,
		Name:       product.Name,
		Total:      total,
		Boxes:      toBoxResponse(inventory.SplitBoxes(product, total)),
		Warehouses: warehouses,
	}, nil
}

func toBoxResponse(b *inventory.BoxBreakdown) *dto.BoxBreakdownResponse {
	if b == nil {
		return nil
	}
	return &dto.BoxBreakdownResponse{Boxes: b.Boxes, Loose: b.Loose}
}
