package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
	"github.com/casaguflo/inventario-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	stockRepo repository.StockRepository
	txRunner  inventory.TxRunner
	cache     inventory.StockCache
	log       *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache y log pueden ser nil.
func NewProductUseCase(repo repository.ProductRepository, stockRepo repository.StockRepository, txRunner inventory.TxRunner, cache inventory.StockCache, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, stockRepo: stockRepo, txRunner: txRunner, cache: cache, log: log.Component("productos")}
}

// Create crea un nuevo producto activo. SKU único; precio por caja exige unidades por caja.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, in.SKU)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		CategoryID:     in.CategoryID,
		ProviderID:     in.ProviderID,
		UnitID:         in.UnitID,
		PurchasePrice:  in.PurchasePrice,
		RetailPrice:    in.RetailPrice,
		WholesalePrice: in.WholesalePrice,
		BoxPrice:       in.BoxPrice,
		UnitsPerBox:    in.UnitsPerBox,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// GetByID obtiene un producto por ID con su stock total.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.totalStock(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, &total), nil
}

// Update actualiza un producto; los campos nil no se modifican.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, sku)
			}
		}
		product.SKU = sku
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.ProviderID != nil {
		product.ProviderID = in.ProviderID
	}
	if in.UnitID != nil {
		product.UnitID = in.UnitID
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.RetailPrice != nil {
		product.RetailPrice = *in.RetailPrice
	}
	if in.WholesalePrice != nil {
		product.WholesalePrice = *in.WholesalePrice
	}
	if in.BoxPrice != nil {
		product.BoxPrice = *in.BoxPrice
	}
	if in.UnitsPerBox != nil {
		product.UnitsPerBox = in.UnitsPerBox
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if product.SKU == "" || product.Name == "" {
		return nil, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.bumpCache(ctx)
	return toProductResponse(product, nil), nil
}

// List lista productos activos (o inactivos) con su stock total en todas las bodegas.
func (uc *ProductUseCase) List(ctx context.Context, active bool) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		total, err := uc.totalStock(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toProductResponse(p, &total))
	}
	return items, nil
}

// Deactivate borrado lógico: el producto deja de listarse pero su historial se conserva.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, false)
}

// Reactivate vuelve a activar un producto.
func (uc *ProductUseCase) Reactivate(ctx context.Context, id string) error {
	return setActive(ctx, uc.repo.SetActive, id, true)
}

// HardDelete elimina el producto junto con su stock y sus líneas de movimiento.
func (uc *ProductUseCase) HardDelete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		found, err := repos.Products.HardDelete(ctx, id)
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
	uc.bumpCache(ctx)
	return nil
}

func (uc *ProductUseCase) totalStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	entries, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Quantity)
	}
	return total, nil
}

func (uc *ProductUseCase) bumpCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Error().Err(err).Msg("invalidar caché de stock")
	}
}

func validateProduct(p *entity.Product) error {
	prices := []struct {
		name  string
		value decimal.Decimal
	}{
		{"precio_compra", p.PurchasePrice},
		{"precio_venta", p.RetailPrice},
		{"precio_mayorista", p.WholesalePrice},
		{"precio_caja", p.BoxPrice},
	}
	for _, pr := range prices {
		if pr.value.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, pr.name)
		}
	}
	if !p.BoxConfigValid() {
		return fmt.Errorf("%w: precio_caja requiere unidades_por_caja > 0", domain.ErrInvalidBoxConfig)
	}
	return nil
}

// setActive aplica el borrado lógico o la reactivación de cualquier entidad del catálogo.
func setActive(ctx context.Context, fn func(context.Context, string, bool) (bool, error), id string, active bool) error {
	found, err := fn(ctx, id, active)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product, stock *decimal.Decimal) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		ProviderID:     p.ProviderID,
		UnitID:         p.UnitID,
		PurchasePrice:  p.PurchasePrice,
		RetailPrice:    p.RetailPrice,
		WholesalePrice: p.WholesalePrice,
		BoxPrice:       p.BoxPrice,
		UnitsPerBox:    p.UnitsPerBox,
		Active:         p.Active,
		Stock:          stock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
