package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"nombre" validate:"required,min=1,max=200"`
	CategoryID     *string         `json:"categoria_id"`
	ProviderID     *string         `json:"proveedor_id"`
	UnitID         *string         `json:"unidad_id"`
	PurchasePrice  decimal.Decimal `json:"precio_compra"`
	RetailPrice    decimal.Decimal `json:"precio_venta"`
	WholesalePrice decimal.Decimal `json:"precio_mayorista"`
	BoxPrice       decimal.Decimal `json:"precio_caja"`
	UnitsPerBox    *int            `json:"unidades_por_caja"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no se modifican.
type UpdateProductRequest struct {
	SKU            *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name           *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	CategoryID     *string          `json:"categoria_id"`
	ProviderID     *string          `json:"proveedor_id"`
	UnitID         *string          `json:"unidad_id"`
	PurchasePrice  *decimal.Decimal `json:"precio_compra"`
	RetailPrice    *decimal.Decimal `json:"precio_venta"`
	WholesalePrice *decimal.Decimal `json:"precio_mayorista"`
	BoxPrice       *decimal.Decimal `json:"precio_caja"`
	UnitsPerBox    *int             `json:"unidades_por_caja"`
	Active         *bool            `json:"activo"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string           `json:"id"`
	SKU            string           `json:"sku"`
	Name           string           `json:"nombre"`
	CategoryID     *string          `json:"categoria_id"`
	ProviderID     *string          `json:"proveedor_id"`
	UnitID         *string          `json:"unidad_id"`
	PurchasePrice  decimal.Decimal  `json:"precio_compra"`
	RetailPrice    decimal.Decimal  `json:"precio_venta"`
	WholesalePrice decimal.Decimal  `json:"precio_mayorista"`
	BoxPrice       decimal.Decimal  `json:"precio_caja"`
	UnitsPerBox    *int             `json:"unidades_por_caja"`
	Active         bool             `json:"activo"`
	Stock          *decimal.Decimal `json:"stock,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
