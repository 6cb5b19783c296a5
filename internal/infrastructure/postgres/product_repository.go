package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id::text, sku, nombre, categoria_id, proveedor_id, unidad_id,
	precio_compra, precio_venta, precio_mayorista, precio_caja, unidades_por_caja,
	activo, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.CategoryID, &p.ProviderID, &p.UnitID,
		&p.PurchasePrice, &p.RetailPrice, &p.WholesalePrice, &p.BoxPrice, &p.UnitsPerBox,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (id, sku, nombre, categoria_id, proveedor_id, unidad_id,
			precio_compra, precio_venta, precio_mayorista, precio_caja, unidades_por_caja,
			activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.CategoryID, p.ProviderID, p.UnitID,
		p.PurchasePrice, p.RetailPrice, p.WholesalePrice, p.BoxPrice, p.UnitsPerBox,
		p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. El stock no se toca aquí.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET sku = $2, nombre = $3, categoria_id = $4, proveedor_id = $5, unidad_id = $6,
			precio_compra = $7, precio_venta = $8, precio_mayorista = $9, precio_caja = $10,
			unidades_por_caja = $11, activo = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.CategoryID, p.ProviderID, p.UnitID,
		p.PurchasePrice, p.RetailPrice, p.WholesalePrice, p.BoxPrice,
		p.UnitsPerBox, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update product", err)
	}
	return nil
}

// List lista productos activos o inactivos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, active bool) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM productos WHERE activo = $1 ORDER BY nombre`, active)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SetActive cambia el flag activo; false si el producto no existe.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	return setActive(ctx, r.q, "productos", id, active)
}

// HardDelete borra el producto con su stock y sus líneas. Debe ejecutarse dentro de TxRunner.
func (r *ProductRepo) HardDelete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock WHERE producto_id = $1`, id); err != nil {
		return false, fmt.Errorf("purge product stock: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM movimiento_detalles WHERE producto_id = $1`, id); err != nil {
		return false, fmt.Errorf("purge product lines: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// setActive es compartido por todas las tablas del catálogo.
func setActive(ctx context.Context, q Querier, table, id string, active bool) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := q.Exec(ctx, `UPDATE `+table+` SET activo = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return false, fmt.Errorf("set active %s: %w", table, err)
	}
	return cmd.RowsAffected() > 0, nil
}
