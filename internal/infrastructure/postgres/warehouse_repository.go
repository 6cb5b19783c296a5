package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO bodegas (id, nombre, direccion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Address, w.Active, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return mapWriteError("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID, activa o no.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id::text, nombre, direccion, activo, created_at, updated_at
		FROM bodegas WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Address, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE bodegas SET nombre = $2, direccion = $3, activo = $4, updated_at = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Address, w.Active, w.UpdatedAt); err != nil {
		return mapWriteError("update warehouse", err)
	}
	return nil
}

// List lista bodegas activas o inactivas.
func (r *WarehouseRepo) List(ctx context.Context, active bool) ([]*entity.Warehouse, error) {
	query := `
		SELECT id::text, nombre, direccion, activo, created_at, updated_at
		FROM bodegas WHERE activo = $1 ORDER BY nombre`
	rows, err := r.q.Query(ctx, query, active)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// SetActive cambia el flag activo; false si la bodega no existe.
func (r *WarehouseRepo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	return setActive(ctx, r.q, "bodegas", id, active)
}

// HardDelete borra la bodega con su stock, sus movimientos y las líneas de éstos.
// Debe ejecutarse dentro de TxRunner.
func (r *WarehouseRepo) HardDelete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	steps := []struct {
		op    string
		query string
	}{
		{"purge warehouse stock", `DELETE FROM stock WHERE bodega_id = $1`},
		{"purge warehouse lines", `DELETE FROM movimiento_detalles WHERE movimiento_id IN (SELECT id FROM movimientos WHERE bodega_id = $1)`},
		{"purge warehouse movements", `DELETE FROM movimientos WHERE bodega_id = $1`},
	}
	for _, s := range steps {
		if _, err := r.q.Exec(ctx, s.query, id); err != nil {
			return false, fmt.Errorf("%s: %w", s.op, err)
		}
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM bodegas WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete warehouse: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
