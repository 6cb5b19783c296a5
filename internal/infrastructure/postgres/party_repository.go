package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository   = (*ClientRepo)(nil)
	_ repository.ProviderRepository = (*ProviderRepo)(nil)
)

// ClientRepo clientes sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id::text, identificacion, nombre, telefono, correo, activo, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.LegalID, &c.Name, &c.Phone, &c.Email, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clientes (id, identificacion, nombre, telefono, correo, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, c.ID, c.LegalID, c.Name, c.Phone, c.Email, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapWriteError("insert client", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clientes SET identificacion = $2, nombre = $3, telefono = $4, correo = $5, activo = $6, updated_at = $7
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, c.ID, c.LegalID, c.Name, c.Phone, c.Email, c.Active, c.UpdatedAt); err != nil {
		return mapWriteError("update client", err)
	}
	return nil
}

func (r *ClientRepo) List(ctx context.Context, active bool) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clientes WHERE activo = $1 ORDER BY nombre`, active)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	return setActive(ctx, r.q, "clientes", id, active)
}

// ProviderRepo proveedores sobre PostgreSQL.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

const providerColumns = `id::text, identificacion, nombre, contacto, telefono, correo, activo, created_at, updated_at`

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	err := row.Scan(&p.ID, &p.LegalID, &p.Name, &p.ContactName, &p.Phone, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	query := `
		INSERT INTO proveedores (id, identificacion, nombre, contacto, telefono, correo, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, p.ID, p.LegalID, p.Name, p.ContactName, p.Phone, p.Email, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert provider", err)
	}
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProvider(r.q.QueryRow(ctx, `SELECT `+providerColumns+` FROM proveedores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	query := `
		UPDATE proveedores SET identificacion = $2, nombre = $3, contacto = $4, telefono = $5, correo = $6,
			activo = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.LegalID, p.Name, p.ContactName, p.Phone, p.Email, p.Active, p.UpdatedAt)
	if err != nil {
		return mapWriteError("update provider", err)
	}
	return nil
}

func (r *ProviderRepo) List(ctx context.Context, active bool) ([]*entity.Provider, error) {
	rows, err := r.q.Query(ctx, `SELECT `+providerColumns+` FROM proveedores WHERE activo = $1 ORDER BY nombre`, active)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProviderRepo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	return setActive(ctx, r.q, "proveedores", id, active)
}

// HardDelete borra el proveedor dejando sin referencia sus movimientos y productos.
// Debe ejecutarse dentro de TxRunner.
func (r *ProviderRepo) HardDelete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	if _, err := r.q.Exec(ctx, `UPDATE movimientos SET proveedor_id = NULL WHERE proveedor_id = $1`, id); err != nil {
		return false, fmt.Errorf("unlink provider movements: %w", err)
	}
	if _, err := r.q.Exec(ctx, `UPDATE productos SET proveedor_id = NULL WHERE proveedor_id = $1`, id); err != nil {
		return false, fmt.Errorf("unlink provider products: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete provider: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
