package postgres

import (
	"context"
	"fmt"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste la cabecera de un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimientos (id, tipo, fecha, bodega_id, proveedor_id, cliente_id, usuario_id, observacion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.Type), m.Date, m.WarehouseID, m.ProviderID, m.ClientID, m.UserID, m.Note, m.CreatedAt,
	)
	if err != nil {
		return mapWriteError("create movement", err)
	}
	return nil
}

// CreateLine persiste una línea de movimiento.
func (r *MovementRepo) CreateLine(ctx context.Context, l *entity.MovementLine) error {
	var tier *string
	if l.PriceTier != nil {
		s := string(*l.PriceTier)
		tier = &s
	}
	query := `
		INSERT INTO movimiento_detalles (id, movimiento_id, linea, producto_id, cantidad,
			costo_unitario, precio_unitario, precio_tipo, motivo_descuento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.MovementID, l.Position, l.ProductID, l.Quantity,
		l.UnitCost, l.UnitPrice, tier, l.DiscountReason,
	)
	if err != nil {
		return mapWriteError("create movement line", err)
	}
	return nil
}

// ListRows devuelve el historial aplanado (cabecera × línea).
func (r *MovementRepo) ListRows(ctx context.Context, typeFilter entity.MovementType) ([]entity.MovementRow, error) {
	query := `
		SELECT m.id::text, m.fecha, m.tipo, m.bodega_id::text, b.nombre, pr.nombre, c.nombre,
			m.usuario_id, m.observacion, d.linea, d.producto_id::text, p.sku, p.nombre,
			d.cantidad, d.costo_unitario, d.precio_unitario, d.precio_tipo, d.motivo_descuento
		FROM movimientos m
		JOIN movimiento_detalles d ON d.movimiento_id = m.id
		JOIN bodegas b ON b.id = m.bodega_id
		JOIN productos p ON p.id = d.producto_id
		LEFT JOIN proveedores pr ON pr.id = m.proveedor_id
		LEFT JOIN clientes c ON c.id = m.cliente_id
		WHERE ($1::text = '' OR m.tipo = $1::text)
		ORDER BY m.fecha DESC, m.created_at DESC, m.id DESC, d.linea ASC`
	rows, err := r.q.Query(ctx, query, string(typeFilter))
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []entity.MovementRow
	for rows.Next() {
		var (
			row     entity.MovementRow
			movType string
			tier    *string
		)
		err := rows.Scan(
			&row.MovementID, &row.Date, &movType, &row.WarehouseID, &row.Warehouse, &row.Provider, &row.Client,
			&row.UserID, &row.Note, &row.Position, &row.ProductID, &row.ProductSKU, &row.Product,
			&row.Quantity, &row.UnitCost, &row.UnitPrice, &tier, &row.DiscountReason,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		row.Type = entity.MovementType(movType)
		if tier != nil {
			t := entity.PriceTier(*tier)
			row.PriceTier = &t
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
