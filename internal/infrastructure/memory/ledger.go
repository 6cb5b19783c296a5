package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.StockRepository    = (*StockRepo)(nil)
)

// MovementRepo cabeceras y líneas en memoria.
type MovementRepo struct {
	a access
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.movements[m.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.warehouses[m.WarehouseID]; !ok {
			return domain.ErrReferenceNotFound
		}
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepo) CreateLine(_ context.Context, l *entity.MovementLine) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.movements[l.MovementID]; !ok {
			return domain.ErrReferenceNotFound
		}
		if _, ok := st.products[l.ProductID]; !ok {
			return domain.ErrReferenceNotFound
		}
		st.lines = append(st.lines, *l)
		return nil
	})
}

func (r *MovementRepo) ListRows(_ context.Context, typeFilter entity.MovementType) ([]entity.MovementRow, error) {
	var rows []entity.MovementRow
	createdAt := make(map[string]time.Time)
	err := r.a.view(func(st *state) error {
		for _, l := range st.lines {
			m, ok := st.movements[l.MovementID]
			if !ok || (typeFilter != "" && m.Type != typeFilter) {
				continue
			}
			createdAt[m.ID] = m.CreatedAt
			row := entity.MovementRow{
				MovementID:     m.ID,
				Date:           m.Date,
				Type:           m.Type,
				WarehouseID:    m.WarehouseID,
				UserID:         m.UserID,
				Note:           m.Note,
				Position:       l.Position,
				ProductID:      l.ProductID,
				Quantity:       l.Quantity,
				UnitCost:       l.UnitCost,
				UnitPrice:      l.UnitPrice,
				PriceTier:      l.PriceTier,
				DiscountReason: l.DiscountReason,
			}
			if w, ok := st.warehouses[m.WarehouseID]; ok {
				row.Warehouse = w.Name
			}
			if p, ok := st.products[l.ProductID]; ok {
				row.ProductSKU = p.SKU
				row.Product = p.Name
			}
			if m.ProviderID != nil {
				if p, ok := st.providers[*m.ProviderID]; ok {
					name := p.Name
					row.Provider = &name
				}
			}
			if m.ClientID != nil {
				if c, ok := st.clients[*m.ClientID]; ok {
					name := c.Name
					row.Client = &name
				}
			}
			rows = append(rows, row)
		}
		return nil
	})
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		// misma fecha: el registrado último va primero
		if ca, cb := createdAt[a.MovementID], createdAt[b.MovementID]; !ca.Equal(cb) {
			return ca.After(cb)
		}
		if a.MovementID != b.MovementID {
			return a.MovementID > b.MovementID
		}
		return a.Position < b.Position
	})
	return rows, err
}

// StockRepo proyección de stock en memoria.
type StockRepo struct {
	a access
}

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	out := &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}
	err := r.a.view(func(st *state) error {
		if e, ok := st.stock[stockKey{productID: productID, warehouseID: warehouseID}]; ok {
			*out = e
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	err := r.a.view(func(st *state) error {
		for k, e := range st.stock {
			if k.productID == productID {
				e := e
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, err
}

func (r *StockRepo) ApplyDelta(_ context.Context, productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var qty decimal.Decimal
	err := r.a.view(func(st *state) error {
		key := stockKey{productID: productID, warehouseID: warehouseID}
		e, ok := st.stock[key]
		if !ok {
			e = entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}
		}
		e.Quantity = e.Quantity.Add(delta)
		e.UpdatedAt = time.Now().UTC()
		st.stock[key] = e
		qty = e.Quantity
		return nil
	})
	return qty, err
}
