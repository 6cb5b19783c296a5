package memory

import (
	"context"
	"sort"

	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.ClientRepository    = (*ClientRepo)(nil)
	_ repository.ProviderRepository  = (*ProviderRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct {
	a access
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.view(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.view(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return nil
		}
		for id, other := range st.products {
			if id != p.ID && other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, active bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.view(func(st *state) error {
		for _, p := range st.products {
			if p.Active == active {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ProductRepo) SetActive(_ context.Context, id string, active bool) (bool, error) {
	found := false
	err := r.a.view(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return nil
		}
		p.Active = active
		st.products[id] = p
		found = true
		return nil
	})
	return found, err
}

func (r *ProductRepo) HardDelete(_ context.Context, id string) (bool, error) {
	found := false
	err := r.a.view(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return nil
		}
		found = true
		for k := range st.stock {
			if k.productID == id {
				delete(st.stock, k)
			}
		}
		kept := st.lines[:0]
		for _, l := range st.lines {
			if l.ProductID != id {
				kept = append(kept, l)
			}
		}
		st.lines = kept
		delete(st.products, id)
		return nil
	})
	return found, err
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	a access
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; ok {
			return domain.ErrDuplicate
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.a.view(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; ok {
			st.warehouses[w.ID] = *w
		}
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context, active bool) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.a.view(func(st *state) error {
		for _, w := range st.warehouses {
			if w.Active == active {
				w := w
				out = append(out, &w)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *WarehouseRepo) SetActive(_ context.Context, id string, active bool) (bool, error) {
	found := false
	err := r.a.view(func(st *state) error {
		w, ok := st.warehouses[id]
		if !ok {
			return nil
		}
		w.Active = active
		st.warehouses[id] = w
		found = true
		return nil
	})
	return found, err
}

func (r *WarehouseRepo) HardDelete(_ context.Context, id string) (bool, error) {
	found := false
	err := r.a.view(func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return nil
		}
		found = true
		for k := range st.stock {
			if k.warehouseID == id {
				delete(st.stock, k)
			}
		}
		kept := st.lines[:0]
		for _, l := range st.lines {
			if m, ok := st.movements[l.MovementID]; !ok || m.WarehouseID != id {
				kept = append(kept, l)
			}
		}
		st.lines = kept
		for mid, m := range st.movements {
			if m.WarehouseID == id {
				delete(st.movements, mid)
			}
		}
		delete(st.warehouses, id)
		return nil
	})
	return found, err
}

// ClientRepo clientes en memoria.
type ClientRepo struct {
	a access
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.a.view(func(st *state) error {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.clients[c.ID]; ok {
			st.clients[c.ID] = *c
		}
		return nil
	})
}

func (r *ClientRepo) List(_ context.Context, active bool) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.a.view(func(st *state) error {
		for _, c := range st.clients {
			if c.Active == active {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ClientRepo) SetActive(_ context.Context, id string, active bool) (bool, error) {
	found := false
	err := r.a.view(func(st *state) error {
		c, ok := st.clients[id]
		if !ok {
			return nil
		}
		c.Active = active
		st.clients[id] = c
		found = true
		return nil
	})
	return found, err
}

// ProviderRepo proveedores en memoria.
type ProviderRepo struct {
	a access
}

func (r *ProviderRepo) Create(_ context.Context, p *entity.Provider) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.providers[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.providers[p.ID] = *p
		return nil
	})
}

func (r *ProviderRepo) GetByID(_ context.Context, id string) (*entity.Provider, error) {
	var out *entity.Provider
	err := r.a.view(func(st *state) error {
		if p, ok := st.providers[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProviderRepo) Update(_ context.Context, p *entity.Provider) error {
	return r.a.view(func(st *state) error {
		if _, ok := st.providers[p.ID]; ok {
			st.providers[p.ID] = *p
		}
		return nil
	})
}

func (r *ProviderRepo) List(_ context.Context, active bool) ([]*entity.Provider, error) {
	var out []*entity.Provider
	err := r.a.view(func(st *state) error {
		for _, p := range st.providers {
			if p.Active == active {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ProviderRepo) SetActive(_ context.Context, id string, active bool) (bool, error) {
	found := false
	err := r.a.view(func(st *state) error {
		p, ok := st.providers[id]
		if !ok {
			return nil
		}
		p.Active = active
		st.providers[id] = p
		found = true
		return nil
	})
	return found, err
}

func (r *ProviderRepo) HardDelete(_ context.Context, id string) (bool, error) {
	found := false
	err := r.a.view(func(st *state) error {
		if _, ok := st.providers[id]; !ok {
			return nil
		}
		found = true
		for mid, m := range st.movements {
			if m.ProviderID != nil && *m.ProviderID == id {
				m.ProviderID = nil
				st.movements[mid] = m
			}
		}
		for pid, p := range st.products {
			if p.ProviderID != nil && *p.ProviderID == id {
				p.ProviderID = nil
				st.products[pid] = p
			}
		}
		delete(st.providers, id)
		return nil
	})
	return found, err
}
