// Package memory implementa los puertos de persistencia en memoria. Sirve para STORAGE_DRIVER=memory
// y para las pruebas; las transacciones trabajan sobre una copia del estado que se publica al confirmar.
package memory

import (
	"context"
	"sync"

	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type stockKey struct {
	productID   string
	warehouseID string
}

type state struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	clients    map[string]entity.Client
	providers  map[string]entity.Provider
	movements  map[string]entity.Movement
	lines      []entity.MovementLine
	stock      map[stockKey]entity.StockEntry
}

func newState() *state {
	return &state{
		products:   make(map[string]entity.Product),
		warehouses: make(map[string]entity.Warehouse),
		clients:    make(map[string]entity.Client),
		providers:  make(map[string]entity.Provider),
		movements:  make(map[string]entity.Movement),
		stock:      make(map[stockKey]entity.StockEntry),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.providers {
		c.providers[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	c.lines = append(make([]entity.MovementLine, 0, len(s.lines)), s.lines...)
	return c
}

// access abstrae si un repositorio opera sobre el estado publicado (con lock) o sobre
// la copia de una transacción en curso (el lock ya lo tiene Run).
type access interface {
	view(fn func(st *state) error) error
}

// Store contenedor en memoria. Un único escritor a la vez: Run serializa las transacciones.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) view(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txAccess struct {
	st *state
}

func (t txAccess) view(fn func(st *state) error) error {
	return fn(t.st)
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve nil la copia reemplaza al estado,
// en cualquier otro caso (error, panic o ctx cancelado) se descarta.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, reposFor(txAccess{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos devuelve los repositorios fuera de transacción (lecturas y CRUD de catálogo).
func (s *Store) Repos() inventory.TxRepos {
	return reposFor(s)
}

func reposFor(a access) inventory.TxRepos {
	return inventory.TxRepos{
		Movements:  &MovementRepo{a: a},
		Stock:      &StockRepo{a: a},
		Products:   &ProductRepo{a: a},
		Warehouses: &WarehouseRepo{a: a},
		Clients:    &ClientRepo{a: a},
		Providers:  &ProviderRepo{a: a},
	}
}
