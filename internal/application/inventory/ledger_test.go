package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/internal/domain/entity"
	"github.com/casaguflo/inventario-api/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

type fixture struct {
	store   *memory.Store
	ledger  *inventory.RecordMovementUseCase
	stock   *inventory.StockUseCase
	history *inventory.HistoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	units := 12
	now := time.Now().UTC()

	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "W", Name: "Matriz", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "W2", Name: "Sucursal", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "P", SKU: "SKU-P", Name: "Clavo 2in",
		PurchasePrice: dec("5"), RetailPrice: dec("9.99"), WholesalePrice: dec("8.00"),
		BoxPrice: dec("8.50"), UnitsPerBox: &units, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "Q", SKU: "SKU-Q", Name: "Tornillo", RetailPrice: dec("1.25"), Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: "C", Name: "Ferretería Andes", Active: true}))
	require.NoError(t, repos.Providers.Create(ctx, &entity.Provider{ID: "PR", Name: "Importadora Sur", Active: true}))

	return &fixture{
		store:   store,
		ledger:  inventory.NewRecordMovementUseCase(store, nil, nil),
		stock:   inventory.NewStockUseCase(repos.Stock, repos.Products, nil),
		history: inventory.NewHistoryUseCase(repos.Movements),
	}
}

func (f *fixture) qty(t *testing.T, productID, warehouseID string) decimal.Decimal {
	t.Helper()
	out, err := f.stock.GetStock(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	return out.Total
}

func (f *fixture) ingreso(t *testing.T, warehouseID, productID, qty string) string {
	t.Helper()
	id, err := f.ledger.RecordIngreso(context.Background(), inventory.RecordIngresoInput{
		WarehouseID: warehouseID,
		Lines:       []inventory.IngresoLineInput{{ProductID: productID, Quantity: dec(qty)}},
	})
	require.NoError(t, err)
	return id
}

// ─────────────────────────────────────────────────────────────────────────────
// Escenarios de extremo a extremo
// ─────────────────────────────────────────────────────────────────────────────

func TestLedger_IngresoDespachoYRechazo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A: ingreso sobre stock 0.
	_, err := f.ledger.RecordIngreso(ctx, inventory.RecordIngresoInput{
		WarehouseID: "W",
		ProviderID:  strPtr("PR"),
		Lines:       []inventory.IngresoLineInput{{ProductID: "P", Quantity: dec("100"), UnitCost: decPtr("5")}},
	})
	require.NoError(t, err)
	assert.True(t, f.qty(t, "P", "W").Equal(dec("100")))

	// B: despacho NORMAL persiste el precio de venta.
	_, err = f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		ClientID:    strPtr("C"),
		Lines:       []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("30"), PriceTier: "NORMAL"}},
	})
	require.NoError(t, err)
	assert.True(t, f.qty(t, "P", "W").Equal(dec("70")))

	rows, err := f.history.ListMovements(ctx, "DESPACHO")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].UnitPrice)
	assert.True(t, rows[0].UnitPrice.Equal(dec("9.99")))
	assert.Equal(t, "Ferretería Andes", *rows[0].Client)

	// C: despacho mayor al stock se rechaza y no altera nada.
	_, err = f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines:       []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("1000"), PriceTier: "NORMAL"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, f.qty(t, "P", "W").Equal(dec("70")))

	rows, err = f.history.ListMovements(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLedger_DespachoCajaRegistraUnidades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "20")

	_, err := f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines:       []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("5"), PriceTier: "CAJA"}},
	})
	require.NoError(t, err)

	rows, err := f.history.ListMovements(ctx, "DESPACHO")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.Equal(dec("5")))
	assert.True(t, rows[0].UnitPrice.Equal(dec("8.50")))
	assert.Equal(t, "CAJA", *rows[0].PriceTier)
	assert.Nil(t, rows[0].DiscountReason)
	assert.True(t, f.qty(t, "P", "W").Equal(dec("15")))
}

func TestLedger_DescuentoUsaPrecioExplicitoYMotivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "10")

	_, err := f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines: []inventory.DespachoLineInput{
			{ProductID: "P", Quantity: dec("1"), PriceTier: "DESCUENTO", UnitPrice: decPtr("7.00"), DiscountReason: strPtr("  cliente frecuente ")},
			{ProductID: "P", Quantity: dec("1"), PriceTier: "NORMAL", UnitPrice: decPtr("1.00"), DiscountReason: strPtr("ignorado")},
		},
	})
	require.NoError(t, err)

	rows, err := f.history.ListMovements(ctx, "DESPACHO")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Position)
	assert.True(t, rows[0].UnitPrice.Equal(dec("7.00")))
	assert.Equal(t, "cliente frecuente", *rows[0].DiscountReason)
	assert.Equal(t, 2, rows[1].Position)
	assert.True(t, rows[1].UnitPrice.Equal(dec("9.99")), "el precio explícito solo aplica a DESCUENTO")
	assert.Nil(t, rows[1].DiscountReason)
}

func TestLedger_IngresoSinCostoUsaPrecioCompra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.RecordIngreso(ctx, inventory.RecordIngresoInput{
		WarehouseID: "W",
		Lines: []inventory.IngresoLineInput{
			{ProductID: "P", Quantity: dec("2")},
			{ProductID: "Q", Quantity: dec("3")},
		},
	})
	require.NoError(t, err)

	rows, err := f.history.ListMovements(ctx, "ingreso")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].UnitCost)
	assert.True(t, rows[0].UnitCost.Equal(dec("5")))
	assert.Nil(t, rows[1].UnitCost, "Q no tiene precio de compra")
}

// ─────────────────────────────────────────────────────────────────────────────
// Atomicidad y no negatividad
// ─────────────────────────────────────────────────────────────────────────────

func TestLedger_FalloEnLineaPosteriorNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "10")
	f.ingreso(t, "W", "Q", "10")

	_, err := f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines: []inventory.DespachoLineInput{
			{ProductID: "P", Quantity: dec("4")},
			{ProductID: "NOEXISTE", Quantity: dec("1")},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrReferenceNotFound))
	assert.True(t, f.qty(t, "P", "W").Equal(dec("10")))

	_, err = f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines: []inventory.DespachoLineInput{
			{ProductID: "Q", Quantity: dec("5")},
			{ProductID: "P", Quantity: dec("11")},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, f.qty(t, "Q", "W").Equal(dec("10")))
	assert.True(t, f.qty(t, "P", "W").Equal(dec("10")))

	rows, err := f.history.ListMovements(ctx, "DESPACHO")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLedger_LineasRepetidasSeVerificanEnAgregado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "10")

	_, err := f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines: []inventory.DespachoLineInput{
			{ProductID: "P", Quantity: dec("6")},
			{ProductID: "P", Quantity: dec("6")},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines: []inventory.DespachoLineInput{
			{ProductID: "P", Quantity: dec("5")},
			{ProductID: "P", Quantity: dec("5")},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.qty(t, "P", "W").IsZero())
}

func TestLedger_StockEsPorBodega(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "10")

	_, err := f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W2",
		Lines:       []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	out, err := f.stock.GetStock(ctx, "P", "")
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(dec("10")))
	require.Len(t, out.Warehouses, 1)
	assert.Equal(t, "W", out.Warehouses[0].WarehouseID)
}

func TestLedger_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   inventory.RecordDespachoInput
		want error
	}{
		{"sin bodega", inventory.RecordDespachoInput{Lines: []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("1")}}}, domain.ErrInvalidInput},
		{"sin detalles", inventory.RecordDespachoInput{WarehouseID: "W"}, domain.ErrInvalidInput},
		{"detalles vacíos se descartan", inventory.RecordDespachoInput{WarehouseID: "W", Lines: []inventory.DespachoLineInput{{ProductID: "", Quantity: dec("3")}, {ProductID: "P", Quantity: decimal.Zero}}}, domain.ErrInvalidInput},
		{"cantidad negativa", inventory.RecordDespachoInput{WarehouseID: "W", Lines: []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("-1")}}}, domain.ErrInvalidInput},
		{"tipo de precio desconocido", inventory.RecordDespachoInput{WarehouseID: "W", Lines: []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("1"), PriceTier: "VIP"}}}, domain.ErrInvalidInput},
		{"bodega inexistente", inventory.RecordDespachoInput{WarehouseID: "X", Lines: []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("1")}}}, domain.ErrReferenceNotFound},
		{"cliente inexistente", inventory.RecordDespachoInput{WarehouseID: "W", ClientID: strPtr("X"), Lines: []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("1")}}}, domain.ErrReferenceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.RecordDespacho(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	rows, err := f.history.ListMovements(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLedger_ConcurrenciaNoSobregira(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "10")

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
				WarehouseID: "W",
				Lines:       []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("1")}},
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, rejected)
	assert.True(t, f.qty(t, "P", "W").IsZero())
}

// ─────────────────────────────────────────────────────────────────────────────
// Conservación e historial
// ─────────────────────────────────────────────────────────────────────────────

func TestLedger_ConservacionContraHistorial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "40")
	f.ingreso(t, "W", "P", "2.5")
	f.ingreso(t, "W2", "P", "7")
	_, err := f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W",
		Lines:       []inventory.DespachoLineInput{{ProductID: "P", Quantity: dec("12.5"), PriceTier: "MAYORISTA"}},
	})
	require.NoError(t, err)

	rows, err := f.history.ListMovements(ctx, "")
	require.NoError(t, err)
	sum := map[string]decimal.Decimal{}
	for _, r := range rows {
		q := r.Quantity
		if r.Type == string(entity.MovementDespacho) {
			q = q.Neg()
		}
		sum[r.WarehouseID] = sum[r.WarehouseID].Add(q)
	}
	assert.True(t, sum["W"].Equal(f.qty(t, "P", "W")))
	assert.True(t, sum["W2"].Equal(f.qty(t, "P", "W2")))
	assert.True(t, f.qty(t, "P", "W").Equal(dec("30")))
}

func TestHistory_OrdenYFiltro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	older := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.ledger.RecordIngreso(ctx, inventory.RecordIngresoInput{
		WarehouseID: "W", Date: &older, Note: strPtr("inicial"),
		Lines: []inventory.IngresoLineInput{{ProductID: "P", Quantity: dec("5")}, {ProductID: "Q", Quantity: dec("5")}},
	})
	require.NoError(t, err)
	_, err = f.ledger.RecordDespacho(ctx, inventory.RecordDespachoInput{
		WarehouseID: "W", Date: &newer,
		Lines: []inventory.DespachoLineInput{{ProductID: "Q", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	rows, err := f.history.ListMovements(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "DESPACHO", rows[0].Type)
	assert.Equal(t, "INGRESO", rows[1].Type)
	assert.Equal(t, 1, rows[1].Position)
	assert.Equal(t, 2, rows[2].Position)
	assert.Equal(t, "Matriz", rows[1].Warehouse)
	assert.Equal(t, "SKU-Q", rows[2].ProductSKU)
	assert.Nil(t, rows[1].Provider)

	_, err = f.history.ListMovements(ctx, "AJUSTE")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestHistory_MismaFechaMasRecientePrimero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var recorded []string
	for i := 0; i < 20; i++ {
		id, err := f.ledger.RecordIngreso(ctx, inventory.RecordIngresoInput{
			WarehouseID: "W", Date: &day,
			Lines: []inventory.IngresoLineInput{{ProductID: "P", Quantity: dec("1")}},
		})
		require.NoError(t, err)
		recorded = append(recorded, id)
	}

	rows, err := f.history.ListMovements(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, len(recorded))
	for i, row := range rows {
		assert.Equal(t, recorded[len(recorded)-1-i], row.ID, "fila %d", i)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Lectura de stock
// ─────────────────────────────────────────────────────────────────────────────

func TestStock_LecturaIdempotenteYCajas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ingreso(t, "W", "P", "70")

	first, err := f.stock.GetStock(ctx, "P", "W")
	require.NoError(t, err)
	second, err := f.stock.GetStock(ctx, "P", "W")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.NotNil(t, first.Boxes)
	assert.True(t, first.Boxes.Boxes.Equal(dec("5")))
	assert.True(t, first.Boxes.Loose.Equal(dec("10")))

	empty, err := f.stock.GetStock(ctx, "Q", "W2")
	require.NoError(t, err)
	assert.True(t, empty.Total.IsZero())
	assert.Nil(t, empty.Boxes)

	_, err = f.stock.GetStock(ctx, "NOEXISTE", "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
