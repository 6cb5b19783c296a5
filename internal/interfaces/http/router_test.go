package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/application/usecase"
	"github.com/casaguflo/inventario-api/internal/infrastructure/memory"
	apphttp "github.com/casaguflo/inventario-api/internal/interfaces/http"
	"github.com/casaguflo/inventario-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:      inventory.NewRecordMovementUseCase(store, nil, nil),
		History:     inventory.NewHistoryUseCase(repos.Movements),
		Stock:       inventory.NewStockUseCase(repos.Stock, repos.Products, nil),
		ProductUC:   usecase.NewProductUseCase(repos.Products, repos.Stock, store, nil, nil),
		WarehouseUC: usecase.NewWarehouseUseCase(repos.Warehouses, store, nil, nil),
		ClientUC:    usecase.NewClientUseCase(repos.Clients),
		ProviderUC:  usecase.NewProviderUseCase(repos.Providers, store),
		JWTSecret:   testJWTSecret,
	})
	return app
}

// call lanza la petición con el rol indicado y devuelve status y cuerpo crudo.
func call(t *testing.T, app *fiber.App, role, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type seeded struct {
	warehouseID string
	productID   string
}

func seed(t *testing.T, app *fiber.App) seeded {
	t.Helper()
	status, raw := call(t, app, "admin", http.MethodPost, "/api/bodegas", map[string]any{"nombre": "Matriz"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	w := decode[dto.WarehouseResponse](t, raw)

	status, raw = call(t, app, "admin", http.MethodPost, "/api/productos", map[string]any{
		"sku": "CEM-50", "nombre": "Cemento 50kg",
		"precio_compra": "5", "precio_venta": "9.99", "precio_mayorista": "8",
		"precio_caja": "8.50", "unidades_por_caja": 12,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	p := decode[dto.ProductResponse](t, raw)
	return seeded{warehouseID: w.ID, productID: p.ID}
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoIngresoDespacho(t *testing.T) {
	app := newTestAPI(t)
	s := seed(t, app)

	status, raw := call(t, app, "bodeguero", http.MethodPost, "/api/movimientos/ingresos", map[string]any{
		"bodega_id": s.warehouseID,
		"fecha":     "2024-05-02",
		"detalles":  []map[string]any{{"producto_id": s.productID, "cantidad": 100, "costo_unitario": 5}},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[dto.MessageResponse](t, raw)
	assert.NotEmpty(t, created.ID)

	status, raw = call(t, app, "vendedor", http.MethodPost, "/api/movimientos/despachos", map[string]any{
		"bodega_id": s.warehouseID,
		"detalles":  []map[string]any{{"producto_id": s.productID, "cantidad": 30, "precio_tipo": "NORMAL"}},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = call(t, app, "vendedor", http.MethodPost, "/api/movimientos/despachos", map[string]any{
		"bodega_id": s.warehouseID,
		"detalles":  []map[string]any{{"producto_id": s.productID, "cantidad": 1000, "precio_tipo": "NORMAL"}},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = call(t, app, "vendedor", http.MethodGet, "/api/stock/"+s.productID+"?bodega_id="+s.warehouseID, nil)
	require.Equal(t, http.StatusOK, status)
	stock := decode[dto.StockResponse](t, raw)
	assert.Equal(t, "70", stock.Total.String())
	require.NotNil(t, stock.Boxes)
	assert.Equal(t, "5", stock.Boxes.Boxes.String())
	assert.Equal(t, "10", stock.Boxes.Loose.String())

	status, raw = call(t, app, "vendedor", http.MethodGet, "/api/movimientos?tipo=DESPACHO", nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]dto.MovementRowResponse](t, raw)
	require.Len(t, rows, 1)
	assert.Equal(t, "9.99", rows[0].UnitPrice.String())
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, testUserID, *rows[0].UserID)
}

func TestAPI_ErroresDeValidacion(t *testing.T) {
	app := newTestAPI(t)
	s := seed(t, app)

	tests := []struct {
		name string
		body map[string]any
		code string
	}{
		{"sin bodega", map[string]any{"detalles": []map[string]any{{"producto_id": s.productID, "cantidad": 1}}}, "VALIDATION"},
		{"sin detalles", map[string]any{"bodega_id": s.warehouseID, "detalles": []map[string]any{}}, "VALIDATION"},
		{"fecha inválida", map[string]any{"bodega_id": s.warehouseID, "fecha": "02/05/2024", "detalles": []map[string]any{{"producto_id": s.productID, "cantidad": 1}}}, "VALIDATION"},
		{"tipo de precio desconocido", map[string]any{"bodega_id": s.warehouseID, "detalles": []map[string]any{{"producto_id": s.productID, "cantidad": 1, "precio_tipo": "VIP"}}}, "VALIDATION"},
		{"producto inexistente", map[string]any{"bodega_id": s.warehouseID, "detalles": []map[string]any{{"producto_id": "nada", "cantidad": 1}}}, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := call(t, app, "admin", http.MethodPost, "/api/movimientos/despachos", tt.body)
			assert.Equal(t, http.StatusBadRequest, status, string(raw))
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, raw).Code)
		})
	}

	status, raw := call(t, app, "admin", http.MethodGet, "/api/movimientos?tipo=AJUSTE", nil)
	assert.Equal(t, http.StatusBadRequest, status, string(raw))

	status, _ = call(t, app, "admin", http.MethodGet, "/api/stock/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_RolesEnMovimientos(t *testing.T) {
	app := newTestAPI(t)
	s := seed(t, app)

	status, _ := call(t, app, "vendedor", http.MethodPost, "/api/movimientos/ingresos", map[string]any{
		"bodega_id": s.warehouseID,
		"detalles":  []map[string]any{{"producto_id": s.productID, "cantidad": 1}},
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, "", http.MethodGet, "/api/movimientos", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ProductoCajaInvalida(t *testing.T) {
	app := newTestAPI(t)
	status, raw := call(t, app, "admin", http.MethodPost, "/api/productos", map[string]any{
		"sku": "X", "nombre": "X", "precio_caja": 10,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = call(t, app, "admin", http.MethodPost, "/api/productos", map[string]any{"nombre": "sin sku"})
	assert.Equal(t, http.StatusBadRequest, status, string(raw))
}

func TestAPI_ProductoSKUDuplicado(t *testing.T) {
	app := newTestAPI(t)
	seed(t, app)
	status, raw := call(t, app, "admin", http.MethodPost, "/api/productos", map[string]any{"sku": "CEM-50", "nombre": "Otro"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, raw).Code)
}

func TestAPI_BorradoLogicoYHard(t *testing.T) {
	app := newTestAPI(t)
	s := seed(t, app)

	status, _ := call(t, app, "bodeguero", http.MethodDelete, "/api/productos/"+s.productID, nil)
	require.Equal(t, http.StatusOK, status)
	_, raw := call(t, app, "bodeguero", http.MethodGet, "/api/productos/inactivos", nil)
	assert.Len(t, decode[[]dto.ProductResponse](t, raw), 1)

	status, _ = call(t, app, "bodeguero", http.MethodPut, "/api/productos/"+s.productID+"/reactivar", nil)
	require.Equal(t, http.StatusOK, status)
	_, raw = call(t, app, "bodeguero", http.MethodGet, "/api/productos", nil)
	assert.Len(t, decode[[]dto.ProductResponse](t, raw), 1)

	status, _ = call(t, app, "bodeguero", http.MethodDelete, "/api/bodegas/"+s.warehouseID+"/hard", nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, "admin", http.MethodDelete, "/api/bodegas/"+s.warehouseID+"/hard", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, "admin", http.MethodGet, "/api/bodegas/"+s.warehouseID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ClienteIdentificacion(t *testing.T) {
	app := newTestAPI(t)

	status, raw := call(t, app, "vendedor", http.MethodPost, "/api/clientes", map[string]any{
		"identificacion": "0102030405", "nombre": "Mal",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = call(t, app, "vendedor", http.MethodPost, "/api/clientes", map[string]any{
		"identificacion": "1710034065", "nombre": "Bien", "correo": "bien@example.com",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = call(t, app, "vendedor", http.MethodPost, "/api/proveedores", map[string]any{
		"nombre": "Proveedor", "correo": "no-es-correo",
	})
	assert.Equal(t, http.StatusBadRequest, status, string(raw))
}

func TestAPI_Health(t *testing.T) {
	app := newTestAPI(t)
	status, _ := call(t, app, "", http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
}
