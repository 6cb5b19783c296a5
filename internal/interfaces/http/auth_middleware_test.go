package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	apphttp "github.com/casaguflo/inventario-api/internal/interfaces/http"
	pkgjwt "github.com/casaguflo/inventario-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventario-api-test"
	testExpMin    = 60
)

// tokenForRole devuelve el header Authorization completo para el rol.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// rbacApp expone GET /bodega protegido por JWT y por los roles indicados.
func rbacApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/bodega",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		role    string
		status  int
		code    string
	}{
		{"admin en ruta admin", []string{apphttp.RoleAdmin}, "admin", http.StatusOK, ""},
		{"bodeguero en ingresos", []string{apphttp.RoleAdmin, apphttp.RoleBodeguero}, "bodeguero", http.StatusOK, ""},
		{"vendedor en despachos", []string{apphttp.RoleAdmin, apphttp.RoleBodeguero, apphttp.RoleVendedor}, "vendedor", http.StatusOK, ""},
		{"vendedor en ingresos", []string{apphttp.RoleAdmin, apphttp.RoleBodeguero}, "vendedor", http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero en hard delete", []string{apphttp.RoleAdmin}, "bodeguero", http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{apphttp.RoleAdmin}, "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/bodega", nil)
			req.Header.Set("Authorization", tokenForRole(t, tt.role))
			resp, err := rbacApp(tt.allowed...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.code != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.code, body.Code)
			}
		})
	}
}

func TestAuthMiddleware_RechazaTokens(t *testing.T) {
	otherSecret, err := pkgjwt.Generate("otro-secreto", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic YWRtaW46YWRtaW4=", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"otra firma", "Bearer " + otherSecret, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/bodega", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := rbacApp(apphttp.RoleAdmin).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestAuthMiddleware_CargaUsuarioYRol(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/bodega", nil)
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := rbacApp(apphttp.RoleBodeguero).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "bodeguero", body["role"])
}
