package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/odontosys/inventario-api/internal/interfaces/http"
	pkgjwt "github.com/odontosys/inventario-api/pkg/jwt"
)

// buildRouterApp monta el router completo. Los use cases quedan en nil:
// estos tests solo ejercitan los middlewares, que cortan antes del handler.
func buildRouterApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})
	return app
}

func doRoute(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Las rutas de escritura exigen rol owner o editor: un reader autenticado
// recibe 403 en todas.
func TestRouter_ReaderBloqueadoEnEscrituras(t *testing.T) {
	app := buildRouterApp()
	reader := tokenForRole(t, pkgjwt.RoleReader)

	escrituras := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/inventario"},
		{http.MethodPut, "/api/inventario/inv-1"},
		{http.MethodDelete, "/api/inventario/inv-1"},
		{http.MethodPost, "/api/inventario/inv-1/productos"},
		{http.MethodPut, "/api/inventario/productos/prod-1"},
		{http.MethodDelete, "/api/inventario/productos/prod-1"},
		{http.MethodPost, "/api/inventario/inv-1/materiales/entrada"},
		{http.MethodPost, "/api/inventario/inv-1/materiales/salida"},
		{http.MethodPost, "/api/inventario/inv-1/activos/entrada"},
		{http.MethodPost, "/api/inventario/inv-1/ajustar-stock"},
		{http.MethodPost, "/api/inventario/activos/eq-1/vender"},
		{http.MethodPut, "/api/inventario/activos/eq-1/estado"},
		{http.MethodPost, "/api/reservas/materiales"},
		{http.MethodPost, "/api/reservas/materiales/res-1/confirmar"},
		{http.MethodPost, "/api/reservas/activos"},
		{http.MethodPost, "/api/reservas/activos/res-1/cancelar"},
		{http.MethodPut, "/api/citas/cita-1/reservas"},
		{http.MethodPost, "/api/citas/cita-1/confirmar-materiales"},
	}
	for _, ruta := range escrituras {
		resp := doRoute(t, app, ruta.method, ruta.path, reader)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode,
			"%s %s debe rechazar al rol reader", ruta.method, ruta.path)
		resp.Body.Close()
	}
}

// Borrar un inventario es exclusivo del owner.
func TestRouter_EliminarInventarioSoloOwner(t *testing.T) {
	app := buildRouterApp()

	resp := doRoute(t, app, http.MethodDelete, "/api/inventario/inv-1", tokenForRole(t, pkgjwt.RoleEditor))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"editor no puede borrar inventarios")
}

// Sin token la autenticación corta antes que la autorización.
func TestRouter_EscrituraSinToken(t *testing.T) {
	app := buildRouterApp()

	resp := doRoute(t, app, http.MethodPost, "/api/inventario", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
