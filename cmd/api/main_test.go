package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/inventario-api/pkg/logger"
)

func TestMountSwagger_SinArchivoNoMonta(t *testing.T) {
	app := fiber.New()

	// Sin swagger.json generado el arranque debe seguir, no caerse.
	require.NotPanics(t, func() {
		mountSwagger(app, filepath.Join(t.TempDir(), "swagger.json"), logger.Nop())
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "sin spec no hay UI de docs")
}

func TestMountSwagger_ConArchivoSirveLaUI(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "swagger.json")
	contenido := `{"swagger":"2.0","info":{"title":"Inventario API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(spec, []byte(contenido), 0o644))

	app := fiber.New()
	mountSwagger(app, spec, logger.Nop())

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
