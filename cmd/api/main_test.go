package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La UI /docs se monta solo si el archivo existe; este test garantiza que el
// archivo se distribuye con el repositorio y declara las rutas servidas.
func TestEspecificacionSwagger_ExisteYDeclaraLasRutas(t *testing.T) {
	raw, err := os.ReadFile("../../docs/swagger.json")
	require.NoError(t, err, "docs/swagger.json debe existir en el repositorio")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec))
	assert.Equal(t, "2.0", spec.Swagger)

	rutas := []string{
		"/health",
		"/api/inventory/movements",
		"/api/inventory/adjustments",
		"/api/products/{id}/stock",
		"/api/products/low-stock",
		"/api/checkouts",
		"/api/checkouts/{id}/return",
		"/api/maintenance-orders/{id}/status",
		"/api/purchase-requests/{id}/status",
		"/api/assets/{id}/discard",
	}
	for _, ruta := range rutas {
		assert.Contains(t, spec.Paths, ruta)
	}
}
