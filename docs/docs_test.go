package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/docs"
)

func TestSwagger_RegistradoYValido(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	assert.Equal(t, "2.0", spec.Swagger)
	assert.Contains(t, spec.Paths, "/api/movements")
	assert.Contains(t, spec.Paths["/api/inventories/{id}/close"], "post")
}
