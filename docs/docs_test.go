package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/MrEshunOfficial/category-api/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var openapi struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &openapi))
	for _, p := range []string{"/categories", "/categories/{id}", "/categories/export", "/regions", "/regions/{name}"} {
		assert.Contains(t, openapi.Paths, p)
	}
}
