package importer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrEshunOfficial/category-api/internal/application/importer"
	"github.com/MrEshunOfficial/category-api/internal/domain"
)

var testSource = importer.Source{
	FileName:   "catalogo.xlsx",
	UploadedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
}

func TestBuild_AgrupaPorCategoria(t *testing.T) {
	rows := []importer.Row{
		{Category: "Fruit", Subcategory: "Apple"},
		{Category: "Fruit", Subcategory: "Banana"},
		{Category: "Veg", Subcategory: "Carrot"},
	}

	got := importer.Build(rows, testSource)

	require.Len(t, got, 2, "deben salir exactamente dos categorías")
	assert.Equal(t, "Fruit", got[0].Name)
	assert.Equal(t, []string{"Apple", "Banana"}, got[0].SubcategoryNames())
	assert.Equal(t, "Veg", got[1].Name)
	assert.Equal(t, []string{"Carrot"}, got[1].SubcategoryNames())
}

func TestBuild_IDsUnicosYNoVacios(t *testing.T) {
	rows := []importer.Row{
		{Category: "Fruit", Subcategory: "Apple"},
		{Category: "Fruit", Subcategory: "Banana"},
		{Category: "Veg", Subcategory: "Carrot"},
	}
	ids := map[string]bool{}
	for _, c := range importer.Build(rows, testSource) {
		require.NotEmpty(t, c.ID)
		assert.False(t, ids[c.ID], "id repetido %s", c.ID)
		ids[c.ID] = true
		for _, s := range c.Subcategories {
			require.NotEmpty(t, s.ID)
			assert.False(t, ids[s.ID], "id repetido %s", s.ID)
			ids[s.ID] = true
		}
	}
	assert.Len(t, ids, 5)
}

func TestBuild_OmiteFilasSinCategoria(t *testing.T) {
	rows := []importer.Row{
		{Category: "", Subcategory: "Huérfana"},
		{Category: "   ", Subcategory: "Otra"},
		{Category: "Veg"},
	}

	got := importer.Build(rows, testSource)

	require.Len(t, got, 1)
	assert.Equal(t, "Veg", got[0].Name)
	assert.Empty(t, got[0].Subcategories, "fila sin subcategoría no agrega nada")
	assert.NotNil(t, got[0].Subcategories)
}

func TestBuild_ConservaSubcategoriasDuplicadas(t *testing.T) {
	rows := []importer.Row{
		{Category: "Fruit", Subcategory: "Apple"},
		{Category: "Fruit", Subcategory: "Apple"},
	}

	got := importer.Build(rows, testSource)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"Apple", "Apple"}, got[0].SubcategoryNames())
	assert.NotEqual(t, got[0].Subcategories[0].ID, got[0].Subcategories[1].ID)
}

func TestBuild_RecortaEspaciosAntesDeAgrupar(t *testing.T) {
	rows := []importer.Row{
		{Category: "Fruit ", Subcategory: " Apple"},
		{Category: "Fruit", Subcategory: "Pear"},
	}

	got := importer.Build(rows, testSource)

	require.Len(t, got, 1)
	assert.Equal(t, "Fruit", got[0].Name)
	assert.Equal(t, []string{"Apple", "Pear"}, got[0].SubcategoryNames())
}

func TestBuild_CopiaMetadatosDeArchivo(t *testing.T) {
	got := importer.Build([]importer.Row{{Category: "Fruit"}}, testSource)

	require.Len(t, got, 1)
	require.NotNil(t, got[0].ExcelFile)
	assert.Equal(t, "catalogo.xlsx", got[0].ExcelFile.Name)
	assert.Equal(t, testSource.UploadedAt, got[0].ExcelFile.UploadedAt)
	assert.Equal(t, testSource.UploadedAt, got[0].CreatedAt)
}

func TestRowsFromTable_LocalizaColumnasPorEncabezado(t *testing.T) {
	table := [][]string{
		{"Notas", "subcategory", " CATEGORY "},
		{"x", "Apple", "Fruit"},
		{"y", "", "Veg"},
		{"z"},
	}

	rows, err := importer.RowsFromTable(table)

	require.NoError(t, err)
	assert.Equal(t, []importer.Row{
		{Category: "Fruit", Subcategory: "Apple"},
		{Category: "Veg", Subcategory: ""},
		{Category: "", Subcategory: ""},
	}, rows)
}

func TestRowsFromTable_SinColumnaCategory(t *testing.T) {
	_, err := importer.RowsFromTable([][]string{{"Nombre", "Subcategory"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRowsFromTable_TablaVacia(t *testing.T) {
	rows, err := importer.RowsFromTable(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
