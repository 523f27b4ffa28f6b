package spreadsheet_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrEshunOfficial/category-api/internal/application/importer"
	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/spreadsheet"
)

// buildWorkbook arma un xlsx en memoria con las filas dadas en la primera hoja.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReader_Xlsx(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Category", "Subcategory"},
		{"Fruit", "Apple"},
		{"Fruit", "Banana"},
		{"Veg", "Carrot"},
	})

	table, err := spreadsheet.NewReader().ReadTable("catalogo.xlsx", bytes.NewReader(data))

	require.NoError(t, err)
	rows, err := importer.RowsFromTable(table)
	require.NoError(t, err)
	assert.Equal(t, []importer.Row{
		{Category: "Fruit", Subcategory: "Apple"},
		{Category: "Fruit", Subcategory: "Banana"},
		{Category: "Veg", Subcategory: "Carrot"},
	}, rows)
}

func TestReader_XlsxSinExtensionSeDetectaPorFirma(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{{"Category"}, {"Veg"}})

	table, err := spreadsheet.NewReader().ReadTable("upload", bytes.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Category"}, {"Veg"}}, table)
}

func TestReader_Csv(t *testing.T) {
	data := "\ufeffCategory,Subcategory\nFruit,Apple\nVeg\n,Orphan\n"

	table, err := spreadsheet.NewReader().ReadTable("catalogo.csv", strings.NewReader(data))

	require.NoError(t, err)
	rows, err := importer.RowsFromTable(table)
	require.NoError(t, err)
	assert.Equal(t, []importer.Row{
		{Category: "Fruit", Subcategory: "Apple"},
		{Category: "Veg"},
		{Category: "", Subcategory: "Orphan"},
	}, rows)
}

func TestReader_CsvLatin1(t *testing.T) {
	opt, err := spreadsheet.WithCSVCharset("latin1")
	require.NoError(t, err)
	// "Lácteos" en ISO-8859-1
	data := "Category,Subcategory\nL\xe1cteos,Queso\n"

	table, err := spreadsheet.NewReader(opt).ReadTable("legacy.csv", strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "Lácteos", table[1][0])
}

func TestWithCSVCharset_Desconocido(t *testing.T) {
	_, err := spreadsheet.WithCSVCharset("ebcdic")
	assert.Error(t, err)
}

func TestReader_XlsxCorruptoEsValidationError(t *testing.T) {
	_, err := spreadsheet.NewReader().ReadTable("roto.xlsx", strings.NewReader("no soy un zip"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWriter_ExportacionSeReimporta(t *testing.T) {
	categories := []*entity.Category{
		{ID: "1", Name: "Fruit", Subcategories: []entity.Subcategory{{ID: "a", Name: "Apple"}, {ID: "b", Name: "Banana"}}},
		{ID: "2", Name: "Empty"},
	}

	data, err := spreadsheet.NewWriter().WriteCatalog(context.Background(), categories)
	require.NoError(t, err)

	table, err := spreadsheet.NewReader().ReadTable("categories.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	rows, err := importer.RowsFromTable(table)
	require.NoError(t, err)

	got := importer.Build(rows, importer.Source{})
	require.Len(t, got, 2)
	assert.Equal(t, "Fruit", got[0].Name)
	assert.Equal(t, []string{"Apple", "Banana"}, got[0].SubcategoryNames())
	assert.Equal(t, "Empty", got[1].Name)
	assert.Empty(t, got[1].Subcategories)
}
