package importer

import (
	"strings"

	"github.com/MrEshunOfficial/category-api/internal/domain"
)

// Nombres de columna esperados en la fila de encabezado.
const (
	HeaderCategory    = "Category"
	HeaderSubcategory = "Subcategory"
)

// RowsFromTable interpreta la primera fila como encabezado y localiza las columnas
// Category y Subcategory (sin distinguir mayúsculas). Las demás columnas se ignoran.
// Una tabla vacía produce cero filas.
func RowsFromTable(table [][]string) ([]Row, error) {
	if len(table) == 0 {
		return nil, nil
	}
	catCol, subCol := -1, -1
	for i, h := range table[0] {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), HeaderCategory) && catCol < 0:
			catCol = i
		case strings.EqualFold(strings.TrimSpace(h), HeaderSubcategory) && subCol < 0:
			subCol = i
		}
	}
	if catCol < 0 {
		return nil, domain.NewValidationError("file", "falta la columna "+HeaderCategory+" en el encabezado")
	}

	rows := make([]Row, 0, len(table)-1)
	for _, rec := range table[1:] {
		rows = append(rows, Row{
			Category:    cell(rec, catCol),
			Subcategory: cell(rec, subCol),
		})
	}
	return rows, nil
}

// cell tolera filas más cortas que el encabezado (excelize recorta celdas vacías al final).
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
