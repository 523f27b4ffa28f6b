package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MrEshunOfficial/category-api/internal/application/importer"
	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

var _ usecase.CatalogSpreadsheetWriter = (*Writer)(nil)

// SheetName nombre de la hoja exportada.
const SheetName = "Categories"

// Writer genera el libro de exportación con columnas Category | Subcategory,
// una fila por subcategoría (o una fila sola si la categoría no tiene subcategorías).
type Writer struct{}

// NewWriter construye el escritor.
func NewWriter() *Writer { return &Writer{} }

// WriteCatalog implementa usecase.CatalogSpreadsheetWriter.
func (w *Writer) WriteCatalog(_ context.Context, categories []*entity.Category) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	header := []interface{}{importer.HeaderCategory, importer.HeaderSubcategory}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}

	line := 2
	writeRow := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		line++
		return f.SetSheetRow(SheetName, cell, &values)
	}
	for _, c := range categories {
		if len(c.Subcategories) == 0 {
			if err := writeRow(c.Name); err != nil {
				return nil, fmt.Errorf("escribir fila: %w", err)
			}
			continue
		}
		for _, s := range c.Subcategories {
			if err := writeRow(c.Name, s.Name); err != nil {
				return nil, fmt.Errorf("escribir fila: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
