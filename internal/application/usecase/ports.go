package usecase

import (
	"context"
	"io"

	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

// TableReader lee la primera hoja de un archivo tabular (xlsx, csv) como filas de texto.
type TableReader interface {
	ReadTable(fileName string, r io.Reader) ([][]string, error)
}

// CatalogSpreadsheetWriter genera un libro con el catálogo en el mismo formato que acepta la importación.
type CatalogSpreadsheetWriter interface {
	WriteCatalog(ctx context.Context, categories []*entity.Category) ([]byte, error)
}

// CatalogPDFGenerator genera la versión imprimible del catálogo.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, categories []*entity.Category) ([]byte, error)
}

// RegionSource directorio regional cargado en memoria.
type RegionSource interface {
	All() []entity.Region
	ByName(name string) (entity.Region, bool)
}
