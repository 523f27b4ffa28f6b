package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/domain/repository"
)

// Formatos de exportación soportados.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportUseCase genera el catálogo completo como libro xlsx o PDF imprimible.
type ExportUseCase struct {
	repo  repository.CategoryRepository
	sheet CatalogSpreadsheetWriter
	pdf   CatalogPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(repo repository.CategoryRepository, sheet CatalogSpreadsheetWriter, pdf CatalogPDFGenerator) *ExportUseCase {
	return &ExportUseCase{repo: repo, sheet: sheet, pdf: pdf}
}

// Export genera el catálogo en el formato pedido ("xlsx" por defecto).
func (uc *ExportUseCase) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatXLSX
	}
	if format != ExportFormatXLSX && format != ExportFormatPDF {
		return nil, domain.NewValidationError("format", "formato no soportado: use xlsx o pdf")
	}

	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExportFormatPDF:
		content, err := uc.pdf.GenerateCatalogPDF(ctx, list)
		if err != nil {
			return nil, fmt.Errorf("exportar pdf: %w", err)
		}
		return &ExportFile{FileName: "categories.pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		content, err := uc.sheet.WriteCatalog(ctx, list)
		if err != nil {
			return nil, fmt.Errorf("exportar xlsx: %w", err)
		}
		return &ExportFile{
			FileName:    "categories.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}
}
