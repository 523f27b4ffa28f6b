// Package importer convierte filas tabulares (Category, Subcategory) en categorías
// deduplicadas listas para inserción masiva.
package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

// Row una fila de la hoja: nombre de categoría y, opcionalmente, de subcategoría.
type Row struct {
	Category    string
	Subcategory string
}

// Source metadatos del archivo de origen que se copian a cada categoría importada.
type Source struct {
	FileName   string
	UploadedAt time.Time
}

// Build recorre las filas en orden y agrupa por nombre de categoría (la primera aparición
// define el registro). Cada subcategoría obtiene un ID nuevo y se agrega aunque repita
// un nombre ya presente en la misma categoría. Filas sin categoría se omiten.
func Build(rows []Row, src Source) []*entity.Category {
	seen := make(map[string]*entity.Category)
	var out []*entity.Category

	var excel *entity.ExcelFile
	if src.FileName != "" {
		excel = &entity.ExcelFile{Name: src.FileName, UploadedAt: src.UploadedAt}
	}

	for _, r := range rows {
		name := strings.TrimSpace(r.Category)
		if name == "" {
			continue
		}
		cat, ok := seen[name]
		if !ok {
			cat = &entity.Category{
				ID:            uuid.NewString(),
				Name:          name,
				Subcategories: []entity.Subcategory{},
				ExcelFile:     excel,
				CreatedAt:     src.UploadedAt,
				UpdatedAt:     src.UploadedAt,
			}
			seen[name] = cat
			out = append(out, cat)
		}
		if sub := strings.TrimSpace(r.Subcategory); sub != "" {
			cat.Subcategories = append(cat.Subcategories, entity.Subcategory{
				ID:   uuid.NewString(),
				Name: sub,
			})
		}
	}
	return out
}

// Names devuelve los nombres de las categorías en el orden del lote.
func Names(categories []*entity.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
