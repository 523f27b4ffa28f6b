// Package pdf genera la versión imprimible del catálogo de categorías.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                       │  Fecha + totales     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Categoría | Subcategoría                         │
//	│         (una fila por subcategoría; la categoría solo en la  │
//	│          primera fila de su grupo)                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: conteo de categorías y subcategorías                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

var _ usecase.CatalogPDFGenerator = (*MarotoCatalogGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCatalogGenerator implementa usecase.CatalogPDFGenerator usando Maroto v2.
type MarotoCatalogGenerator struct {
	title string
	now   func() time.Time
}

// NewMarotoCatalogGenerator construye el generador. title aparece en el encabezado.
func NewMarotoCatalogGenerator(title string) *MarotoCatalogGenerator {
	return &MarotoCatalogGenerator{title: title, now: time.Now}
}

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoCatalogGenerator) GenerateCatalogPDF(_ context.Context, categories []*entity.Category) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	subTotal := 0
	for _, c := range categories {
		subTotal += len(c.Subcategories)
	}

	m.AddRows(headerRow(g.title, g.now(), len(categories)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(categories)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(categories), subTotal))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(strconv.Itoa(count)+" categorías", props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Categoría", 5, align.Left),
		h("Subcategoría", 6, align.Left),
	)
}

// tableRows: una fila por subcategoría; categorías sin subcategorías ocupan una fila con "-".
func tableRows(categories []*entity.Category) []core.Row {
	var rows []core.Row
	for i, c := range categories {
		subs := c.SubcategoryNames()
		if len(subs) == 0 {
			subs = []string{"-"}
		}
		for j, s := range subs {
			index, name := "", ""
			style := fontstyle.Normal
			if j == 0 {
				index, name = strconv.Itoa(i+1), c.Name
				style = fontstyle.Bold
			}
			rows = append(rows, row.New(6).Add(
				col.New(1).Add(text.New(index, props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(5).Add(text.New(name, props.Text{Size: 8, Style: style, Top: 1, Left: 1})),
				col.New(6).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1})),
			))
		}
	}
	return rows
}

func footerRow(categories, subcategories int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Total: %d categorías, %d subcategorías", categories, subcategories),
			props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray},
		)),
	)
}
