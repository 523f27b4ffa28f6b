package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrEshunOfficial/category-api/internal/client"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func styled(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

// RenderCategories imprime la caché como tabla: una fila por categoría.
func RenderCategories(w io.Writer, s client.State) {
	if len(s.Categories) == 0 {
		fmt.Fprintln(w, "sin categorías")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styled).
		Headers("ID", "CATEGORÍA", "SUBCATEGORÍAS")
	for _, c := range s.Categories {
		subs := make([]string, 0, len(c.Subcategories))
		for _, sub := range c.Subcategories {
			subs = append(subs, sub.Name)
		}
		t.Row(c.ID, c.Name, strings.Join(subs, ", "))
	}
	fmt.Fprintln(w, t.String())
}

// RenderRegions imprime regiones con sus ciudades.
func RenderRegions(w io.Writer, regions []entity.Region) {
	if len(regions) == 0 {
		fmt.Fprintln(w, "sin regiones")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styled).
		Headers("REGIÓN", "CIUDADES")
	for _, r := range regions {
		t.Row(r.Region, strings.Join(r.Cities, ", "))
	}
	fmt.Fprintln(w, t.String())
}

// RenderError imprime el único texto de error de la caché.
func RenderError(w io.Writer, msg string) {
	fmt.Fprintln(w, "error: "+msg)
}
