package entity

import "time"

// Category agrupa subcategorías bajo un nombre único (trimmed, sensible a mayúsculas en el store).
// Las subcategorías van embebidas: se crean y destruyen solo junto con su categoría.
type Category struct {
	ID            string
	Name          string
	Subcategories []Subcategory // orden significativo; se reemplaza completo en cada update
	ExcelFile     *ExcelFile    // nil si la categoría no vino de una importación
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subcategory hoja nombrada; ID único dentro de su categoría padre.
type Subcategory struct {
	ID   string
	Name string
}

// ExcelFile metadatos del archivo del que se importó la categoría.
type ExcelFile struct {
	Name       string
	Path       string
	UploadedAt time.Time
}

// SubcategoryNames devuelve los nombres de las subcategorías en orden.
func (c *Category) SubcategoryNames() []string {
	names := make([]string, 0, len(c.Subcategories))
	for _, s := range c.Subcategories {
		names = append(names, s.Name)
	}
	return names
}
