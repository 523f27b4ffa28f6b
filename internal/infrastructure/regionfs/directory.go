// Package regionfs carga el directorio de regiones desde archivos JSON ({region, cities}),
// uno por región, indexados por el nombre del archivo sin extensión.
package regionfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

// Directory índice inmutable de regiones; seguro para lectura concurrente.
type Directory struct {
	order  []string
	byStem map[string]entity.Region
}

// Load lee dir del sistema de archivos. Un directorio inexistente produce un índice vacío.
func Load(dir string) (*Directory, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return &Directory{byStem: map[string]entity.Region{}}, nil
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS carga los *.json de la raíz de fsys. Los archivos ilegibles o inválidos se omiten y se
// reportan juntos en el error devuelto; el índice con los válidos se devuelve igualmente.
func LoadFS(fsys fs.FS) (*Directory, error) {
	d := &Directory{byStem: map[string]entity.Region{}}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return d, fmt.Errorf("leer directorio de regiones: %w", err)
	}

	fold := cases.Fold()
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".json") {
			continue
		}
		raw, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		var r entity.Region
		if err := json.Unmarshal(raw, &r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		if r.Cities == nil {
			r.Cities = []string{}
		}
		key := fold.String(strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
		if _, dup := d.byStem[key]; !dup {
			d.order = append(d.order, key)
		}
		d.byStem[key] = r
	}
	sort.Strings(d.order)
	return d, errors.Join(errs...)
}

// All devuelve las regiones ordenadas por nombre de archivo.
func (d *Directory) All() []entity.Region {
	out := make([]entity.Region, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.byStem[k])
	}
	return out
}

// ByName busca por nombre de archivo sin distinguir mayúsculas.
func (d *Directory) ByName(name string) (entity.Region, bool) {
	r, ok := d.byStem[cases.Fold().String(strings.TrimSpace(name))]
	return r, ok
}
