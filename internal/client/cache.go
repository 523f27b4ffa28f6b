package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
)

// Status estado de la última carga de la lista.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// CategoryAPI lo que la caché necesita del servidor; *Client lo implementa.
type CategoryAPI interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, categoryID string) (*dto.DeleteCategoryResponse, error)
	Import(ctx context.Context, fileName string, r io.Reader) ([]dto.CategoryResponse, error)
}

var _ CategoryAPI = (*Client)(nil)

// State copia inmutable del estado de la caché.
type State struct {
	Categories []dto.CategoryResponse
	Status     Status
	Err        string
}

// Cache espejo local de las categorías del servidor. Cada operación aplica el resultado
// del servidor a la lista y, si falla, guarda el error como un único texto.
type Cache struct {
	api CategoryAPI

	mu         sync.Mutex
	categories []dto.CategoryResponse
	status     Status
	err        string
}

// NewCache construye una caché vacía en estado idle.
func NewCache(api CategoryAPI) *Cache {
	return &Cache{api: api, categories: []dto.CategoryResponse{}, status: StatusIdle}
}

// Snapshot devuelve una copia del estado actual.
func (c *Cache) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := make([]dto.CategoryResponse, len(c.categories))
	copy(list, c.categories)
	return State{Categories: list, Status: c.status, Err: c.err}
}

// Err texto del último error ("" si no hay).
func (c *Cache) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ResetError limpia el error guardado.
func (c *Cache) ResetError() {
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()
}

// Fetch reemplaza la lista con la del servidor.
func (c *Cache) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.status = StatusPending
	c.mu.Unlock()

	list, err := c.api.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusFailed
		c.err = err.Error()
		return err
	}
	if list == nil {
		list = []dto.CategoryResponse{}
	}
	c.categories = list
	c.status = StatusSucceeded
	return nil
}

// Create crea la categoría y la agrega al final. Rechaza sin llamar al servidor un nombre que
// ya existe en la caché ignorando mayúsculas.
func (c *Cache) Create(ctx context.Context, name string, subcategories []string) (*dto.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if err := c.checkName("", name); err != nil {
		return nil, err
	}
	in := dto.CreateCategoryRequest{Name: name}
	for _, s := range subcategories {
		in.Subcategories = append(in.Subcategories, dto.SubcategoryInput{Name: s})
	}
	out, err := c.api.Create(ctx, in)
	if err != nil {
		return nil, c.fail(err)
	}
	c.mu.Lock()
	c.categories = append(c.categories, *out)
	c.mu.Unlock()
	return out, nil
}

// Rename cambia el nombre; mismo control de nombre en uso que Create (excluye la propia categoría).
func (c *Cache) Rename(ctx context.Context, id, name string) (*dto.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if err := c.checkName(id, name); err != nil {
		return nil, err
	}
	return c.update(ctx, dto.UpdateCategoryRequest{CategoryID: id, Name: &name})
}

// SetSubcategories reemplaza la lista completa. Los nombres que ya existían conservan su id;
// cada id se reutiliza una sola vez, así los nombres repetidos no chocan.
func (c *Cache) SetSubcategories(ctx context.Context, id string, names []string) (*dto.CategoryResponse, error) {
	current, _ := c.find(id)
	known := make(map[string][]string, len(current.Subcategories))
	for _, s := range current.Subcategories {
		known[s.Name] = append(known[s.Name], s.ID)
	}
	subs := make([]dto.SubcategoryInput, 0, len(names))
	for _, n := range names {
		var subID string
		if ids := known[n]; len(ids) > 0 {
			subID, known[n] = ids[0], ids[1:]
		}
		subs = append(subs, dto.SubcategoryInput{ID: subID, Name: n})
	}
	return c.update(ctx, dto.UpdateCategoryRequest{CategoryID: id, Subcategories: &subs})
}

// AddSubcategory agrega una subcategoría; si ya hay una con el mismo nombre (ignorando
// mayúsculas) no hace nada y devuelve la categoría cacheada.
func (c *Cache) AddSubcategory(ctx context.Context, id, name string) (*dto.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	current, ok := c.find(id)
	if !ok {
		return nil, c.fail(fmt.Errorf("categoría %s no está en caché", id))
	}
	folded := cases.Fold().String(name)
	subs := make([]dto.SubcategoryInput, 0, len(current.Subcategories)+1)
	for _, s := range current.Subcategories {
		if cases.Fold().String(s.Name) == folded {
			return &current, nil
		}
		subs = append(subs, dto.SubcategoryInput{ID: s.ID, Name: s.Name})
	}
	subs = append(subs, dto.SubcategoryInput{Name: name})
	return c.update(ctx, dto.UpdateCategoryRequest{CategoryID: id, Subcategories: &subs})
}

// RemoveSubcategory quita una subcategoría por id.
func (c *Cache) RemoveSubcategory(ctx context.Context, id, subcategoryID string) (*dto.CategoryResponse, error) {
	current, ok := c.find(id)
	if !ok {
		return nil, c.fail(fmt.Errorf("categoría %s no está en caché", id))
	}
	subs := make([]dto.SubcategoryInput, 0, len(current.Subcategories))
	for _, s := range current.Subcategories {
		if s.ID != subcategoryID {
			subs = append(subs, dto.SubcategoryInput{ID: s.ID, Name: s.Name})
		}
	}
	return c.update(ctx, dto.UpdateCategoryRequest{CategoryID: id, Subcategories: &subs})
}

// Delete borra en el servidor y quita la categoría de la lista.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if _, err := c.api.Delete(ctx, id); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.categories[:0]
	for _, cat := range c.categories {
		if cat.ID != id {
			kept = append(kept, cat)
		}
	}
	c.categories = kept
	return nil
}

// Import sube el archivo y agrega el lote devuelto al final de la lista.
func (c *Cache) Import(ctx context.Context, fileName string, r io.Reader) ([]dto.CategoryResponse, error) {
	batch, err := c.api.Import(ctx, fileName, r)
	if err != nil {
		return nil, c.fail(err)
	}
	c.mu.Lock()
	c.categories = append(c.categories, batch...)
	c.mu.Unlock()
	return batch, nil
}

func (c *Cache) update(ctx context.Context, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	out, err := c.api.Update(ctx, in)
	if err != nil {
		return nil, c.fail(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.categories {
		if c.categories[i].ID == out.ID {
			c.categories[i] = *out
			break
		}
	}
	return out, nil
}

// checkName falla si otra categoría cacheada (distinta de exceptID) tiene el mismo nombre
// bajo plegado de mayúsculas Unicode.
func (c *Cache) checkName(exceptID, name string) error {
	folded := cases.Fold().String(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.categories {
		if cat.ID != exceptID && cases.Fold().String(cat.Name) == folded {
			c.err = fmt.Sprintf("ya existe una categoría llamada %q", cat.Name)
			return errors.New(c.err)
		}
	}
	return nil
}

func (c *Cache) find(id string) (dto.CategoryResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return dto.CategoryResponse{}, false
}

func (c *Cache) fail(err error) error {
	c.mu.Lock()
	c.err = err.Error()
	c.mu.Unlock()
	return err
}
