// Package memory implementa los puertos de persistencia en memoria (desarrollo y tests).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
	"github.com/MrEshunOfficial/category-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo guarda categorías en un mapa protegido por mutex. Devuelve copias para que
// los llamadores no modifiquen el estado interno.
type CategoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]*entity.Category
	byName map[string]string // name -> id
	seq    map[string]int    // orden de inserción para desempatar created_at
	next   int
}

// NewCategoryRepository construye el repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{
		byID:   make(map[string]*entity.Category),
		byName: make(map[string]string),
		seq:    make(map[string]int),
	}
}

// Create inserta una categoría; ErrDuplicate si el id o el nombre ya existen.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkFree(category, nil); err != nil {
		return err
	}
	r.put(category)
	return nil
}

// CreateMany valida el lote completo bajo el mismo lock antes de escribir.
func (r *CategoryRepo) CreateMany(_ context.Context, categories []*entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batchNames := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if err := r.checkFree(c, batchNames); err != nil {
			return err
		}
		batchNames[c.Name] = struct{}{}
	}
	for _, c := range categories {
		r.put(c)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	return clone(r.byID[id]), nil
}

// ExistingNames devuelve los nombres ya almacenados.
func (r *CategoryRepo) ExistingNames(_ context.Context, names []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var taken []string
	for _, n := range names {
		if _, ok := r.byName[n]; ok {
			taken = append(taken, n)
		}
	}
	return taken, nil
}

// List devuelve todas las categorías, las más recientes primero.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		list = append(list, clone(c))
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return r.seq[list[i].ID] > r.seq[list[j].ID]
	})
	return list, nil
}

// Update reemplaza la categoría almacenada (último en escribir gana).
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[category.ID]
	if !ok {
		return fmt.Errorf("update category %s: %w", category.ID, domain.ErrNotFound)
	}
	if owner, taken := r.byName[category.Name]; taken && owner != category.ID {
		return fmt.Errorf("update category name %q: %w", category.Name, domain.ErrDuplicate)
	}
	delete(r.byName, current.Name)
	r.byID[category.ID] = clone(category)
	r.byName[category.Name] = category.ID
	return nil
}

// Delete elimina la categoría y devuelve lo eliminado.
func (r *CategoryRepo) Delete(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("delete category %s: %w", id, domain.ErrNotFound)
	}
	delete(r.byID, id)
	delete(r.byName, c.Name)
	delete(r.seq, id)
	return clone(c), nil
}

func (r *CategoryRepo) checkFree(c *entity.Category, batch map[string]struct{}) error {
	if _, ok := r.byID[c.ID]; ok {
		return fmt.Errorf("insert category id %s: %w", c.ID, domain.ErrDuplicate)
	}
	if _, ok := r.byName[c.Name]; ok {
		return fmt.Errorf("insert category name %q: %w", c.Name, domain.ErrDuplicate)
	}
	if _, ok := batch[c.Name]; ok {
		return fmt.Errorf("insert category name %q: %w", c.Name, domain.ErrDuplicate)
	}
	return nil
}

func (r *CategoryRepo) put(c *entity.Category) {
	r.next++
	r.byID[c.ID] = clone(c)
	r.byName[c.Name] = c.ID
	r.seq[c.ID] = r.next
}

func clone(c *entity.Category) *entity.Category {
	cp := *c
	cp.Subcategories = append([]entity.Subcategory{}, c.Subcategories...)
	if c.ExcelFile != nil {
		ef := *c.ExcelFile
		cp.ExcelFile = &ef
	}
	return &cp
}
