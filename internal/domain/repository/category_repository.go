package repository

import (
	"context"

	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
//
// Los adaptadores traducen violaciones de unicidad a domain.ErrDuplicate y la ausencia
// de registros a domain.ErrNotFound (Update, Delete). GetByID y GetByName devuelven (nil, nil)
// cuando no existe el registro.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// CreateMany inserta el lote completo o nada.
	CreateMany(ctx context.Context, categories []*entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// ExistingNames devuelve el subconjunto de names que ya está almacenado.
	ExistingNames(ctx context.Context, names []string) ([]string, error)
	// List devuelve todas las categorías, las más recientes primero.
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete elimina la categoría (y sus subcategorías embebidas) y devuelve lo eliminado.
	Delete(ctx context.Context, id string) (*entity.Category, error)
}
