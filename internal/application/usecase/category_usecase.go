package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
	"github.com/MrEshunOfficial/category-api/internal/application/importer"
	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
	"github.com/MrEshunOfficial/category-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD e importación masiva de categorías.
type CategoryUseCase struct {
	repo   repository.CategoryRepository
	reader TableReader
}

// NewCategoryUseCase construye el caso de uso. reader puede ser nil si no se usa Import.
func NewCategoryUseCase(repo repository.CategoryRepository, reader TableReader) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, reader: reader}
}

// Create crea una categoría. Falla con domain.ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("categoría %q: %w", name, domain.ErrDuplicate)
	}
	subs, err := toSubcategories(in.Subcategories)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:            uuid.NewString(),
		Name:          name,
		Subcategories: subs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List devuelve todas las categorías, las más recientes primero.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Update aplica un merge superficial. Subcategories, si viene, reemplaza la lista completa.
// Un nombre que choca con otra categoría es un ValidationError.
func (uc *CategoryUseCase) Update(ctx context.Context, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(ctx, strings.TrimSpace(in.CategoryID))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != category.Name {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != category.ID {
				return nil, nameTaken(name)
			}
		}
		category.Name = name
	}
	if in.Subcategories != nil {
		subs, err := toSubcategories(*in.Subcategories)
		if err != nil {
			return nil, err
		}
		category.Subcategories = subs
	}
	switch {
	case in.ExcelFile != nil:
		category.ExcelFile = &entity.ExcelFile{
			Name:       in.ExcelFile.Name,
			Path:       in.ExcelFile.Path,
			UploadedAt: in.ExcelFile.UploadedAt,
		}
	case in.ClearExcelFile:
		category.ExcelFile = nil
	}
	category.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nameTaken(category.Name)
		}
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría con sus subcategorías y devuelve el registro eliminado.
func (uc *CategoryUseCase) Delete(ctx context.Context, in dto.DeleteCategoryRequest) (*dto.DeleteCategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	deleted, err := uc.repo.Delete(ctx, strings.TrimSpace(in.CategoryID))
	if err != nil {
		return nil, err
	}
	return &dto.DeleteCategoryResponse{
		Message: "categoría eliminada",
		Deleted: *toCategoryResponse(deleted),
	}, nil
}

// Import lee la primera hoja del archivo, arma las categorías y las inserta en un solo lote.
// El lote es todo o nada: un nombre ya almacenado aborta la importación con domain.ErrDuplicate.
func (uc *CategoryUseCase) Import(ctx context.Context, fileName string, r io.Reader) ([]dto.CategoryResponse, error) {
	if uc.reader == nil {
		return nil, fmt.Errorf("importación no configurada")
	}
	table, err := uc.reader.ReadTable(fileName, r)
	if err != nil {
		return nil, err
	}
	rows, err := importer.RowsFromTable(table)
	if err != nil {
		return nil, err
	}
	batch := importer.Build(rows, importer.Source{FileName: fileName, UploadedAt: time.Now().UTC()})
	if len(batch) == 0 {
		return []dto.CategoryResponse{}, nil
	}

	taken, err := uc.repo.ExistingNames(ctx, importer.Names(batch))
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, fmt.Errorf("categorías existentes %s: %w", strings.Join(taken, ", "), domain.ErrDuplicate)
	}
	if err := uc.repo.CreateMany(ctx, batch); err != nil {
		return nil, err
	}
	return toCategoryResponses(batch), nil
}

// toSubcategories asigna IDs faltantes y exige que los IDs sean únicos dentro de la lista.
func toSubcategories(in []dto.SubcategoryInput) ([]entity.Subcategory, error) {
	subs := make([]entity.Subcategory, 0, len(in))
	ids := make(map[string]struct{}, len(in))
	for i, s := range in {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := ids[id]; dup {
			return nil, domain.NewValidationError(fmt.Sprintf("subcategories[%d].id", i), "id repetido en la categoría")
		}
		ids[id] = struct{}{}
		subs = append(subs, entity.Subcategory{ID: id, Name: strings.TrimSpace(s.Name)})
	}
	return subs, nil
}

func nameTaken(name string) error {
	return &domain.ValidationError{
		Field:   "name",
		Message: fmt.Sprintf("ya existe otra categoría llamada %q", name),
		Err:     domain.ErrDuplicate,
	}
}
