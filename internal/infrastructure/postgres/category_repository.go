package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
	"github.com/MrEshunOfficial/category-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, subcategories, excel_file, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
// Las subcategorías viajan embebidas en una columna JSONB.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return insertCategory(ctx, r.q, category)
}

// CreateMany inserta el lote completo en una sola transacción: o entran todas o ninguna.
func (r *CategoryRepo) CreateMany(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return withTx(ctx, r.q, func(tx pgx.Tx) error {
		for _, c := range categories {
			if err := insertCategory(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

// ExistingNames devuelve los nombres del lote que ya existen.
func (r *CategoryRepo) ExistingNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT name FROM categories WHERE name = ANY($1) ORDER BY name`, names)
	if err != nil {
		return nil, fmt.Errorf("existing names: %w", err)
	}
	taken, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("existing names: %w", err)
	}
	return taken, nil
}

// List devuelve todas las categorías, las más recientes primero.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// Update reemplaza nombre, subcategorías y metadatos del archivo.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	subs, excel, err := encodeEmbedded(category)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE categories
		SET name = $2, subcategories = $3::jsonb, excel_file = $4::jsonb, updated_at = $5
		WHERE id = $1`,
		category.ID, category.Name, subs, excel, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update category %q: %w", category.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update category %s: %w", category.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina la categoría y devuelve el registro borrado.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("delete category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return c, nil
}

func insertCategory(ctx context.Context, q Querier, c *entity.Category) error {
	subs, excel, err := encodeEmbedded(c)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `
		INSERT INTO categories (id, name, subcategories, excel_file, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6)`,
		c.ID, c.Name, subs, excel, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert category %q: %w", c.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

type subcategoryJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// encodeEmbedded serializa las columnas JSONB; excel_file nil se guarda como NULL.
func encodeEmbedded(c *entity.Category) (string, *string, error) {
	subs := make([]subcategoryJSON, 0, len(c.Subcategories))
	for _, s := range c.Subcategories {
		subs = append(subs, subcategoryJSON{ID: s.ID, Name: s.Name})
	}
	rawSubs, err := json.Marshal(subs)
	if err != nil {
		return "", nil, fmt.Errorf("encode subcategories: %w", err)
	}
	if c.ExcelFile == nil {
		return string(rawSubs), nil, nil
	}
	rawExcel, err := json.Marshal(c.ExcelFile)
	if err != nil {
		return "", nil, fmt.Errorf("encode excel_file: %w", err)
	}
	excel := string(rawExcel)
	return string(rawSubs), &excel, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		c        entity.Category
		rawSubs  []byte
		rawExcel []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &rawSubs, &rawExcel, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	var subs []subcategoryJSON
	if err := json.Unmarshal(rawSubs, &subs); err != nil {
		return nil, fmt.Errorf("decode subcategories: %w", err)
	}
	c.Subcategories = make([]entity.Subcategory, 0, len(subs))
	for _, s := range subs {
		c.Subcategories = append(c.Subcategories, entity.Subcategory{ID: s.ID, Name: s.Name})
	}
	if len(rawExcel) > 0 {
		var ef entity.ExcelFile
		if err := json.Unmarshal(rawExcel, &ef); err != nil {
			return nil, fmt.Errorf("decode excel_file: %w", err)
		}
		c.ExcelFile = &ef
	}
	return &c, nil
}
