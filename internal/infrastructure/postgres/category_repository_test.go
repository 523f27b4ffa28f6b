package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/postgres"
	"github.com/MrEshunOfficial/category-api/pkg/config"
)

// newRepo migra la base de TEST_DATABASE_URL y limpia la tabla; se omite si no está definida.
func newRepo(t *testing.T) *postgres.CategoryRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definida; se omite el test de integración")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE categories`)
	require.NoError(t, err)
	return postgres.NewCategoryRepository(pool)
}

func category(name string, createdAt time.Time, subs ...string) *entity.Category {
	c := &entity.Category{ID: uuid.NewString(), Name: name, Subcategories: []entity.Subcategory{}, CreatedAt: createdAt, UpdatedAt: createdAt}
	for _, s := range subs {
		c.Subcategories = append(c.Subcategories, entity.Subcategory{ID: uuid.NewString(), Name: s})
	}
	return c
}

func TestPostgresCategoryRepo_CRUD(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	fruit := category("Fruit", now, "Apple", "Banana")
	fruit.ExcelFile = &entity.ExcelFile{Name: "items.xlsx", UploadedAt: now}
	require.NoError(t, repo.Create(ctx, fruit))
	require.NoError(t, repo.Create(ctx, category("Veg", now.Add(time.Second))))
	assert.True(t, errors.Is(repo.Create(ctx, category("Fruit", now)), domain.ErrDuplicate))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Veg", list[0].Name)

	got, err := repo.GetByID(ctx, fruit.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Banana"}, got.SubcategoryNames())
	require.NotNil(t, got.ExcelFile)
	assert.Equal(t, "items.xlsx", got.ExcelFile.Name)

	got.Name = "Veg"
	assert.True(t, errors.Is(repo.Update(ctx, got), domain.ErrDuplicate))

	missing, err := repo.GetByName(ctx, "Dairy")
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.Delete(ctx, fruit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fruit", deleted.Name)
	_, err = repo.Delete(ctx, fruit.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPostgresCategoryRepo_CreateManyEsAtomico(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, category("Veg", now)))

	err := repo.CreateMany(ctx, []*entity.Category{category("Dairy", now), category("Veg", now)})
	require.True(t, errors.Is(err, domain.ErrDuplicate))

	taken, err := repo.ExistingNames(ctx, []string{"Dairy", "Veg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Veg"}, taken, "Dairy no debe quedar tras el rollback")
}
