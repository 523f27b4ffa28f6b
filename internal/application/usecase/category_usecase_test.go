package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// tableReader fake de usecase.TableReader que devuelve una tabla fija.
type tableReader struct {
	table [][]string
	err   error
}

func (f tableReader) ReadTable(_ string, r io.Reader) ([][]string, error) {
	_, _ = io.Copy(io.Discard, r)
	return f.table, f.err
}

func newUseCase(table ...[]string) (*usecase.CategoryUseCase, *memory.CategoryRepo) {
	repo := memory.NewCategoryRepository()
	return usecase.NewCategoryUseCase(repo, tableReader{table: table}), repo
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaIDsUnicos(t *testing.T) {
	uc, _ := newUseCase()

	out, err := uc.Create(context.Background(), dto.CreateCategoryRequest{
		Name: "  Fruit ",
		Subcategories: []dto.SubcategoryInput{
			{Name: "Apple"},
			{Name: "Banana"},
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Fruit", out.Name, "el nombre se guarda recortado")
	require.Len(t, out.Subcategories, 2)
	assert.NotEmpty(t, out.Subcategories[0].ID)
	assert.NotEmpty(t, out.Subcategories[1].ID)
	assert.NotEqual(t, out.Subcategories[0].ID, out.Subcategories[1].ID)
	assert.Nil(t, out.ExcelFile)
}

func TestCreate_ConservaIDDeSubcategoria(t *testing.T) {
	uc, _ := newUseCase()

	out, err := uc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:          "Fruit",
		Subcategories: []dto.SubcategoryInput{{ID: "sub-1", Name: "Apple"}, {Name: "Pear"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "sub-1", out.Subcategories[0].ID)
	assert.NotEmpty(t, out.Subcategories[1].ID)
}

func TestCreate_NombreDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Fruit"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Fruit"})

	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreate_NombreDistintaCapitalizacionPermitido(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Fruit"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "FRUIT"})
	assert.NoError(t, err, "la unicidad en el store es sensible a mayúsculas")
}

func TestCreate_Validacion(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	cases := map[string]dto.CreateCategoryRequest{
		"sin nombre":              {},
		"nombre en blanco":        {Name: "   "},
		"subcategoría sin nombre": {Name: "Fruit", Subcategories: []dto.SubcategoryInput{{Name: ""}}},
		"ids repetidos":           {Name: "Veg", Subcategories: []dto.SubcategoryInput{{ID: "x", Name: "a"}, {ID: "x", Name: "b"}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Field)
		})
	}
}

func TestCreate_RoundTripConList(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Veg"})
	require.NoError(t, err)

	list, err := uc.List(ctx)

	require.NoError(t, err)
	var matches []dto.CategoryResponse
	for _, c := range list {
		if c.Name == "Veg" {
			matches = append(matches, c)
		}
	}
	require.Len(t, matches, 1)
	assert.NotNil(t, matches[0].Subcategories)
	assert.Empty(t, matches[0].Subcategories)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_IDInexistente(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Update(context.Background(), dto.UpdateCategoryRequest{CategoryID: "no-existe", Name: strPtr("X")})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_ReemplazaListaCompleta(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateCategoryRequest{
		Name:          "Fruit",
		Subcategories: []dto.SubcategoryInput{{Name: "Apple"}, {Name: "Banana"}},
	})
	require.NoError(t, err)
	keep := created.Subcategories[1]

	subs := []dto.SubcategoryInput{{ID: keep.ID, Name: keep.Name}, {Name: "Cherry"}}
	out, err := uc.Update(ctx, dto.UpdateCategoryRequest{CategoryID: created.ID, Subcategories: &subs})

	require.NoError(t, err)
	assert.Equal(t, "Fruit", out.Name, "el nombre no cambia si no viene")
	require.Len(t, out.Subcategories, 2)
	assert.Equal(t, keep.ID, out.Subcategories[0].ID)
	assert.Equal(t, "Cherry", out.Subcategories[1].Name)
	assert.NotEmpty(t, out.Subcategories[1].ID)
}

func TestUpdate_ClearExcelFile(t *testing.T) {
	uc, _ := newUseCase([]string{"Category", "Subcategory"}, []string{"Fruit", "Apple"})
	ctx := context.Background()
	imported, err := uc.Import(ctx, "catalogo.xlsx", strings.NewReader(""))
	require.NoError(t, err)
	require.Len(t, imported, 1)
	require.NotNil(t, imported[0].ExcelFile)

	out, err := uc.Update(ctx, dto.UpdateCategoryRequest{CategoryID: imported[0].ID, Name: strPtr("Fruits")})
	require.NoError(t, err)
	require.NotNil(t, out.ExcelFile, "sin ClearExcelFile se conservan")

	out, err = uc.Update(ctx, dto.UpdateCategoryRequest{CategoryID: imported[0].ID, ClearExcelFile: true})
	require.NoError(t, err)
	assert.Nil(t, out.ExcelFile)
	assert.Equal(t, "Fruits", out.Name)
}

func TestUpdate_ListaVaciaBorraSubcategorias(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateCategoryRequest{
		Name:          "Fruit",
		Subcategories: []dto.SubcategoryInput{{Name: "Apple"}},
	})
	require.NoError(t, err)

	empty := []dto.SubcategoryInput{}
	out, err := uc.Update(ctx, dto.UpdateCategoryRequest{CategoryID: created.ID, Subcategories: &empty})

	require.NoError(t, err)
	assert.Empty(t, out.Subcategories)
}

func TestUpdate_NombreEnUsoEsValidationError(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Fruit"})
	require.NoError(t, err)
	veg, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Veg"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, dto.UpdateCategoryRequest{CategoryID: veg.ID, Name: strPtr("Fruit")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestUpdate_MismoNombreNoEsConflicto(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Fruit"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, dto.UpdateCategoryRequest{CategoryID: created.ID, Name: strPtr(" Fruit ")})

	require.NoError(t, err)
	assert.Equal(t, "Fruit", out.Name)
	assert.False(t, out.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdate_SinCategoryID(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Update(context.Background(), dto.UpdateCategoryRequest{Name: strPtr("X")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EliminaCategoriaYSubcategorias(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateCategoryRequest{
		Name:          "Fruit",
		Subcategories: []dto.SubcategoryInput{{Name: "Apple"}, {Name: "Banana"}},
	})
	require.NoError(t, err)

	out, err := uc.Delete(ctx, dto.DeleteCategoryRequest{CategoryID: created.ID})

	require.NoError(t, err)
	assert.Equal(t, created.ID, out.Deleted.ID)
	assert.Len(t, out.Deleted.Subcategories, 2)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	for _, c := range list {
		for _, s := range c.Subcategories {
			assert.NotEqual(t, created.Subcategories[0].ID, s.ID, "no deben quedar subcategorías huérfanas")
		}
	}
	_, err = uc.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_IDInexistente(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Delete(context.Background(), dto.DeleteCategoryRequest{CategoryID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Import
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_AgrupaFilas(t *testing.T) {
	uc, _ := newUseCase(
		[]string{"Category", "Subcategory"},
		[]string{"Fruit", "Apple"},
		[]string{"Fruit", "Banana"},
		[]string{"Veg", "Carrot"},
		[]string{"", "SinCategoria"},
	)
	ctx := context.Background()

	out, err := uc.Import(ctx, "catalogo.xlsx", strings.NewReader("ignorado"))

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Fruit", out[0].Name)
	require.Len(t, out[0].Subcategories, 2)
	assert.Equal(t, "Apple", out[0].Subcategories[0].Name)
	assert.Equal(t, "Banana", out[0].Subcategories[1].Name)
	assert.Equal(t, "Veg", out[1].Name)
	require.Len(t, out[1].Subcategories, 1)
	assert.Equal(t, "Carrot", out[1].Subcategories[0].Name)
	require.NotNil(t, out[0].ExcelFile)
	assert.Equal(t, "catalogo.xlsx", out[0].ExcelFile.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestImport_NombreExistenteAbortaElLote(t *testing.T) {
	uc, _ := newUseCase(
		[]string{"Category", "Subcategory"},
		[]string{"Dairy", "Milk"},
		[]string{"Fruit", "Apple"},
	)
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Fruit"})
	require.NoError(t, err)

	_, err = uc.Import(ctx, "catalogo.xlsx", strings.NewReader(""))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Contains(t, err.Error(), "Fruit")
	list, _ := uc.List(ctx)
	assert.Len(t, list, 1, "Dairy no debe persistir")
}

func TestImport_SinFilasUtiles(t *testing.T) {
	uc, _ := newUseCase([]string{"Category", "Subcategory"}, []string{"", "x"})

	out, err := uc.Import(context.Background(), "vacio.csv", strings.NewReader(""))

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestImport_ErrorDeLectura(t *testing.T) {
	repo := memory.NewCategoryRepository()
	uc := usecase.NewCategoryUseCase(repo, tableReader{err: errors.New("archivo corrupto")})

	_, err := uc.Import(context.Background(), "x.xlsx", strings.NewReader(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "archivo corrupto")
}
