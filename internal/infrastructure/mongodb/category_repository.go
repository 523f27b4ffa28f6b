package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
	"github.com/MrEshunOfficial/category-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre una colección MongoDB.
type CategoryRepo struct {
	coll *mongo.Collection
}

// NewCategoryRepository construye el adaptador sobre la colección (ver Connect).
func NewCategoryRepository(coll *mongo.Collection) *CategoryRepo {
	return &CategoryRepo{coll: coll}
}

// Create inserta una categoría; el índice único traduce nombres repetidos a ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if _, err := r.coll.InsertOne(ctx, toDocument(category)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert category %q: %w", category.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// CreateMany inserta el lote en orden. Si falla a mitad, borra los documentos del lote que
// alcanzaron a insertarse (los IDs son nuevos, así que solo coinciden los de este lote).
func (r *CategoryRepo) CreateMany(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(categories))
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		docs = append(docs, toDocument(c))
		ids = append(ids, c.ID)
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err == nil {
		return nil
	}
	if _, delErr := r.coll.DeleteMany(context.WithoutCancel(ctx), bson.M{"id": bson.M{"$in": ids}}); delErr != nil {
		return fmt.Errorf("insert categories: %w (compensación fallida: %v)", err, delErr)
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert categories: %w", domain.ErrDuplicate)
	}
	return fmt.Errorf("insert categories: %w", err)
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// ExistingNames devuelve los nombres del lote que ya existen en la colección.
func (r *CategoryRepo) ExistingNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	values, err := r.coll.Distinct(ctx, "name", bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, fmt.Errorf("existing names: %w", err)
	}
	taken := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			taken = append(taken, s)
		}
	}
	return taken, nil
}

// List devuelve todas las categorías ordenadas por createdAt descendente.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toEntity())
	}
	return list, nil
}

// Update reemplaza los campos mutables; último en escribir gana.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	doc := toDocument(category)
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": category.ID}, bson.M{"$set": bson.M{
		"name":          doc.Name,
		"subcategories": doc.Subcategories,
		"excel_file":    doc.ExcelFile,
		"updatedAt":     doc.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("update category %q: %w", category.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update category %s: %w", category.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el documento (y con él sus subcategorías embebidas) y lo devuelve.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (*entity.Category, error) {
	var doc categoryDocument
	err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("delete category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CategoryRepo) findOne(ctx context.Context, filter bson.M) (*entity.Category, error) {
	var doc categoryDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return doc.toEntity(), nil
}
