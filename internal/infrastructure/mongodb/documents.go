package mongodb

import (
	"time"

	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

// categoryDocument forma persistida; _id lo asigna MongoDB y no se expone.
type categoryDocument struct {
	ID            string                `bson:"id"`
	Name          string                `bson:"name"`
	Subcategories []subcategoryDocument `bson:"subcategories"`
	ExcelFile     *excelFileDocument    `bson:"excel_file"`
	CreatedAt     time.Time             `bson:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt"`
}

type subcategoryDocument struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

type excelFileDocument struct {
	Name       string    `bson:"name"`
	Path       string    `bson:"path"`
	UploadedAt time.Time `bson:"uploadedAt"`
}

func toDocument(c *entity.Category) categoryDocument {
	subs := make([]subcategoryDocument, 0, len(c.Subcategories))
	for _, s := range c.Subcategories {
		subs = append(subs, subcategoryDocument{ID: s.ID, Name: s.Name})
	}
	doc := categoryDocument{
		ID:            c.ID,
		Name:          c.Name,
		Subcategories: subs,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.ExcelFile != nil {
		doc.ExcelFile = &excelFileDocument{
			Name:       c.ExcelFile.Name,
			Path:       c.ExcelFile.Path,
			UploadedAt: c.ExcelFile.UploadedAt,
		}
	}
	return doc
}

func (d categoryDocument) toEntity() *entity.Category {
	subs := make([]entity.Subcategory, 0, len(d.Subcategories))
	for _, s := range d.Subcategories {
		subs = append(subs, entity.Subcategory{ID: s.ID, Name: s.Name})
	}
	c := &entity.Category{
		ID:            d.ID,
		Name:          d.Name,
		Subcategories: subs,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.ExcelFile != nil {
		c.ExcelFile = &entity.ExcelFile{
			Name:       d.ExcelFile.Name,
			Path:       d.ExcelFile.Path,
			UploadedAt: d.ExcelFile.UploadedAt,
		}
	}
	return c
}
