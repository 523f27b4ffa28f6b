package usecase

import (
	"github.com/MrEshunOfficial/category-api/internal/application/dto"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	subs := make([]dto.SubcategoryResponse, 0, len(c.Subcategories))
	for _, s := range c.Subcategories {
		subs = append(subs, dto.SubcategoryResponse{ID: s.ID, Name: s.Name})
	}
	out := &dto.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Subcategories: subs,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.ExcelFile != nil {
		out.ExcelFile = &dto.ExcelFileResponse{
			Name:       c.ExcelFile.Name,
			Path:       c.ExcelFile.Path,
			UploadedAt: c.ExcelFile.UploadedAt,
		}
	}
	return out
}

func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items
}
