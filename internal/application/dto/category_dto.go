package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// SubcategoryInput subcategoría recibida en create/update. ID opcional: se genera si falta.
type SubcategoryInput struct {
	ID   string `json:"id" validate:"omitempty,max=100"`
	Name string `json:"name" validate:"required,notblank,max=200"`
}

// ExcelFileInput metadatos de archivo enviados en un update.
type ExcelFileInput struct {
	Name       string    `json:"name" validate:"max=255"`
	Path       string    `json:"path" validate:"max=1024"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name          string             `json:"name" validate:"required,notblank,max=200"`
	Subcategories []SubcategoryInput `json:"subcategories" validate:"omitempty,dive"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (merge superficial).
// Subcategories, si viene, reemplaza la lista completa. "excel_file": null borra los
// metadatos de importación (ClearExcelFile); si la clave falta se conservan.
type UpdateCategoryRequest struct {
	CategoryID     string              `json:"categoryId" validate:"required,notblank"`
	Name           *string             `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Subcategories  *[]SubcategoryInput `json:"subcategories,omitempty" validate:"omitempty,dive"`
	ExcelFile      *ExcelFileInput     `json:"excel_file,omitempty"`
	ClearExcelFile bool                `json:"-"`
}

type updateCategoryAlias UpdateCategoryRequest

// UnmarshalJSON distingue "excel_file": null de la clave ausente.
func (r *UpdateCategoryRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		updateCategoryAlias
		ExcelFile json.RawMessage `json:"excel_file"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = UpdateCategoryRequest(raw.updateCategoryAlias)
	r.ExcelFile, r.ClearExcelFile = nil, false
	switch {
	case raw.ExcelFile == nil:
	case bytes.Equal(bytes.TrimSpace(raw.ExcelFile), []byte("null")):
		r.ClearExcelFile = true
	default:
		var ef ExcelFileInput
		if err := json.Unmarshal(raw.ExcelFile, &ef); err != nil {
			return err
		}
		r.ExcelFile = &ef
	}
	return nil
}

// MarshalJSON envía "excel_file": null cuando ClearExcelFile está activo.
func (r UpdateCategoryRequest) MarshalJSON() ([]byte, error) {
	if !r.ClearExcelFile || r.ExcelFile != nil {
		return json.Marshal(updateCategoryAlias(r))
	}
	return json.Marshal(struct {
		updateCategoryAlias
		ExcelFile *ExcelFileInput `json:"excel_file"`
	}{updateCategoryAlias: updateCategoryAlias(r)})
}

// DeleteCategoryRequest entrada para eliminar una categoría.
type DeleteCategoryRequest struct {
	CategoryID string `json:"categoryId" validate:"required,notblank"`
}

// SubcategoryResponse salida de una subcategoría.
type SubcategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExcelFileResponse salida de los metadatos de importación.
type ExcelFileResponse struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
	ExcelFile     *ExcelFileResponse    `json:"excel_file"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// DeleteCategoryResponse confirmación de borrado con el registro eliminado.
type DeleteCategoryResponse struct {
	Message string           `json:"message"`
	Deleted CategoryResponse `json:"deleted"`
}
