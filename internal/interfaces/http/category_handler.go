package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/pkg/logger"
)

// UploadField nombre del campo multipart que trae la hoja de cálculo.
const UploadField = "file"

// CategoryHandler maneja las peticiones HTTP de categorías.
type CategoryHandler struct {
	uc     *usecase.CategoryUseCase
	export *usecase.ExportUseCase
	log    *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, export *usecase.ExportUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, export: export, log: log}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría o importar hoja de cálculo
// @Description  JSON {name, subcategories} crea una categoría. multipart/form-data con el campo "file" (xlsx o csv) importa el lote.
// @Tags         categories
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  false  "Categoría"
// @Param        file  formData  file                       false  "Hoja con columnas Category y Subcategory"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return h.importFile(c)
	}
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CategoryHandler) importFile(c *fiber.Ctx) error {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		return badBody(c, "no se recibió archivo en el campo \""+UploadField+"\"")
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c, err.Error())
	}
	defer f.Close()

	out, err := h.uc.Import(c.UserContext(), fh.Filename, f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Str("file", fh.Filename).Int("categories", len(out)).Msg("importación completada")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateCategoryRequest  true  "categoryId y campos a reemplazar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /categories [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      dto.DeleteCategoryRequest  true  "categoryId"
// @Success      200   {object}  dto.DeleteCategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /categories [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.uc.Delete(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar catálogo
// @Tags         categories
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/pdf
// @Param        format  query  string  false  "xlsx (por defecto) o pdf"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /categories/export [get]
func (h *CategoryHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.UserContext(), c.Query("format"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Attachment(file.FileName)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Content)
}
