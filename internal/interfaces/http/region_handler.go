package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/pkg/logger"
)

// RegionHandler expone el directorio de regiones (solo lectura).
type RegionHandler struct {
	uc  *usecase.RegionUseCase
	log *logger.Logger
}

// NewRegionHandler construye el handler.
func NewRegionHandler(uc *usecase.RegionUseCase, log *logger.Logger) *RegionHandler {
	return &RegionHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar regiones
// @Tags         regions
// @Produce      json
// @Success      200  {object}  dto.RegionListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /regions [get]
func (h *RegionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByName godoc
// @Summary      Obtener región por nombre
// @Tags         regions
// @Produce      json
// @Param        name  path      string  true  "Nombre del archivo de la región (sin .json)"
// @Success      200   {object}  dto.RegionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /regions/{name} [get]
func (h *RegionHandler) GetByName(c *fiber.Ctx) error {
	out, err := h.uc.GetByName(c.Params("name"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
