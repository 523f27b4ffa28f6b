package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/pkg/logger"
)

// LegacyCategoryPath ruta que usaba el cliente web original; monta los mismos handlers.
const LegacyCategoryPath = "/api/productcategoryapi"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	ExportUC    *usecase.ExportUseCase
	RegionUC    *usecase.RegionUseCase
	Logger      *logger.Logger
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ExportUC, deps.Logger)
	categories := app.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/", categoryHandler.Update)
	categories.Delete("/", categoryHandler.Delete)
	categories.Get("/export", categoryHandler.Export)
	categories.Get("/:id", categoryHandler.GetByID)

	legacy := app.Group(LegacyCategoryPath)
	legacy.Get("/", categoryHandler.List)
	legacy.Post("/", categoryHandler.Create)
	legacy.Put("/", categoryHandler.Update)
	legacy.Delete("/", categoryHandler.Delete)

	regionHandler := NewRegionHandler(deps.RegionUC, deps.Logger)
	regions := app.Group("/regions")
	regions.Get("/", regionHandler.List)
	regions.Get("/:name", regionHandler.GetByName)
}
