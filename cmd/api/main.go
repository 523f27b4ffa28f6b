// @title        Category API
// @version      1.0
// @description  CRUD de categorías y subcategorías, importación desde hoja de cálculo y directorio de regiones.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/MrEshunOfficial/category-api/docs"
	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/internal/domain/repository"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/memory"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/mongodb"
	infrapdf "github.com/MrEshunOfficial/category-api/internal/infrastructure/pdf"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/postgres"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/regionfs"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/MrEshunOfficial/category-api/internal/interfaces/http"
	"github.com/MrEshunOfficial/category-api/pkg/config"
	"github.com/MrEshunOfficial/category-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer closeStore()

	regions, err := regionfs.Load(cfg.Regions.Dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.Regions.Dir).Msg("regiones omitidas")
	}
	log.Info().Int("regions", len(regions.All())).Str("dir", cfg.Regions.Dir).Msg("directorio de regiones cargado")

	categoryUC := usecase.NewCategoryUseCase(repo, spreadsheet.NewReader())
	exportUC := usecase.NewExportUseCase(repo, spreadsheet.NewWriter(), infrapdf.NewMarotoCatalogGenerator(cfg.App.Name))
	regionUC := usecase.NewRegionUseCase(regions)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions}, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.HTTP.DocsFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Info().Str("file", cfg.HTTP.DocsFile).Msg("swagger UI deshabilitado")
	}
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  categoryUC,
		ExportUC:    exportUC,
		RegionUC:    regionUC,
		Logger:      log,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore construye el Record Store según STORE_DRIVER y devuelve su función de cierre.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CategoryRepository, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(connectCtx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if cfg.DB.AutoMigrate {
			n, err := postgres.Migrate(connectCtx, pool)
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
			log.Info().Int("applied", n).Msg("migraciones aplicadas")
		}
		return postgres.NewCategoryRepository(pool), pool.Close, nil
	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return memory.NewCategoryRepository(), func() {}, nil
	default:
		client, coll, err := mongodb.Connect(connectCtx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("cerrar mongo")
			}
		}
		return mongodb.NewCategoryRepository(coll), closeFn, nil
	}
}
