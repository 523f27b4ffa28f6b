// import carga una hoja de cálculo (xlsx o csv con columnas Category y Subcategory) directamente
// en el almacenamiento configurado, sin pasar por la API HTTP.
//
// Uso: go run ./cmd/import [--charset latin1] catalogo.xlsx
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/mongodb"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/postgres"
	"github.com/MrEshunOfficial/category-api/internal/infrastructure/spreadsheet"
	"github.com/MrEshunOfficial/category-api/pkg/config"
	"github.com/MrEshunOfficial/category-api/pkg/logger"
)

func main() {
	var charset string
	cmd := &cobra.Command{
		Use:          "import FILE",
		Short:        "Importa categorías desde una hoja de cálculo al almacenamiento configurado",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], charset)
		},
	}
	cmd.Flags().StringVar(&charset, "charset", "", "charset de archivos csv (utf-8, latin1, windows-1252)")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path, charset string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	opt, err := spreadsheet.WithCSVCharset(charset)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir archivo: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var uc *usecase.CategoryUseCase
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if _, err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
		}
		uc = usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool), spreadsheet.NewReader(opt))
	case config.DriverMongo:
		client, coll, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		uc = usecase.NewCategoryUseCase(mongodb.NewCategoryRepository(coll), spreadsheet.NewReader(opt))
	default:
		return fmt.Errorf("STORE_DRIVER=%s no persiste; use mongo o postgres", cfg.Store.Driver)
	}

	created, err := uc.Import(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	subs := 0
	for _, c := range created {
		subs += len(c.Subcategories)
	}
	log.Info().
		Str("file", path).
		Str("store", cfg.Store.Driver).
		Int("categories", len(created)).
		Int("subcategories", subs).
		Msg("importación completada")
	return nil
}
