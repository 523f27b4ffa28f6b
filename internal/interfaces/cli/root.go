// Package cli expone la caché de categorías como comandos cobra (categoryctl).
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
	"github.com/MrEshunOfficial/category-api/internal/client"
	"github.com/MrEshunOfficial/category-api/internal/domain/entity"
)

// RegionAPI consulta del directorio de regiones.
type RegionAPI interface {
	Regions(ctx context.Context) (*dto.RegionListResponse, error)
	Region(ctx context.Context, name string) (*dto.RegionResponse, error)
}

// Deps dependencias de los comandos. Out/ErrOut por defecto son stdout/stderr.
type Deps struct {
	Cache   *client.Cache
	Regions RegionAPI
	Out     io.Writer
	ErrOut  io.Writer
}

// DepsFunc construye las dependencias una vez parseados los flags globales.
type DepsFunc func(cmd *cobra.Command) (Deps, error)

type app struct {
	Deps
}

// NewRootCommand arma el árbol de comandos; resolve se invoca antes de cada comando.
func NewRootCommand(resolve DepsFunc) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "categoryctl",
		Short:         "Administra categorías y subcategorías de la API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := resolve(cmd)
			if err != nil {
				return err
			}
			if deps.Out == nil {
				deps.Out = os.Stdout
			}
			if deps.ErrOut == nil {
				deps.ErrOut = os.Stderr
			}
			a.Deps = deps
			return nil
		},
	}
	root.AddCommand(
		a.listCmd(),
		a.createCmd(),
		a.renameCmd(),
		a.setSubsCmd(),
		a.addSubCmd(),
		a.removeSubCmd(),
		a.deleteCmd(),
		a.importCmd(),
		a.regionsCmd(),
	)
	return root
}

// mutate carga la lista, aplica op y muestra la caché o su error.
func (a *app) mutate(ctx context.Context, op func(ctx context.Context) error) error {
	if err := a.Cache.Fetch(ctx); err != nil {
		RenderError(a.ErrOut, a.Cache.Err())
		return err
	}
	if err := op(ctx); err != nil {
		RenderError(a.ErrOut, a.Cache.Err())
		return err
	}
	RenderCategories(a.Out, a.Cache.Snapshot())
	return nil
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista las categorías",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.mutate(cmd.Context(), func(context.Context) error { return nil })
		},
	}
}

func (a *app) createCmd() *cobra.Command {
	var subs []string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Crea una categoría",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), func(ctx context.Context) error {
				_, err := a.Cache.Create(ctx, args[0], subs)
				return err
			})
		},
	}
	cmd.Flags().StringArrayVar(&subs, "sub", nil, "subcategoría (repetible)")
	return cmd
}

func (a *app) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Cambia el nombre de una categoría",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), func(ctx context.Context) error {
				_, err := a.Cache.Rename(ctx, args[0], args[1])
				return err
			})
		},
	}
}

func (a *app) setSubsCmd() *cobra.Command {
	var subs []string
	cmd := &cobra.Command{
		Use:   "set-subs ID",
		Short: "Reemplaza la lista completa de subcategorías (sin --sub la vacía)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), func(ctx context.Context) error {
				_, err := a.Cache.SetSubcategories(ctx, args[0], subs)
				return err
			})
		},
	}
	cmd.Flags().StringArrayVar(&subs, "sub", nil, "subcategoría (repetible)")
	return cmd
}

func (a *app) addSubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-sub ID NAME",
		Short: "Agrega una subcategoría si no existe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), func(ctx context.Context) error {
				_, err := a.Cache.AddSubcategory(ctx, args[0], args[1])
				return err
			})
		},
	}
}

func (a *app) removeSubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-sub ID SUBCATEGORY_ID",
		Short: "Quita una subcategoría",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), func(ctx context.Context) error {
				_, err := a.Cache.RemoveSubcategory(ctx, args[0], args[1])
				return err
			})
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Elimina una categoría y sus subcategorías",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), func(ctx context.Context) error {
				return a.Cache.Delete(ctx, args[0])
			})
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Importa categorías desde un xlsx o csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				RenderError(a.ErrOut, err.Error())
				return err
			}
			defer f.Close()
			return a.mutate(cmd.Context(), func(ctx context.Context) error {
				_, err := a.Cache.Import(ctx, filepath.Base(args[0]), f)
				return err
			})
		},
	}
}

func (a *app) regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions [NAME]",
		Short: "Lista regiones o muestra una",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var regions []entity.Region
			if len(args) == 1 {
				out, err := a.Regions.Region(cmd.Context(), args[0])
				if err != nil {
					RenderError(a.ErrOut, err.Error())
					return err
				}
				regions = []entity.Region{out.Data}
			} else {
				out, err := a.Regions.Regions(cmd.Context())
				if err != nil {
					RenderError(a.ErrOut, err.Error())
					return err
				}
				regions = out.Data
			}
			RenderRegions(a.Out, regions)
			return nil
		},
	}
}
