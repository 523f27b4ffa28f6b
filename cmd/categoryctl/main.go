// categoryctl administra categorías contra una instancia de la API.
//
// Uso: categoryctl [--server URL] [--legacy] list | create | rename | set-subs | add-sub | rm-sub | delete | import | regions
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrEshunOfficial/category-api/internal/client"
	"github.com/MrEshunOfficial/category-api/internal/interfaces/cli"
	httpRouter "github.com/MrEshunOfficial/category-api/internal/interfaces/http"
)

func main() {
	v := viper.New()
	v.SetEnvPrefix("CATEGORYCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := cli.NewRootCommand(func(*cobra.Command) (cli.Deps, error) {
		opts := client.Options{
			BaseURL: v.GetString("server"),
			Timeout: v.GetDuration("timeout"),
		}
		if v.GetBool("legacy") {
			opts.CategoryPath = httpRouter.LegacyCategoryPath
		}
		c := client.New(opts)
		return cli.Deps{Cache: client.NewCache(c), Regions: c}, nil
	})

	flags := root.PersistentFlags()
	flags.String("server", client.DefaultBaseURL, "URL base de la API (env CATEGORYCTL_SERVER)")
	flags.Bool("legacy", false, "usar la ruta "+httpRouter.LegacyCategoryPath)
	flags.Duration("timeout", 30*time.Second, "timeout por petición")
	if err := v.BindPFlags(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
