package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_allocation/internal/adapters/observability"
	"hotel_allocation/internal/shared"
)

var cfg shared.Config

func main() {
	root := &cobra.Command{
		Use:           "solve",
		Short:         "Hotel room allocation solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = shared.Load()
			// logs go to stderr so stdout stays valid JSON
			log.Logger = observability.NewStderrLogger(cfg.AppEnv, "allocation-cli", cfg.LogLevel)
		},
	}
	root.AddCommand(newRunCmd(), newCatalogCmd(), newSeedCatalogCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
