package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hotel_allocation/internal/app"
	"hotel_allocation/internal/bootstrap"
	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/solver"
	mysqlrepo "hotel_allocation/internal/storage/mysql"
)

func newRunCmd() *cobra.Command {
	var (
		files     []string
		timeLimit int
		source    string
		tenant    string
	)
	cmd := &cobra.Command{
		Use:   "run -f allocation.json [-f ...]",
		Short: "Solve allocation files and print the results as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) == 0 {
				return fmt.Errorf("at least one -f file is required")
			}
			if source != "" {
				cfg.ConstraintSource = source
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			repo, closeRepo, err := bootstrap.ConstraintRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRepo()

			svc := app.NewSolveService(repo, nil, app.SolveOptions{
				DefaultTimeLimit: cfg.SolveTimeLimit,
				MaxTimeLimit:     cfg.SolveMaxTime,
				MaxIterations:    cfg.SolveMaxIter,
				Concurrency:      cfg.SolveWorkers,
			})
			results, err := solveFiles(ctx, svc, files, tenant, time.Duration(timeLimit)*time.Second, cfg.SolveWorkers)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "allocation JSON file (repeatable)")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 0, "per-solve time limit in seconds (0 = configured default)")
	cmd.Flags().StringVar(&source, "source", "", "constraint source override: mysql, cms or file")
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant id for files that do not carry one")
	return cmd
}

// solveFiles solves every file concurrently, at most workers at a time.
// Results keep the order of files; the first failure cancels the rest.
func solveFiles(ctx context.Context, svc *app.SolveService, files []string, tenant string, limit time.Duration, workers int) ([]domain.HotelAllocation, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]domain.HotelAllocation, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		g.Go(func() error {
			a, err := readAllocation(path)
			if err != nil {
				return err
			}
			if a.TenantID == "" {
				a.TenantID = tenant
			}
			res, err := svc.Solve(gctx, a, limit)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("solve failed")
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readAllocation(path string) (domain.HotelAllocation, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.HotelAllocation{}, err
	}
	defer f.Close()
	var a domain.HotelAllocation
	if err := json.NewDecoder(f).Decode(&a); err != nil {
		return domain.HotelAllocation{}, fmt.Errorf("%s: decode: %w", path, err)
	}
	return a, nil
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the built-in constraint catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), solver.Catalog())
		},
	}
}

func newSeedCatalogCmd() *cobra.Command {
	var tenants []string
	cmd := &cobra.Command{
		Use:   "seed-catalog",
		Short: "Write catalog templates (and optional tenant defaults) to MySQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := bootstrap.OpenMySQL(ctx, cfg.MySQLDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			seeder := app.NewCatalogSeeder(mysqlrepo.New(db))
			n, err := seeder.SeedCatalog(ctx)
			if err != nil {
				return err
			}
			for _, t := range tenants {
				if err := seeder.SeedTenantDefaults(ctx, t); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d templates, %d tenants\n", n, len(tenants))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tenants, "tenant", nil, "also enable the default catalog for these tenants")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
