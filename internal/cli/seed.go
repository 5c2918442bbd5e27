//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-secdata/internal/datagen"
	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/secdata"
)

var (
	seedCount int
	seedSeed  uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate a test or UAT datastore with fake records",
	Long: `Generate fake but valid records of every kind and add them through
the normal validation and linkage path. Keys that already exist are
skipped. Seeding is refused in production mode.

Example:
  pgedge-secdata seed --mode uat --count 100 --seed 42`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 0,
		"records to generate per kind")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 0,
		"random seed for reproducible data (0 = random)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedCount > 0 {
		cfg.Seed.Count = seedCount
	}
	if seedSeed > 0 {
		cfg.Seed.Seed = seedSeed
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}
	if !secdata.ParseMode(cfg.Mode).AllowsClear() {
		return fmt.Errorf("seeding is refused in %s mode", cfg.Mode)
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc, err := openService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	faker := datagen.NewFaker()
	if cfg.Seed.Seed != 0 {
		faker = datagen.NewFakerWithSeed(cfg.Seed.Seed)
	}

	logging.Info().
		Str("mode", cfg.Mode).
		Int("count", cfg.Seed.Count).
		Msg("Seeding datastore")

	_, err = datagen.NewSeeder(faker).Seed(ctx, svc, cfg.Seed.Count)
	return err
}
