//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-secdata.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-secdata/internal/config"
	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/secdata"
	"github.com/pgEdge/pgedge-secdata/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	mode     string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-secdata",
		Short: "Security reference data store for back-office systems",
		Long: `pgedge-secdata manages security reference data (security master
records, futures, fixed deposits, FX forwards, OTC counterparties and
security attributes) in PostgreSQL datastores.

Each datastore mode (test, uat, production) binds its own database.
Destructive operations such as clear are refused in production mode.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-secdata.yaml)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "",
		"datastore mode (test, uat, production)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(counterpartiesCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if mode != "" {
		cfg.Mode = mode
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Pretty = cfg.LogPretty
	logCfg.File = cfg.LogFile
	logging.Init(logCfg)

	return nil
}

// openService binds a facade to the datastore of the configured mode.
func openService(ctx context.Context) (*secdata.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	svc := secdata.New(secdata.ConfigConnector(cfg))
	if err := svc.Initialize(ctx, secdata.ParseMode(cfg.Mode)); err != nil {
		return nil, fmt.Errorf("failed to initialize %s datastore: %w", cfg.Mode, err)
	}
	return svc, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
