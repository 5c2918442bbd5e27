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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-secdata/internal/logging"
)

var schemaDropExisting bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the datastore schema",
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the reference data tables",
	Long: `Create the reference data tables in the datastore of the selected
mode and record the mode and schema version in the metadata table.

Example:
  pgedge-secdata schema create --mode uat --drop-existing`,
	RunE: runSchemaCreate,
}

var schemaDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the reference data tables",
	RunE:  runSchemaDrop,
}

func init() {
	schemaCreateCmd.Flags().BoolVar(&schemaDropExisting, "drop-existing", false,
		"drop existing tables before creating them (refused in production)")

	schemaCmd.AddCommand(schemaCreateCmd)
	schemaCmd.AddCommand(schemaDropCmd)
}

func runSchemaCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, err := openService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.CreateSchema(ctx, schemaDropExisting); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logging.Info().
		Str("mode", cfg.Mode).
		Bool("drop_existing", schemaDropExisting).
		Msg("Schema ready")
	return nil
}

func runSchemaDrop(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, err := openService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.DropSchema(ctx); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}

	logging.Info().Str("mode", cfg.Mode).Msg("Schema dropped")
	return nil
}
