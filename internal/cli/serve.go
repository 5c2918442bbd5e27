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
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-secdata/internal/api"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the JSON HTTP API over the datastore of the selected mode
until interrupted with Ctrl+C.

Example:
  pgedge-secdata serve --mode uat --listen :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"address to listen on (default: :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc, err := openService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	return api.NewServer(cfg.Server, svc).Run(ctx)
}
