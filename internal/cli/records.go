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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/secdata"
	"github.com/pgEdge/pgedge-secdata/internal/validation"
)

var (
	inputFile string
	keyPairs  []string
)

var getCmd = &cobra.Command{
	Use:   "get <kind>",
	Short: "Look a record up by its natural key",
	Long: `Look a record up by its natural key and print it as JSON. A key
that matches nothing prints {}.

Kinds: ` + kindList() + `

Example:
  pgedge-secdata get security_base --key geneva_id="700 HK"
  echo '{"ticker":"HSIZ5"}' | pgedge-secdata get futures`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordOp(secdata.OpGet),
}

var addCmd = &cobra.Command{
	Use:   "add <kind>",
	Short: "Create a record from JSON input",
	Long: `Create a record from a JSON object read from --file or stdin.

Kinds: ` + kindList() + `

Example:
  pgedge-secdata add counterparty --file cp.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordOp(secdata.OpAdd),
}

var updateCmd = &cobra.Command{
	Use:   "update <kind>",
	Short: "Merge JSON input into an existing record",
	Long: `Update the supplied fields of an existing record. Fields absent
from the JSON input keep their stored values.

Kinds: ` + kindList(),
	Args: cobra.ExactArgs(1),
	RunE: runRecordOp(secdata.OpUpdate),
}

var counterpartiesCmd = &cobra.Command{
	Use:   "counterparties",
	Short: "List every OTC counterparty",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		list, err := svc.GetAllCounterparties(ctx)
		if err != nil {
			return err
		}
		if list == nil {
			list = []model.Counterparty{}
		}
		return printJSON(cmd.OutOrStdout(), list)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record of the datastore (refused in production)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		return svc.ClearAll(ctx)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the datastore mode, row counts and metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		status, err := svc.Status(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), status)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{getCmd, addCmd, updateCmd} {
		cmd.Flags().StringVarP(&inputFile, "file", "f", "",
			"read JSON input from a file instead of stdin")
	}
	getCmd.Flags().StringArrayVar(&keyPairs, "key", nil,
		"key field as name=value (repeatable)")
}

func runRecordOp(op secdata.Op) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		var decode secdata.Decoder
		if op == secdata.OpGet && len(keyPairs) > 0 {
			decode, err = keyDecoder(keyPairs)
		} else {
			decode, err = inputDecoder(cmd.InOrStdin(), inputFile)
		}
		if err != nil {
			return err
		}

		ctx := context.Background()
		svc, err := openService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		result, err := svc.Execute(ctx, op, kind, decode)
		if err != nil {
			return err
		}

		switch op {
		case secdata.OpGet:
			if result == nil {
				result = struct{}{}
			}
			return printJSON(cmd.OutOrStdout(), result)
		default:
			logging.Info().
				Str("kind", string(kind)).
				Str("op", string(op)).
				Msg("Record saved")
		}
		return nil
	}
}

func kindList() string {
	names := make([]string, len(model.Kinds))
	for i, k := range model.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func parseKind(name string) (model.Kind, error) {
	for _, k := range model.Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q (expected one of %s)", name, kindList())
}

// inputDecoder reads a JSON object from path, or from stdin when path is
// empty.
func inputDecoder(stdin io.Reader, path string) (secdata.Decoder, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return jsonDecoder(data), nil
}

// keyDecoder builds the key input from name=value pairs.
func keyDecoder(pairs []string) (secdata.Decoder, error) {
	key := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid key %q (expected name=value)", pair)
		}
		key[name] = value
	}
	data, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	return jsonDecoder(data), nil
}

func jsonDecoder(data []byte) secdata.Decoder {
	return func(input any) error {
		err := validation.DecodeJSON(bytes.NewReader(data), input)
		if err != nil && !errors.Is(err, validation.ErrInvalidInput) {
			return fmt.Errorf("invalid JSON input: %w", err)
		}
		return err
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
