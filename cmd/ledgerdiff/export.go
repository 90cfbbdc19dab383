package main

import (
	"fmt"
	"log/slog"

	"github.com/harperclay/ledgerdiff/internal/cli"
	"github.com/harperclay/ledgerdiff/internal/config"
	"github.com/harperclay/ledgerdiff/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <comparison-id>",
		Short: "Export a comparison to Google Sheets",
		Long: `Write a saved comparison to a Google Sheets spreadsheet. Requires Google
Sheets credentials (see the sheets section of the config file).

One export consumes one credit.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	owner, err := resolveOwner()
	if err != nil {
		return err
	}

	eng, err := newEngine(store, owner)
	if err != nil {
		return err
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets configuration: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}

	if err := eng.Export(ctx, args[0], writer); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Comparison exported to Google Sheets."))
	return nil
}
