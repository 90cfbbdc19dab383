package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harperclay/ledgerdiff/internal/cli"
	"github.com/harperclay/ledgerdiff/internal/engine"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <statement1> <statement2>",
		Short: "Compare two bank statements side by side",
		Long: `Parse two statements, categorize every transaction, and show per-category
totals side by side. Supported inputs are OFX/QFX downloads (parsed
locally) and PDF/CSV statements (parsed by the configured parse service).

One comparison consumes one credit.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Set up interrupt handling
	interruptHandler := cli.NewInterruptHandler(nil)
	ctx = interruptHandler.HandleInterrupts(ctx)

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

	first, closeFirst, err := openStatement(args[0])
	if err != nil {
		return err
	}
	defer closeFirst()

	second, closeSecond, err := openStatement(args[1])
	if err != nil {
		return err
	}
	defer closeSecond()

	cmp, stats, err := eng.Compare(ctx, first, second)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderComparison(cmp))
	fmt.Println(cli.FormatInfo(fmt.Sprintf("%d + %d transactions in %s · id %s",
		stats.Statement1Count, stats.Statement2Count, stats.Duration.Round(1e6), cmp.ID)))
	return nil
}

// openStatement opens a statement file and wraps it in a progress bar so
// large uploads show ingest activity.
func openStatement(path string) (engine.StatementInput, func(), error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return engine.StatementInput{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	name := filepath.Base(path)
	total := -1
	if info, statErr := f.Stat(); statErr == nil {
		total = int(info.Size())
	}
	bar := cli.NewIngestProgress(os.Stderr, total, "Reading "+name)

	input := engine.StatementInput{
		Name:   name,
		Reader: io.TeeReader(f, bar),
	}
	cleanup := func() {
		_ = bar.Finish()
		_ = f.Close()
	}
	return input, cleanup, nil
}
