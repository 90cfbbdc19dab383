package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperclay/ledgerdiff/internal/categorize"
	"github.com/harperclay/ledgerdiff/internal/cli"
	"github.com/harperclay/ledgerdiff/internal/engine"
	"github.com/harperclay/ledgerdiff/internal/rules"
	"github.com/harperclay/ledgerdiff/internal/tui"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <statement>",
		Short: "Review and correct categories interactively",
		Long: `Parse one statement, categorize it, and walk the results in an
interactive session. Every correction you make is learned as a merchant
rule, so future comparisons categorize that merchant your way.`,
		Args: cobra.ExactArgs(1),
		RunE: runReview,
	}
}

func runReview(cmd *cobra.Command, args []string) error {
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

	ruleStore, err := rules.NewStore(owner, store)
	if err != nil {
		return err
	}
	if err := ruleStore.Load(ctx); err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	f, err := os.Open(args[0]) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(args[0])
	txns, err := newStatementSource().Parse(ctx, name, f)
	if err != nil {
		return err
	}

	txns = categorize.New(ruleStore).CategorizeAll(txns)

	corrections, err := tui.Run(ctx, txns)
	if err != nil {
		return err
	}
	if len(corrections) == 0 {
		fmt.Println(cli.FormatInfo("No corrections made."))
		return nil
	}

	learn := make([]engine.Correction, 0, len(corrections))
	for _, c := range corrections {
		learn = append(learn, engine.Correction{Description: c.Description, Category: c.Category})
	}

	eng, err := newEngine(store, owner)
	if err != nil {
		return err
	}
	accepted, err := eng.ApplyCorrections(ctx, learn)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Learned %d merchant rule(s).", accepted)))
	return nil
}
