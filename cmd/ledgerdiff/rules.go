package main

import (
	"fmt"
	"os"

	"github.com/harperclay/ledgerdiff/internal/cli"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/harperclay/ledgerdiff/internal/rules"
	"github.com/harperclay/ledgerdiff/internal/service"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage learned merchant rules",
		Long:  `List, teach, and delete the merchant rules learned from your corrections.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(learnRuleCmd())
	cmd.AddCommand(deleteRuleCmd())
	cmd.AddCommand(clearRulesCmd())

	return cmd
}

// openRuleStore loads the owner's rule store, returning the storage handle
// for the caller to close.
func openRuleStore(cmd *cobra.Command) (*rules.Store, service.Storage, error) {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	owner, err := resolveOwner()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	ruleStore, err := rules.NewStore(owner, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	if err := ruleStore.Load(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load rules: %w", err)
	}

	return ruleStore, store, nil
}

func listRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learned rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ruleStore, store, err := openRuleStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Print(cli.RenderRules(ruleStore.Rules()))
			return nil
		},
	}
}

func learnRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <description> <category>",
		Short: "Teach a merchant rule directly",
		Long: `Learn a rule from a raw transaction description without going through
the review flow. The description is reduced to its merchant signature.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.ValidCategory(args[1]) {
				return fmt.Errorf("unknown category %q (see 'ledgerdiff categories')", args[1])
			}

			ruleStore, store, err := openRuleStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			result, err := ruleStore.Learn(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Learned %q → %s (confidence %.1f)",
				result.Signature, args[1], result.Confidence)))
			return nil
		},
	}
}

func deleteRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <signature>",
		Short: "Delete one learned rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleStore, store, err := openRuleStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := ruleStore.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted rule for %q", args[0])))
			return nil
		},
	}
}

func clearRulesCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all learned rules for this owner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ruleStore, store, err := openRuleStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete ALL learned rules?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted."))
					return nil
				}
			}

			count, err := ruleStore.Clear(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d rule(s).", count)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}
