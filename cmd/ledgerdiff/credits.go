package main

import (
	"fmt"

	"github.com/harperclay/ledgerdiff/internal/cli"
	"github.com/harperclay/ledgerdiff/internal/credits"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/spf13/cobra"
)

func creditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Show the credit balance",
		Long: `Show the owner's tier, allowance, and remaining credits. Comparisons
and exports each consume credits; the free tier gets a small allowance
without a purchase.`,
		RunE: runCreditsShow,
	}

	cmd.AddCommand(redeemCreditsCmd())
	return cmd
}

func runCreditsShow(cmd *cobra.Command, _ []string) error {
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

	bal, err := credits.NewLedger(store).Balance(ctx, owner)
	if err != nil {
		return err
	}

	content := fmt.Sprintf("Tier: %s\nAllowance: %d\nUsed: %d\nRemaining: %d",
		bal.Tier, bal.Allowance, bal.Used, bal.Remaining)
	fmt.Println(cli.RenderBox(cli.CreditIcon+" Credits", content))
	return nil
}

func redeemCreditsCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "redeem <tier>",
		Short: "Apply a completed checkout to the balance",
		Long: `Set the credit balance from a completed checkout session. The tier name
comes from the checkout provider's metadata (starter or pro).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier := model.Tier(args[0])
			switch tier {
			case model.TierStarter, model.TierPro:
			default:
				return fmt.Errorf("unknown tier %q (want starter or pro)", args[0])
			}

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

			event := model.CheckoutCompleted{
				Owner:     owner,
				Tier:      tier,
				SessionID: sessionID,
			}
			if err := credits.NewLedger(store).Apply(ctx, event); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Balance set to %d credits (%s tier).",
				credits.CreditsForTier(tier), tier)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "checkout session id from the provider")
	return cmd
}
