package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperclay/ledgerdiff/internal/cli"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var (
		limit int
		show  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past comparisons",
		Long:  `List saved comparisons for this owner, newest first. Use --show to print one in full.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if show != "" {
				cmp, err := store.GetComparison(ctx, show)
				if err != nil {
					return err
				}
				if cmp.Owner != owner {
					return fmt.Errorf("comparison %s not found for this owner", show)
				}
				fmt.Println(cli.RenderComparison(cmp))
				return nil
			}

			comparisons, err := store.ListComparisons(ctx, owner, limit)
			if err != nil {
				return err
			}
			if len(comparisons) == 0 {
				fmt.Println(cli.FormatInfo("No comparisons yet. Run 'ledgerdiff compare' first."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("When"),
				headerStyle.Render("Statements"),
				headerStyle.Render("Total Diff"),
				headerStyle.Render("ID"))

			for _, cmp := range comparisons {
				fmt.Fprintf(w, "%s\t%s vs %s\t%s\t%s\n",
					cmp.CreatedAt.Format("2006-01-02 15:04"),
					cmp.Label1, cmp.Label2,
					cli.FormatMoney(cmp.TotalDifference()),
					cmp.ID)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum comparisons to list")
	cmd.Flags().StringVar(&show, "show", "", "print one comparison by id")
	return cmd
}
