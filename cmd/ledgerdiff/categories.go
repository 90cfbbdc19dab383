package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	var showKeywords bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the category set",
		Long: `Display the fixed category set used for categorization. Keyword order
matters: the first match in declared order wins, and learned merchant
rules take precedence over all keywords.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			if showKeywords {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					headerStyle.Render("ID"),
					headerStyle.Render("Name"),
					headerStyle.Render("Keywords"))
			} else {
				fmt.Fprintf(w, "%s\t%s\n",
					headerStyle.Render("ID"),
					headerStyle.Render("Name"))
			}

			for _, cat := range model.Categories() {
				if showKeywords {
					fmt.Fprintf(w, "%s\t%s\t%s\n", cat.ID, cat.Name, strings.Join(cat.Keywords, ", "))
				} else {
					fmt.Fprintf(w, "%s\t%s\n", cat.ID, cat.Name)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showKeywords, "keywords", false, "include the keyword list per category")
	return cmd
}
