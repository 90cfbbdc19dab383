package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperclay/ledgerdiff/internal/model"
)

// column widths for the comparison table.
const (
	categoryColWidth = 18
	amountColWidth   = 14
	winnerColWidth   = 12
)

// RenderComparison renders a finished comparison as a side-by-side table,
// one row per category, with the winning side highlighted.
func RenderComparison(cmp *model.Comparison) string {
	var b strings.Builder

	b.WriteString(FormatTitle(fmt.Sprintf("%s vs %s", cmp.Label1, cmp.Label2)))
	b.WriteString("\n\n")

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TableHeaderStyle.Width(categoryColWidth).Render("Category"),
		TableHeaderStyle.Width(amountColWidth).Render(truncate(cmp.Label1, amountColWidth-2)),
		TableHeaderStyle.Width(amountColWidth).Render(truncate(cmp.Label2, amountColWidth-2)),
		TableHeaderStyle.Width(amountColWidth).Render("Difference"),
		TableHeaderStyle.Width(winnerColWidth).Render("Winner"),
	)
	b.WriteString(header)
	b.WriteString("\n")

	for _, result := range cmp.Results {
		b.WriteString(renderComparisonRow(result))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("Total difference: %s", FormatMoney(cmp.TotalDifference()))))
	b.WriteString("\n")

	return b.String()
}

func renderComparisonRow(result model.ComparisonResult) string {
	name := result.Category
	if cat := model.CategoryByID(result.Category); cat != nil {
		name = cat.Name
	}

	style1 := TableCellStyle
	style2 := TableCellStyle
	if result.Winner == model.StatementOne {
		style1 = WinnerStyle.PaddingRight(2)
	} else {
		style2 = WinnerStyle.PaddingRight(2)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		TableCellStyle.Width(categoryColWidth).Render(truncate(name, categoryColWidth-2)),
		style1.Width(amountColWidth).Render(FormatMoney(result.Statement1)),
		style2.Width(amountColWidth).Render(FormatMoney(result.Statement2)),
		TableCellStyle.Width(amountColWidth).Render(FormatMoney(result.Difference)),
		TableCellStyle.Width(winnerColWidth).Render(string(result.Winner)),
	)
}

// RenderRules renders learned rules as a table, highest confidence first
// within the caller's ordering.
func RenderRules(rules []model.CategoryRule) string {
	if len(rules) == 0 {
		return SubtleStyle.Render("No learned rules yet.") + "\n"
	}

	var b strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TableHeaderStyle.Width(24).Render("Signature"),
		TableHeaderStyle.Width(categoryColWidth).Render("Category"),
		TableHeaderStyle.Width(12).Render("Confidence"),
		TableHeaderStyle.Width(8).Render("Uses"),
	)
	b.WriteString(header)
	b.WriteString("\n")

	for _, rule := range rules {
		name := rule.Category
		if cat := model.CategoryByID(rule.Category); cat != nil {
			name = cat.Name
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			TableCellStyle.Width(24).Render(truncate(rule.Signature, 22)),
			TableCellStyle.Width(categoryColWidth).Render(truncate(name, categoryColWidth-2)),
			TableCellStyle.Width(12).Render(fmt.Sprintf("%.1f", rule.Confidence)),
			TableCellStyle.Width(8).Render(fmt.Sprintf("%d", rule.UseCount)),
		))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
