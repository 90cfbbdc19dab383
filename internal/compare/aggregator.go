// Package compare computes side-by-side per-category spending totals for
// two categorized transaction sets.
package compare

import (
	"math"

	"github.com/harperclay/ledgerdiff/internal/model"
)

// Aggregate computes the comparison result for one category across two
// statements. For the income category the amounts are summed deposits; for
// every other category they are summed withdrawals. Ties go to Statement 1.
func Aggregate(categoryID string, txns1, txns2 []model.Transaction) model.ComparisonResult {
	amount1 := categoryAmount(categoryID, txns1)
	amount2 := categoryAmount(categoryID, txns2)

	winner := model.StatementOne
	if amount2 > amount1 {
		winner = model.StatementTwo
	}

	return model.ComparisonResult{
		Category:   categoryID,
		Statement1: amount1,
		Statement2: amount2,
		Difference: math.Abs(amount1 - amount2),
		Winner:     winner,
	}
}

// AggregateAll runs Aggregate over the full static category set, in declared
// order. Categories with no matching transactions still produce a row with
// zero amounts.
func AggregateAll(txns1, txns2 []model.Transaction) []model.ComparisonResult {
	cats := model.Categories()
	results := make([]model.ComparisonResult, 0, len(cats))
	for _, category := range cats {
		results = append(results, Aggregate(category.ID, txns1, txns2))
	}
	return results
}

// categoryAmount sums the relevant direction for one category: deposits for
// income, withdrawals for everything else.
func categoryAmount(categoryID string, txns []model.Transaction) float64 {
	want := model.DirectionWithdrawal
	if categoryID == model.CategoryIncome {
		want = model.DirectionDeposit
	}

	var sum float64
	for _, txn := range txns {
		if txn.Category != categoryID || txn.Direction != want {
			continue
		}
		sum += txn.Amount
	}
	return sum
}
