// Package categorize assigns categories to transactions using learned
// merchant rules first and static keyword tables second.
package categorize

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/harperclay/ledgerdiff/internal/signature"
)

// RuleLookup resolves a merchant signature to a learned category. It is the
// read-only face of the rule store; a nil lookup means no learned rules are
// available.
type RuleLookup interface {
	Lookup(sig string) (category string, ok bool, err error)
}

// Categorizer assigns categories to transactions. It is pure given the
// current rule-store state: it never mutates rules as a side effect.
type Categorizer struct {
	rules RuleLookup
}

// New creates a categorizer. rules may be nil, in which case only static
// keyword matching applies.
func New(rules RuleLookup) *Categorizer {
	return &Categorizer{rules: rules}
}

// Categorize resolves one transaction to a category id.
//
// Deposits always resolve to income; only withdrawals consult learned rules
// and keyword tables. Learned rules take precedence over static keywords
// because they encode explicit user intent. A withdrawal is never assigned
// income: any path that would produce it yields utilities instead.
func (c *Categorizer) Categorize(txn model.Transaction) string {
	if txn.Direction == model.DirectionDeposit {
		return model.CategoryIncome
	}

	if c.rules != nil {
		sig := signature.Extract(txn.Description)
		if signature.Usable(sig) {
			category, ok, err := c.rules.Lookup(sig)
			if err != nil && !errors.Is(err, common.ErrRulesNotLoaded) {
				// Degrade to keyword matching; a broken rule store
				// must not block categorization.
				slog.Debug("rule lookup failed", "error", err)
			}
			if ok {
				return guardWithdrawal(category)
			}
		}
	}

	return guardWithdrawal(matchKeywords(txn.Description))
}

// CategorizeAll tags every transaction in place and returns the slice.
func (c *Categorizer) CategorizeAll(txns []model.Transaction) []model.Transaction {
	for i := range txns {
		txns[i].Category = c.Categorize(txns[i])
	}
	return txns
}

// matchKeywords scans the static category tables in declared order and
// returns the first category with a keyword substring match. Descriptions
// mentioning frys always resolve to groceries, ahead of any other keyword.
// No match falls through to shopping.
func matchKeywords(description string) string {
	desc := strings.ToLower(description)

	if strings.Contains(desc, "frys") {
		return model.CategoryGroceries
	}

	for _, category := range model.Categories() {
		for _, keyword := range category.Keywords {
			if strings.Contains(desc, keyword) {
				return category.ID
			}
		}
	}

	return model.CategoryShopping
}

// guardWithdrawal enforces the invariant that a withdrawal is never
// categorized as income.
func guardWithdrawal(category string) string {
	if category == model.CategoryIncome {
		return model.CategoryUtilities
	}
	return category
}
