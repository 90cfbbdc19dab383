package categorize

import (
	"testing"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
)

// staticLookup is a RuleLookup backed by a plain map.
type staticLookup map[string]string

func (m staticLookup) Lookup(sig string) (string, bool, error) {
	category, ok := m[sig]
	return category, ok, nil
}

// notReadyLookup always reports the store as unloaded.
type notReadyLookup struct{}

func (notReadyLookup) Lookup(string) (string, bool, error) {
	return "", false, common.ErrRulesNotLoaded
}

func withdrawal(desc string) model.Transaction {
	return model.Transaction{Description: desc, Direction: model.DirectionWithdrawal, Amount: 10}
}

func TestCategorize_DepositsAlwaysIncome(t *testing.T) {
	c := New(nil)

	deposits := []string{
		"PAYROLL DEPOSIT",
		"NETFLIX.COM", // even a subscription-looking deposit
		"FRYS FOOD STORE #12",
		"",
	}
	for _, desc := range deposits {
		txn := model.Transaction{Description: desc, Direction: model.DirectionDeposit, Amount: 100}
		if got := c.Categorize(txn); got != model.CategoryIncome {
			t.Errorf("deposit %q categorized as %q, want income", desc, got)
		}
	}
}

func TestCategorize_FrysOverride(t *testing.T) {
	c := New(nil)

	// frys wins over any other keyword present in the description.
	tests := []string{
		"FRYS FOOD STORE #12",
		"frys marketplace gas", // gas keyword would hit gas-transport
		"POS PURCHASE FRYS SIGNATURE",
	}
	for _, desc := range tests {
		if got := c.Categorize(withdrawal(desc)); got != model.CategoryGroceries {
			t.Errorf("Categorize(%q) = %q, want groceries", desc, got)
		}
	}
}

func TestCategorize_KeywordMatching(t *testing.T) {
	c := New(nil)

	tests := []struct {
		desc string
		want string
	}{
		{"NETFLIX.COM", model.CategorySubscriptions},
		{"STARBUCKS #5678 SEATTLE WA", model.CategoryFoodDining},
		{"SHELL OIL 57444", model.CategoryGasTransport},
		{"CVS/PHARMACY #1234", model.CategoryHealth},
		{"COMCAST CABLE COMM", model.CategoryUtilities},
		{"AMAZON.COM*MK12345", model.CategoryShopping},
		{"WHOLE FOODS MKT", model.CategoryGroceries},
	}
	for _, tt := range tests {
		if got := c.Categorize(withdrawal(tt.desc)); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestCategorize_DefaultsToShopping(t *testing.T) {
	c := New(nil)

	if got := c.Categorize(withdrawal("ZVQX UNKNOWN MERCHANT")); got != model.CategoryShopping {
		t.Errorf("unmatched withdrawal = %q, want shopping", got)
	}
	if got := c.Categorize(withdrawal("")); got != model.CategoryShopping {
		t.Errorf("empty description = %q, want shopping", got)
	}
}

func TestCategorize_LearnedRulesBeatKeywords(t *testing.T) {
	// The user has corrected starbucks into shopping; the learned rule
	// overrides the food-dining keyword.
	c := New(staticLookup{"starbucks": model.CategoryShopping})

	if got := c.Categorize(withdrawal("STARBUCKS #5678 SEATTLE WA")); got != model.CategoryShopping {
		t.Errorf("learned rule ignored: got %q, want shopping", got)
	}
}

func TestCategorize_WithdrawalNeverIncome(t *testing.T) {
	// A learned rule or keyword resolving to income is substituted with
	// utilities for withdrawals.
	c := New(staticLookup{"payroll services": model.CategoryIncome})

	if got := c.Categorize(withdrawal("PAYROLL SERVICES LLC")); got != model.CategoryUtilities {
		t.Errorf("withdrawal resolved to %q, want utilities substitute", got)
	}

	cNoRules := New(nil)
	if got := cNoRules.Categorize(withdrawal("INTEREST PAID ADJUSTMENT")); got != model.CategoryUtilities {
		t.Errorf("income-keyword withdrawal resolved to %q, want utilities", got)
	}
}

func TestCategorize_UnloadedRulesDegradeToKeywords(t *testing.T) {
	c := New(notReadyLookup{})

	if got := c.Categorize(withdrawal("NETFLIX.COM")); got != model.CategorySubscriptions {
		t.Errorf("unloaded rule store must fall back to keywords, got %q", got)
	}
}

func TestCategorizeAll_Scenario(t *testing.T) {
	c := New(nil)

	txns := []model.Transaction{
		{Description: "FRYS FOOD STORE #12", Direction: model.DirectionWithdrawal, Amount: 45.00},
		{Description: "NETFLIX.COM", Direction: model.DirectionWithdrawal, Amount: 15.99},
		{Description: "PAYROLL DEPOSIT", Direction: model.DirectionDeposit, Amount: 2500.00},
	}
	c.CategorizeAll(txns)

	want := []string{model.CategoryGroceries, model.CategorySubscriptions, model.CategoryIncome}
	for i, txn := range txns {
		if txn.Category != want[i] {
			t.Errorf("txn %d categorized as %q, want %q", i, txn.Category, want[i])
		}
	}
}
