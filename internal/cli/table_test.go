package cli

import (
	"strings"
	"testing"

	"github.com/harperclay/ledgerdiff/internal/model"
)

func TestRenderComparison(t *testing.T) {
	cmp := &model.Comparison{
		ID:     "cmp-1",
		Label1: "january.pdf",
		Label2: "february.pdf",
		Results: []model.ComparisonResult{
			{Category: "utilities", Statement1: 50, Statement2: 80, Difference: 30, Winner: model.StatementTwo},
		},
	}

	out := RenderComparison(cmp)

	for _, want := range []string{"january.pdf", "february.pdf", "Utilities", "$50.00", "$80.00", "$30.00", "Statement 2", "Total difference"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderRules(t *testing.T) {
	out := RenderRules(nil)
	if !strings.Contains(out, "No learned rules") {
		t.Errorf("empty rules output = %q", out)
	}

	rules := []model.CategoryRule{
		{Signature: "starbucks", Category: "food-dining", Confidence: 1.0, UseCount: 3},
	}
	out = RenderRules(rules)
	for _, want := range []string{"starbucks", "Food & Dining", "1.0", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long category name", 10, "a very ..."},
		{"abc", 3, "abc"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
