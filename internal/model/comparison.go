package model

import "time"

// ComparisonResult holds the per-category outcome of comparing two statements.
// For the income category the amounts are summed deposits; for every other
// category they are summed withdrawals.
type ComparisonResult struct {
	Category   string
	Winner     StatementLabel
	Statement1 float64
	Statement2 float64
	Difference float64
}

// Comparison is a persisted historical record of one side-by-side run.
type Comparison struct {
	CreatedAt time.Time
	ID        string
	Owner     Owner
	Label1    string // user-facing name of the first statement, e.g. file name
	Label2    string
	Results   []ComparisonResult
}

// TotalDifference sums the absolute per-category differences, a rough
// headline number for the history listing.
func (c *Comparison) TotalDifference() float64 {
	var total float64
	for _, r := range c.Results {
		total += r.Difference
	}
	return total
}
