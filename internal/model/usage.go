package model

import "time"

// UsageAction names a metered action.
type UsageAction string

const (
	// ActionCompare is one side-by-side comparison run.
	ActionCompare UsageAction = "compare"
	// ActionExport is one export of a comparison.
	ActionExport UsageAction = "export"
)

// UsageEntry is one row of the usage log. Consumed credits are computed by
// summing entries, never by mutating a counter in place.
type UsageEntry struct {
	CreatedAt time.Time
	ID        string
	Owner     Owner
	Action    UsageAction
	Credits   int
}

// CreditBalance is the credit allowance granted to an owner, set from the
// tier purchased at checkout. Free owners get the free-tier allowance
// without a stored row.
type CreditBalance struct {
	UpdatedAt time.Time
	Owner     Owner
	Tier      Tier
	Credits   int
}
