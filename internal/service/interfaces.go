// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"io"
	"time"

	"github.com/harperclay/ledgerdiff/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Learned rule operations, always scoped to one owner
	GetRule(ctx context.Context, owner model.Owner, sig string) (*model.CategoryRule, error)
	GetRulesByOwner(ctx context.Context, owner model.Owner) ([]model.CategoryRule, error)
	SaveRule(ctx context.Context, rule *model.CategoryRule) error
	DeleteRule(ctx context.Context, owner model.Owner, sig string) error
	DeleteRulesByOwner(ctx context.Context, owner model.Owner) (int, error)

	// Usage metering
	RecordUsage(ctx context.Context, entry *model.UsageEntry) error
	SumUsage(ctx context.Context, owner model.Owner, since time.Time) (int, error)
	GetCreditBalance(ctx context.Context, owner model.Owner) (*model.CreditBalance, error)
	SetCreditBalance(ctx context.Context, balance *model.CreditBalance) error

	// Comparison history
	SaveComparison(ctx context.Context, cmp *model.Comparison) error
	GetComparison(ctx context.Context, id string) (*model.Comparison, error)
	ListComparisons(ctx context.Context, owner model.Owner, limit int) ([]model.Comparison, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// StatementSource produces normalized transactions from one statement input
// (a remote parse of an uploaded file, or a local OFX file).
type StatementSource interface {
	Parse(ctx context.Context, name string, r io.Reader) ([]model.Transaction, error)
}

// ReportWriter exports a finished comparison to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, cmp *model.Comparison) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ComparisonStats shows the results of one comparison run.
type ComparisonStats struct {
	Statement1Count  int
	Statement2Count  int
	RuleCategorized  int
	KeywordFallbacks int
	Duration         time.Duration
}
