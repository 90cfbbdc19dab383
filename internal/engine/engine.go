// Package engine orchestrates the full comparison flow: ingest two
// statements, categorize every transaction, aggregate per category, meter
// the credit, and persist the result.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/harperclay/ledgerdiff/internal/categorize"
	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/compare"
	"github.com/harperclay/ledgerdiff/internal/credits"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/harperclay/ledgerdiff/internal/rules"
	"github.com/harperclay/ledgerdiff/internal/service"
	"golang.org/x/sync/errgroup"
)

// Credit costs per metered action.
const (
	CompareCost = 1
	ExportCost  = 1
)

// StatementInput is one side of a comparison: a display label and the raw
// statement bytes.
type StatementInput struct {
	Name   string
	Reader io.Reader
}

// Engine runs comparisons for one owner.
type Engine struct {
	storage service.Storage
	source  service.StatementSource
	rules   *rules.Store
	ledger  *credits.Ledger
	owner   model.Owner
}

// New creates a comparison engine. The rule store must belong to the same
// owner.
func New(storage service.Storage, source service.StatementSource, ruleStore *rules.Store, ledger *credits.Ledger, owner model.Owner) (*Engine, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if ruleStore != nil && ruleStore.Owner() != owner {
		return nil, fmt.Errorf("rule store owner mismatch")
	}
	return &Engine{
		storage: storage,
		source:  source,
		rules:   ruleStore,
		ledger:  ledger,
		owner:   owner,
	}, nil
}

// Compare ingests both statements, categorizes them, and persists the
// side-by-side result. The quota is checked before any parsing work and
// consumed only when the comparison succeeds.
func (e *Engine) Compare(ctx context.Context, first, second StatementInput) (*model.Comparison, *service.ComparisonStats, error) {
	start := time.Now()

	if err := e.ledger.Check(ctx, e.owner, CompareCost); err != nil {
		return nil, nil, err
	}

	// A failed rule load degrades to keyword-only categorization rather
	// than blocking the comparison.
	if e.rules != nil {
		if err := e.rules.Load(ctx); err != nil {
			slog.Warn("Failed to load learned rules, falling back to keywords", "error", err)
		}
	}

	txns1, txns2, err := e.ingestBoth(ctx, first, second)
	if err != nil {
		return nil, nil, err
	}

	var lookup categorize.RuleLookup
	if e.rules != nil && e.rules.Loaded() {
		lookup = e.rules
	}
	categorizer := categorize.New(lookup)
	txns1 = categorizer.CategorizeAll(txns1)
	txns2 = categorizer.CategorizeAll(txns2)

	cmp := &model.Comparison{
		ID:        uuid.NewString(),
		Owner:     e.owner,
		Label1:    first.Name,
		Label2:    second.Name,
		CreatedAt: time.Now(),
		Results:   compare.AggregateAll(txns1, txns2),
	}

	if err := e.ledger.Consume(ctx, e.owner, model.ActionCompare, CompareCost); err != nil {
		return nil, nil, err
	}

	if err := e.storage.SaveComparison(ctx, cmp); err != nil {
		return nil, nil, fmt.Errorf("failed to save comparison: %w", err)
	}

	stats := &service.ComparisonStats{
		Statement1Count: len(txns1),
		Statement2Count: len(txns2),
		Duration:        time.Since(start),
	}

	slog.Info("Comparison complete",
		"comparison_id", cmp.ID,
		"statement1_transactions", stats.Statement1Count,
		"statement2_transactions", stats.Statement2Count,
		"duration", stats.Duration)

	return cmp, stats, nil
}

// ingestBoth parses the two statements concurrently and tags each
// transaction with its statement label.
func (e *Engine) ingestBoth(ctx context.Context, first, second StatementInput) ([]model.Transaction, []model.Transaction, error) {
	var txns1, txns2 []model.Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txns, err := e.source.Parse(gctx, first.Name, first.Reader)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", first.Name, err)
		}
		txns1 = tagStatement(txns, model.StatementOne)
		return nil
	})
	g.Go(func() error {
		txns, err := e.source.Parse(gctx, second.Name, second.Reader)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", second.Name, err)
		}
		txns2 = tagStatement(txns, model.StatementTwo)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return txns1, txns2, nil
}

func tagStatement(txns []model.Transaction, label model.StatementLabel) []model.Transaction {
	for i := range txns {
		txns[i].Statement = label
	}
	return txns
}

// ApplyCorrections feeds review reassignments into the learned rule store.
// Individual failures (a signature too short to learn) are logged and
// skipped; the count of accepted corrections is returned.
func (e *Engine) ApplyCorrections(ctx context.Context, corrections []Correction) (int, error) {
	if e.rules == nil {
		return 0, common.ErrRulesNotLoaded
	}
	if !e.rules.Loaded() {
		if err := e.rules.Load(ctx); err != nil {
			return 0, fmt.Errorf("failed to load rules: %w", err)
		}
	}

	accepted := 0
	for _, c := range corrections {
		result, err := e.rules.Learn(ctx, c.Description, c.Category)
		if err != nil {
			if errors.Is(err, common.ErrSignatureTooShort) {
				slog.Debug("Skipping unlearnable correction", "description", c.Description)
				continue
			}
			return accepted, err
		}
		if result.Accepted {
			accepted++
		}
	}
	return accepted, nil
}

// Correction is one user reassignment to learn from.
type Correction struct {
	Description string
	Category    string
}

// Export writes a stored comparison through the given writer. The quota is
// checked up front and one export credit is consumed on success.
func (e *Engine) Export(ctx context.Context, comparisonID string, writer service.ReportWriter) error {
	cmp, err := e.storage.GetComparison(ctx, comparisonID)
	if err != nil {
		return fmt.Errorf("failed to load comparison: %w", err)
	}
	if cmp.Owner != e.owner {
		return common.ErrNotFound
	}

	if err := e.ledger.Check(ctx, e.owner, ExportCost); err != nil {
		return err
	}

	if err := writer.Write(ctx, cmp); err != nil {
		return fmt.Errorf("failed to export comparison: %w", err)
	}

	if err := e.ledger.Consume(ctx, e.owner, model.ActionExport, ExportCost); err != nil {
		return err
	}
	return nil
}
