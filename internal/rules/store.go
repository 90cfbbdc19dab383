// Package rules implements the learned-rule store: a per-owner mapping from
// merchant signature to category, persisted through the storage layer and
// cached in memory for lookup during categorization.
package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/harperclay/ledgerdiff/internal/signature"
)

// minOverlapLength is the shortest signature side allowed to participate in
// a partial-overlap match. Below this, substring containment is noise.
const minOverlapLength = 3

// Persister is the narrow slice of the storage layer the rule store needs.
type Persister interface {
	GetRulesByOwner(ctx context.Context, owner model.Owner) ([]model.CategoryRule, error)
	SaveRule(ctx context.Context, rule *model.CategoryRule) error
	DeleteRule(ctx context.Context, owner model.Owner, sig string) error
	DeleteRulesByOwner(ctx context.Context, owner model.Owner) (int, error)
}

// Store holds the learned rules for exactly one owner. It must be loaded
// before lookups; lookups against an unloaded store report not-ready rather
// than a false negative. One Store per owner scope; no process-wide state.
type Store struct {
	persister Persister
	rules     map[string]model.CategoryRule
	owner     model.Owner
	mu        sync.RWMutex
	loaded    bool
}

// NewStore creates a rule store scoped to one owner.
func NewStore(owner model.Owner, persister Persister) (*Store, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if persister == nil {
		return nil, errors.New("persister cannot be nil")
	}
	return &Store{
		owner:     owner,
		persister: persister,
		rules:     make(map[string]model.CategoryRule),
	}, nil
}

// Owner returns the owner this store is scoped to.
func (s *Store) Owner() model.Owner {
	return s.owner
}

// Load fetches the owner's persisted rules into memory. It replaces any
// previously loaded state.
func (s *Store) Load(ctx context.Context) error {
	persisted, err := s.persister.GetRulesByOwner(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("%w: loading rules: %v", common.ErrPersistenceFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = make(map[string]model.CategoryRule, len(persisted))
	for _, rule := range persisted {
		s.rules[rule.Signature] = rule
	}
	s.loaded = true

	slog.Debug("Loaded learned rules",
		"owner_type", s.owner.Type,
		"rules", len(s.rules))

	return nil
}

// Invalidate drops the in-memory state; the store must be loaded again
// before the next lookup.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = make(map[string]model.CategoryRule)
	s.loaded = false
}

// Loaded reports whether Load has completed since creation or the last
// Invalidate.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Lookup resolves a merchant signature to a learned category. Exact matches
// win; otherwise a partial overlap is accepted when one signature contains
// the other and the shorter side is at least minOverlapLength characters.
// Rules below the confidence floor are skipped entirely. Returns
// ErrRulesNotLoaded when called before Load.
func (s *Store) Lookup(sig string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return "", false, common.ErrRulesNotLoaded
	}
	if sig == "" {
		return "", false, nil
	}

	if rule, ok := s.rules[sig]; ok && rule.Confidence >= model.ConfidenceFloor {
		return rule.Category, true, nil
	}

	// Partial overlap: prefer the longest stored signature, then the
	// lexicographically smallest, so lookups are deterministic.
	var best *model.CategoryRule
	for stored := range s.rules {
		rule := s.rules[stored]
		if rule.Confidence < model.ConfidenceFloor {
			continue
		}
		if !overlaps(sig, stored) {
			continue
		}
		if best == nil ||
			len(rule.Signature) > len(best.Signature) ||
			(len(rule.Signature) == len(best.Signature) && rule.Signature < best.Signature) {
			r := rule
			best = &r
		}
	}
	if best != nil {
		return best.Category, true, nil
	}

	return "", false, nil
}

// overlaps reports whether one signature contains the other with the shorter
// side long enough to be meaningful.
func overlaps(a, b string) bool {
	shorter := a
	if len(b) < len(a) {
		shorter = b
	}
	if len(shorter) < minOverlapLength {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// LearnResult reports the outcome of a correction.
type LearnResult struct {
	Signature  string
	Confidence float64
	Accepted   bool
}

// Learn records a user correction: it derives the merchant signature from
// the raw description and upserts a rule mapping it to the given category.
// A first correction yields a rule at full confidence; re-confirming an
// existing rule bumps it by ConfidenceStep, capped at ConfidenceMax. The
// in-memory cache is updated only after the persistence call succeeds.
func (s *Store) Learn(ctx context.Context, description, category string) (LearnResult, error) {
	sig := signature.Extract(description)
	if !signature.Usable(sig) {
		return LearnResult{Signature: sig}, fmt.Errorf("%w: %q", common.ErrSignatureTooShort, sig)
	}
	if !model.ValidCategory(category) {
		return LearnResult{Signature: sig}, fmt.Errorf("unknown category %q", category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return LearnResult{Signature: sig}, common.ErrRulesNotLoaded
	}

	rule := model.CategoryRule{
		Owner:       s.owner,
		Signature:   sig,
		Category:    category,
		Confidence:  model.ConfidenceMax,
		UseCount:    1,
		LastUpdated: time.Now(),
	}
	if prev, ok := s.rules[sig]; ok {
		rule.Confidence = min(model.ConfidenceMax, prev.Confidence+model.ConfidenceStep)
		rule.UseCount = prev.UseCount + 1
	}

	if err := s.persister.SaveRule(ctx, &rule); err != nil {
		// Memory stays untouched; callers must not assume the rule
		// survived a failed persistence call.
		slog.Error("failed to persist learned rule",
			"error", err, "signature", sig, "category", category)
		return LearnResult{Signature: sig}, err
	}

	s.rules[sig] = rule

	return LearnResult{
		Signature:  sig,
		Confidence: rule.Confidence,
		Accepted:   true,
	}, nil
}

// Delete removes one learned rule, mirrored in memory and the external store.
func (s *Store) Delete(ctx context.Context, sig string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.DeleteRule(ctx, s.owner, sig); err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			slog.Error("failed to delete learned rule", "error", err, "signature", sig)
		}
		return err
	}

	delete(s.rules, sig)
	return nil
}

// Clear removes all learned rules for the owner and returns how many were
// removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.persister.DeleteRulesByOwner(ctx, s.owner)
	if err != nil {
		slog.Error("failed to clear learned rules", "error", err)
		return 0, err
	}

	s.rules = make(map[string]model.CategoryRule)
	return n, nil
}

// Rules returns a snapshot of the loaded rules.
func (s *Store) Rules() []model.CategoryRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CategoryRule, 0, len(s.rules))
	for _, rule := range s.rules {
		out = append(out, rule)
	}
	return out
}
