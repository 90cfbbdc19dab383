package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
)

// fakePersister is an in-memory Persister with switchable failure.
type fakePersister struct {
	saved map[string]model.CategoryRule
	fail  error
}

func newFakePersister() *fakePersister {
	return &fakePersister{saved: make(map[string]model.CategoryRule)}
}

func (f *fakePersister) key(owner model.Owner, sig string) string {
	return string(owner.Type) + "|" + owner.ID + "|" + sig
}

func (f *fakePersister) GetRulesByOwner(_ context.Context, owner model.Owner) ([]model.CategoryRule, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	var out []model.CategoryRule
	for _, r := range f.saved {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePersister) SaveRule(_ context.Context, rule *model.CategoryRule) error {
	if f.fail != nil {
		return f.fail
	}
	f.saved[f.key(rule.Owner, rule.Signature)] = *rule
	return nil
}

func (f *fakePersister) DeleteRule(_ context.Context, owner model.Owner, sig string) error {
	if f.fail != nil {
		return f.fail
	}
	k := f.key(owner, sig)
	if _, ok := f.saved[k]; !ok {
		return common.ErrNotFound
	}
	delete(f.saved, k)
	return nil
}

func (f *fakePersister) DeleteRulesByOwner(_ context.Context, owner model.Owner) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	n := 0
	for k, r := range f.saved {
		if r.Owner == owner {
			delete(f.saved, k)
			n++
		}
	}
	return n, nil
}

func loadedStore(t *testing.T) (*Store, *fakePersister) {
	t.Helper()
	persister := newFakePersister()
	store, err := NewStore(model.SessionOwner("s-1"), persister)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}
	return store, persister
}

func TestLookup_BeforeLoad(t *testing.T) {
	store, err := NewStore(model.UserOwner("u-1"), newFakePersister())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	// Not-ready, never a false negative.
	if _, _, err := store.Lookup("starbucks"); !errors.Is(err, common.ErrRulesNotLoaded) {
		t.Errorf("expected ErrRulesNotLoaded, got %v", err)
	}
}

func TestLearnThenLookup(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	result, err := store.Learn(ctx, "CITY OF PHOENIX WATER 8005551234", model.CategoryUtilities)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	if !result.Accepted {
		t.Fatal("Learn should accept a usable signature")
	}
	if result.Confidence != model.ConfidenceMax {
		t.Errorf("first correction confidence = %v, want %v", result.Confidence, model.ConfidenceMax)
	}

	category, ok, err := store.Lookup(result.Signature)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || category != model.CategoryUtilities {
		t.Errorf("Lookup = (%q, %v), want (%q, true)", category, ok, model.CategoryUtilities)
	}
}

func TestLearn_ConfidenceNeverExceedsMax(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := store.Learn(ctx, "NETFLIX.COM", model.CategorySubscriptions)
		if err != nil {
			t.Fatalf("Learn %d failed: %v", i, err)
		}
		if result.Confidence > model.ConfidenceMax {
			t.Errorf("confidence %v exceeds max after %d corrections", result.Confidence, i+1)
		}
	}
}

func TestLearn_RejectsShortSignature(t *testing.T) {
	store, persister := loadedStore(t)

	result, err := store.Learn(context.Background(), "## 12345678 ##", model.CategoryShopping)
	if !errors.Is(err, common.ErrSignatureTooShort) {
		t.Errorf("expected ErrSignatureTooShort, got %v", err)
	}
	if result.Accepted {
		t.Error("short signature must not be accepted")
	}
	if len(persister.saved) != 0 {
		t.Error("rejected learn must not persist anything")
	}
}

func TestLearn_PersistenceFailureLeavesMemoryUntouched(t *testing.T) {
	store, persister := loadedStore(t)
	ctx := context.Background()

	persister.fail = errors.New("connection reset")
	if _, err := store.Learn(ctx, "STARBUCKS #5678", model.CategoryFoodDining); err == nil {
		t.Fatal("expected error from failed persistence")
	}

	// The rule must not be visible: a failed persistence call does not
	// update the cache.
	persister.fail = nil
	if _, ok, _ := store.Lookup("starbucks"); ok {
		t.Error("rule visible in memory after failed persistence")
	}
}

func TestLookup_PartialOverlap(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	if _, err := store.Learn(ctx, "FRYS FOOD STORE #12", model.CategoryGroceries); err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	// A shorter signature from the same chain overlaps the stored one.
	category, ok, err := store.Lookup("frys food")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || category != model.CategoryGroceries {
		t.Errorf("partial overlap Lookup = (%q, %v), want (%q, true)", category, ok, model.CategoryGroceries)
	}

	// Below the overlap length floor nothing matches.
	if _, ok, _ := store.Lookup("fr"); ok {
		t.Error("two-character signature must not partial-match")
	}
}

func TestLookup_SkipsLowConfidenceRules(t *testing.T) {
	persister := newFakePersister()
	owner := model.SessionOwner("s-low")
	persister.saved[persister.key(owner, "shell oil")] = model.CategoryRule{
		Owner:      owner,
		Signature:  "shell oil",
		Category:   model.CategoryGasTransport,
		Confidence: 0.4,
	}

	store, err := NewStore(owner, persister)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}

	if _, ok, _ := store.Lookup("shell oil"); ok {
		t.Error("rules below the confidence floor must be ignored")
	}
}

func TestDeleteAndClear(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	for _, desc := range []string{"STARBUCKS #1", "NETFLIX.COM", "SHELL OIL 1234"} {
		if _, err := store.Learn(ctx, desc, model.CategoryShopping); err != nil {
			t.Fatalf("Learn %q failed: %v", desc, err)
		}
	}

	if err := store.Delete(ctx, "starbucks"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Lookup("starbucks"); ok {
		t.Error("deleted rule still visible")
	}

	n, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d rules, want 2", n)
	}
	if len(store.Rules()) != 0 {
		t.Error("rules remain in memory after Clear")
	}
}

func TestInvalidate(t *testing.T) {
	store, _ := loadedStore(t)

	store.Invalidate()
	if store.Loaded() {
		t.Error("store reports loaded after Invalidate")
	}
	if _, _, err := store.Lookup("anything"); !errors.Is(err, common.ErrRulesNotLoaded) {
		t.Errorf("expected ErrRulesNotLoaded after Invalidate, got %v", err)
	}
}
