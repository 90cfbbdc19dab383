package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
)

func TestSaveRule_Upsert(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	owner := model.UserOwner("u-1")

	rule := &model.CategoryRule{
		Owner:      owner,
		Signature:  "starbucks",
		Category:   model.CategoryFoodDining,
		Confidence: 1.0,
		UseCount:   1,
	}
	if err := store.SaveRule(ctx, rule); err != nil {
		t.Fatalf("Failed to save rule: %v", err)
	}

	// Upsert with a new category keeps a single row per (owner, signature).
	rule.Category = model.CategoryShopping
	rule.UseCount = 2
	if err := store.SaveRule(ctx, rule); err != nil {
		t.Fatalf("Failed to update rule: %v", err)
	}

	got, err := store.GetRule(ctx, owner, "starbucks")
	if err != nil {
		t.Fatalf("Failed to get rule: %v", err)
	}
	if got.Category != model.CategoryShopping {
		t.Errorf("category = %q, want %q", got.Category, model.CategoryShopping)
	}
	if got.UseCount != 2 {
		t.Errorf("use count = %d, want 2", got.UseCount)
	}

	rules, err := store.GetRulesByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("rule count = %d, want 1 (upsert must not duplicate)", len(rules))
	}
}

func TestSaveRule_OwnerPartitioning(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Same id and signature under different owner types must not collide.
	user := model.UserOwner("abc")
	session := model.SessionOwner("abc")

	if err := store.SaveRule(ctx, &model.CategoryRule{
		Owner: user, Signature: "netflix", Category: model.CategorySubscriptions, Confidence: 1.0,
	}); err != nil {
		t.Fatalf("Failed to save user rule: %v", err)
	}
	if err := store.SaveRule(ctx, &model.CategoryRule{
		Owner: session, Signature: "netflix", Category: model.CategoryUtilities, Confidence: 1.0,
	}); err != nil {
		t.Fatalf("Failed to save session rule: %v", err)
	}

	userRule, err := store.GetRule(ctx, user, "netflix")
	if err != nil {
		t.Fatalf("Failed to get user rule: %v", err)
	}
	sessionRule, err := store.GetRule(ctx, session, "netflix")
	if err != nil {
		t.Fatalf("Failed to get session rule: %v", err)
	}

	if userRule.Category != model.CategorySubscriptions {
		t.Errorf("user rule category = %q, want %q", userRule.Category, model.CategorySubscriptions)
	}
	if sessionRule.Category != model.CategoryUtilities {
		t.Errorf("session rule category = %q, want %q", sessionRule.Category, model.CategoryUtilities)
	}
}

func TestSaveRule_RejectsUnknownCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.SaveRule(context.Background(), &model.CategoryRule{
		Owner:      model.UserOwner("u-1"),
		Signature:  "mystery merchant",
		Category:   "not-a-category",
		Confidence: 1.0,
	})
	if err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestDeleteRule(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	owner := model.SessionOwner("s-9")

	if err := store.SaveRule(ctx, &model.CategoryRule{
		Owner: owner, Signature: "frys food", Category: model.CategoryGroceries, Confidence: 1.0,
	}); err != nil {
		t.Fatalf("Failed to save rule: %v", err)
	}

	if err := store.DeleteRule(ctx, owner, "frys food"); err != nil {
		t.Fatalf("Failed to delete rule: %v", err)
	}

	if _, err := store.GetRule(ctx, owner, "frys food"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again reports not found.
	if err := store.DeleteRule(ctx, owner, "frys food"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing rule, got %v", err)
	}
}

func TestDeleteRulesByOwner(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	owner := model.UserOwner("u-2")
	other := model.UserOwner("u-3")

	for _, sig := range []string{"starbucks", "netflix", "shell"} {
		if err := store.SaveRule(ctx, &model.CategoryRule{
			Owner: owner, Signature: sig, Category: model.CategoryShopping, Confidence: 1.0,
		}); err != nil {
			t.Fatalf("Failed to save rule %q: %v", sig, err)
		}
	}
	if err := store.SaveRule(ctx, &model.CategoryRule{
		Owner: other, Signature: "starbucks", Category: model.CategoryFoodDining, Confidence: 1.0,
	}); err != nil {
		t.Fatalf("Failed to save other owner's rule: %v", err)
	}

	n, err := store.DeleteRulesByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to clear rules: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared %d rules, want 3", n)
	}

	// The other owner's rules survive.
	if _, err := store.GetRule(ctx, other, "starbucks"); err != nil {
		t.Errorf("other owner's rule should survive clear: %v", err)
	}
}
