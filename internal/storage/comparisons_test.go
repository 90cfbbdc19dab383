package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
)

func testComparison(id string, owner model.Owner) *model.Comparison {
	return &model.Comparison{
		ID:     id,
		Owner:  owner,
		Label1: "january.pdf",
		Label2: "february.pdf",
		Results: []model.ComparisonResult{
			{Category: model.CategoryGroceries, Statement1: 250.10, Statement2: 198.44, Difference: 51.66, Winner: model.StatementOne},
			{Category: model.CategoryUtilities, Statement1: 50, Statement2: 80, Difference: 30, Winner: model.StatementTwo},
			{Category: model.CategoryHealth, Statement1: 0, Statement2: 0, Difference: 0, Winner: model.StatementOne},
		},
	}
}

func TestSaveAndGetComparison(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	owner := model.UserOwner("u-1")

	cmp := testComparison("cmp-1", owner)
	if err := store.SaveComparison(ctx, cmp); err != nil {
		t.Fatalf("Failed to save comparison: %v", err)
	}

	got, err := store.GetComparison(ctx, "cmp-1")
	if err != nil {
		t.Fatalf("Failed to get comparison: %v", err)
	}
	if got.Owner != owner {
		t.Errorf("owner = %+v, want %+v", got.Owner, owner)
	}
	if got.Label1 != "january.pdf" || got.Label2 != "february.pdf" {
		t.Errorf("labels = %q/%q, want january.pdf/february.pdf", got.Label1, got.Label2)
	}
	if len(got.Results) != 3 {
		t.Fatalf("result count = %d, want 3", len(got.Results))
	}

	// Results come back ordered by category.
	for _, r := range got.Results {
		if r.Category == model.CategoryUtilities {
			if r.Winner != model.StatementTwo {
				t.Errorf("utilities winner = %q, want %q", r.Winner, model.StatementTwo)
			}
			if r.Difference != 30 {
				t.Errorf("utilities difference = %v, want 30", r.Difference)
			}
		}
	}
}

func TestGetComparison_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if _, err := store.GetComparison(context.Background(), "nope"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListComparisons_ScopedToOwner(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	owner := model.SessionOwner("s-1")
	other := model.SessionOwner("s-2")

	if err := store.SaveComparison(ctx, testComparison("cmp-a", owner)); err != nil {
		t.Fatalf("Failed to save comparison: %v", err)
	}
	if err := store.SaveComparison(ctx, testComparison("cmp-b", owner)); err != nil {
		t.Fatalf("Failed to save comparison: %v", err)
	}
	if err := store.SaveComparison(ctx, testComparison("cmp-c", other)); err != nil {
		t.Fatalf("Failed to save comparison: %v", err)
	}

	list, err := store.ListComparisons(ctx, owner, 10)
	if err != nil {
		t.Fatalf("Failed to list comparisons: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("comparison count = %d, want 2", len(list))
	}
	for _, cmp := range list {
		if cmp.Owner != owner {
			t.Errorf("listed comparison owned by %+v, want %+v", cmp.Owner, owner)
		}
		if len(cmp.Results) == 0 {
			t.Errorf("comparison %s has no attached results", cmp.ID)
		}
	}
}

func TestSaveComparison_DuplicateID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cmp := testComparison("cmp-dup", model.UserOwner("u-1"))
	if err := store.SaveComparison(ctx, cmp); err != nil {
		t.Fatalf("Failed to save comparison: %v", err)
	}
	if err := store.SaveComparison(ctx, cmp); !errors.Is(err, common.ErrPersistenceFailed) {
		t.Errorf("expected ErrPersistenceFailed for duplicate id, got %v", err)
	}
}
