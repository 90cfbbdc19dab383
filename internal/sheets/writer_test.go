package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperclay/ledgerdiff/internal/model"
)

func TestPrepareComparisonData(t *testing.T) {
	w := &Writer{config: DefaultConfig()}

	cmp := &model.Comparison{
		ID:        "cmp-1",
		Owner:     model.UserOwner("user-1"),
		Label1:    "january.pdf",
		Label2:    "february.pdf",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Results: []model.ComparisonResult{
			{Category: "groceries", Statement1: 320.50, Statement2: 280.00, Difference: 40.50, Winner: model.StatementOne},
			{Category: "utilities", Statement1: 50.00, Statement2: 80.00, Difference: 30.00, Winner: model.StatementTwo},
		},
	}

	values := w.prepareComparisonData(cmp)

	// Title block, two metadata rows, table header, then one row per category.
	if len(values) != 8 {
		t.Fatalf("row count = %d, want 8", len(values))
	}

	header := values[5]
	if header[1] != "january.pdf" || header[2] != "february.pdf" {
		t.Errorf("header labels = %v", header)
	}

	groceries := values[6]
	if groceries[0] != "Groceries" {
		t.Errorf("category display name = %v, want Groceries", groceries[0])
	}
	if groceries[4] != string(model.StatementOne) {
		t.Errorf("winner = %v, want %q", groceries[4], model.StatementOne)
	}

	utilities := values[7]
	if utilities[3] != 30.00 {
		t.Errorf("difference = %v, want 30.00", utilities[3])
	}
}

func TestPrepareComparisonData_UnknownCategoryKeepsID(t *testing.T) {
	w := &Writer{config: DefaultConfig()}

	cmp := &model.Comparison{
		ID:      "cmp-1",
		Label1:  "a",
		Label2:  "b",
		Results: []model.ComparisonResult{{Category: "mystery", Winner: model.StatementOne}},
	}

	values := w.prepareComparisonData(cmp)
	last := values[len(values)-1]
	if last[0] != "mystery" {
		t.Errorf("unknown category should render its id, got %v", last[0])
	}
}

func TestMockWriter(t *testing.T) {
	mock := NewMockWriter()
	cmp := &model.Comparison{ID: "cmp-1"}

	if err := mock.Write(context.Background(), cmp); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if mock.WriteCallCount != 1 {
		t.Errorf("WriteCallCount = %d, want 1", mock.WriteCallCount)
	}
	if mock.LastComparison.ID != "cmp-1" {
		t.Errorf("LastComparison.ID = %q", mock.LastComparison.ID)
	}

	wantErr := errors.New("boom")
	mock.SetWriteError(wantErr)
	if err := mock.Write(context.Background(), cmp); !errors.Is(err, wantErr) {
		t.Errorf("expected configured error, got %v", err)
	}

	mock.Reset()
	if mock.WriteCallCount != 0 || mock.LastComparison != nil {
		t.Error("Reset should clear recorded state")
	}
}
