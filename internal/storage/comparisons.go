package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
)

// SaveComparison persists a comparison record and its per-category results
// atomically.
func (s *SQLiteStorage) SaveComparison(ctx context.Context, cmp *model.Comparison) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateComparison(cmp); err != nil {
		return err
	}

	if cmp.CreatedAt.IsZero() {
		cmp.CreatedAt = time.Now()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO comparisons (id, owner_type, owner_id, label1, label2, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, cmp.ID, cmp.Owner.Type, cmp.Owner.ID, cmp.Label1, cmp.Label2, cmp.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert comparison: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO comparison_results (comparison_id, category, statement1, statement2, difference, winner)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare result insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, r := range cmp.Results {
			if _, err := stmt.ExecContext(ctx, cmp.ID, r.Category, r.Statement1, r.Statement2, r.Difference, r.Winner); err != nil {
				return fmt.Errorf("failed to insert result for %s: %w", r.Category, err)
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("%w: failed to save comparison: %v", common.ErrPersistenceFailed, err)
	}

	return nil
}

// GetComparison retrieves one comparison with its result rows.
func (s *SQLiteStorage) GetComparison(ctx context.Context, id string) (*model.Comparison, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var cmp model.Comparison
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_type, owner_id, label1, label2, created_at
		FROM comparisons
		WHERE id = ?
	`, id).Scan(
		&cmp.ID,
		&cmp.Owner.Type,
		&cmp.Owner.ID,
		&cmp.Label1,
		&cmp.Label2,
		&cmp.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comparison: %w", err)
	}

	results, err := s.getComparisonResults(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	cmp.Results = results

	return &cmp, nil
}

// ListComparisons returns the most recent comparisons for an owner, newest
// first, with their result rows attached.
func (s *SQLiteStorage) ListComparisons(ctx context.Context, owner model.Owner, limit int) ([]model.Comparison, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label1, label2, created_at
		FROM comparisons
		WHERE owner_type = ? AND owner_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, owner.Type, owner.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var comparisons []model.Comparison
	for rows.Next() {
		cmp := model.Comparison{Owner: owner}
		if err := rows.Scan(&cmp.ID, &cmp.Label1, &cmp.Label2, &cmp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		comparisons = append(comparisons, cmp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range comparisons {
		results, err := s.getComparisonResults(ctx, s.db, comparisons[i].ID)
		if err != nil {
			return nil, err
		}
		comparisons[i].Results = results
	}

	return comparisons, nil
}

func (s *SQLiteStorage) getComparisonResults(ctx context.Context, q queryable, comparisonID string) ([]model.ComparisonResult, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT category, statement1, statement2, difference, winner
		FROM comparison_results
		WHERE comparison_id = ?
		ORDER BY category
	`, comparisonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparison results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ComparisonResult
	for rows.Next() {
		var r model.ComparisonResult
		if err := rows.Scan(&r.Category, &r.Statement1, &r.Statement2, &r.Difference, &r.Winner); err != nil {
			return nil, fmt.Errorf("failed to scan comparison result: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
