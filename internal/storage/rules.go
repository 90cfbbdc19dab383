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

// GetRule retrieves one learned rule by owner and signature.
func (s *SQLiteStorage) GetRule(ctx context.Context, owner model.Owner, sig string) (*model.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	if err := validateString(sig, "signature"); err != nil {
		return nil, err
	}

	var rule model.CategoryRule
	rule.Owner = owner

	err := s.db.QueryRowContext(ctx, `
		SELECT signature, category, confidence, use_count, last_updated
		FROM category_rules
		WHERE owner_type = ? AND owner_id = ? AND signature = ?
	`, owner.Type, owner.ID, sig).Scan(
		&rule.Signature,
		&rule.Category,
		&rule.Confidence,
		&rule.UseCount,
		&rule.LastUpdated,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return &rule, nil
}

// GetRulesByOwner retrieves all learned rules for one owner, ordered by
// signature for deterministic output.
func (s *SQLiteStorage) GetRulesByOwner(ctx context.Context, owner model.Owner) ([]model.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT signature, category, confidence, use_count, last_updated
		FROM category_rules
		WHERE owner_type = ? AND owner_id = ?
		ORDER BY signature
	`, owner.Type, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.CategoryRule
	for rows.Next() {
		rule := model.CategoryRule{Owner: owner}
		err := rows.Scan(
			&rule.Signature,
			&rule.Category,
			&rule.Confidence,
			&rule.UseCount,
			&rule.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// SaveRule inserts or updates a learned rule. The upsert is keyed by
// (owner_type, owner_id, signature) so user-owned and session-owned rules
// with the same signature never collide.
func (s *SQLiteStorage) SaveRule(ctx context.Context, rule *model.CategoryRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	if rule.LastUpdated.IsZero() {
		rule.LastUpdated = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_rules (owner_type, owner_id, signature, category, confidence, use_count, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_type, owner_id, signature) DO UPDATE SET
			category = excluded.category,
			confidence = excluded.confidence,
			use_count = excluded.use_count,
			last_updated = excluded.last_updated
	`, rule.Owner.Type, rule.Owner.ID, rule.Signature, rule.Category, rule.Confidence, rule.UseCount, rule.LastUpdated)

	if err != nil {
		return fmt.Errorf("%w: failed to save rule: %v", common.ErrPersistenceFailed, err)
	}

	return nil
}

// DeleteRule removes one learned rule for an owner.
func (s *SQLiteStorage) DeleteRule(ctx context.Context, owner model.Owner, sig string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOwner(owner); err != nil {
		return err
	}
	if err := validateString(sig, "signature"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM category_rules
		WHERE owner_type = ? AND owner_id = ? AND signature = ?
	`, owner.Type, owner.ID, sig)
	if err != nil {
		return fmt.Errorf("%w: failed to delete rule: %v", common.ErrPersistenceFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// DeleteRulesByOwner removes all learned rules for an owner and returns the
// number of rules removed.
func (s *SQLiteStorage) DeleteRulesByOwner(ctx context.Context, owner model.Owner) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateOwner(owner); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM category_rules
		WHERE owner_type = ? AND owner_id = ?
	`, owner.Type, owner.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to clear rules: %v", common.ErrPersistenceFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
