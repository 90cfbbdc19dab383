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

// RecordUsage appends one entry to the usage log.
func (s *SQLiteStorage) RecordUsage(ctx context.Context, entry *model.UsageEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUsageEntry(entry); err != nil {
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_log (id, owner_type, owner_id, action, credits, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Owner.Type, entry.Owner.ID, entry.Action, entry.Credits, entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: failed to record usage: %v", common.ErrPersistenceFailed, err)
	}

	return nil
}

// SumUsage returns the total credits consumed by an owner since the given time.
func (s *SQLiteStorage) SumUsage(ctx context.Context, owner model.Owner, since time.Time) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateOwner(owner); err != nil {
		return 0, err
	}

	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(credits)
		FROM usage_log
		WHERE owner_type = ? AND owner_id = ? AND created_at >= ?
	`, owner.Type, owner.ID, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum usage: %w", err)
	}

	if !total.Valid {
		return 0, nil
	}
	return int(total.Int64), nil
}

// GetCreditBalance retrieves the stored credit allowance for an owner.
// Owners without a stored row have never purchased a tier.
func (s *SQLiteStorage) GetCreditBalance(ctx context.Context, owner model.Owner) (*model.CreditBalance, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	var balance model.CreditBalance
	balance.Owner = owner

	err := s.db.QueryRowContext(ctx, `
		SELECT tier, credits, updated_at
		FROM credit_balances
		WHERE owner_type = ? AND owner_id = ?
	`, owner.Type, owner.ID).Scan(
		&balance.Tier,
		&balance.Credits,
		&balance.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credit balance: %w", err)
	}

	return &balance, nil
}

// SetCreditBalance upserts the credit allowance for an owner, typically after
// a successful checkout event.
func (s *SQLiteStorage) SetCreditBalance(ctx context.Context, balance *model.CreditBalance) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBalance(balance); err != nil {
		return err
	}

	if balance.UpdatedAt.IsZero() {
		balance.UpdatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_balances (owner_type, owner_id, tier, credits, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owner_type, owner_id) DO UPDATE SET
			tier = excluded.tier,
			credits = excluded.credits,
			updated_at = excluded.updated_at
	`, balance.Owner.Type, balance.Owner.ID, balance.Tier, balance.Credits, balance.UpdatedAt)

	if err != nil {
		return fmt.Errorf("%w: failed to set credit balance: %v", common.ErrPersistenceFailed, err)
	}

	return nil
}
