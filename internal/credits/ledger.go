// Package credits meters comparison and export actions against an owner's
// credit allowance.
package credits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/harperclay/ledgerdiff/internal/service"
)

// Credit allowances per tier. One credit covers roughly one processed page.
const (
	FreeCredits    = 10
	StarterCredits = 100
	ProCredits     = 500
)

// CreditsForTier returns the allowance granted by a purchased tier.
func CreditsForTier(tier model.Tier) int {
	switch tier {
	case model.TierStarter:
		return StarterCredits
	case model.TierPro:
		return ProCredits
	default:
		return FreeCredits
	}
}

// Ledger checks quotas and records consumption through the usage log.
// Balances are never decremented in place; remaining credit is always the
// stored allowance minus the sum over usage rows.
type Ledger struct {
	storage service.Storage
}

// NewLedger creates a credit ledger backed by the given storage.
func NewLedger(storage service.Storage) *Ledger {
	return &Ledger{storage: storage}
}

// Balance reports the owner's tier, allowance, consumed credits, and
// remainder. Owners with no stored balance get the free-tier allowance.
type Balance struct {
	Tier      model.Tier
	Allowance int
	Used      int
	Remaining int
}

// Balance computes the owner's current credit position.
func (l *Ledger) Balance(ctx context.Context, owner model.Owner) (*Balance, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	tier := model.TierFree
	allowance := FreeCredits

	stored, err := l.storage.GetCreditBalance(ctx, owner)
	switch {
	case err == nil:
		tier = stored.Tier
		allowance = stored.Credits
	case errors.Is(err, common.ErrNotFound):
		// No purchase on record; free allowance applies.
	default:
		return nil, fmt.Errorf("failed to load credit balance: %w", err)
	}

	used, err := l.storage.SumUsage(ctx, owner, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to sum usage: %w", err)
	}

	remaining := allowance - used
	if remaining < 0 {
		remaining = 0
	}

	return &Balance{
		Tier:      tier,
		Allowance: allowance,
		Used:      used,
		Remaining: remaining,
	}, nil
}

// Check verifies the owner can afford the given cost. Returns
// common.ErrQuotaExceeded when the remaining balance is insufficient.
func (l *Ledger) Check(ctx context.Context, owner model.Owner, cost int) error {
	bal, err := l.Balance(ctx, owner)
	if err != nil {
		return err
	}
	if bal.Remaining < cost {
		return fmt.Errorf("%w: %d credits remaining, %d required",
			common.ErrQuotaExceeded, bal.Remaining, cost)
	}
	return nil
}

// Consume checks the quota and appends a usage row for the action. The
// check and append are not atomic; a single-user CLI tolerates that.
func (l *Ledger) Consume(ctx context.Context, owner model.Owner, action model.UsageAction, cost int) error {
	if err := l.Check(ctx, owner, cost); err != nil {
		return err
	}

	entry := &model.UsageEntry{
		ID:        uuid.NewString(),
		Owner:     owner,
		Action:    action,
		Credits:   cost,
		CreatedAt: time.Now(),
	}
	if err := l.storage.RecordUsage(ctx, entry); err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// Apply sets the owner's balance from a successful payment event. All
// event variants carry the same owner/tier pair; the allowance is a fixed
// function of the tier.
func (l *Ledger) Apply(ctx context.Context, event model.PaymentEvent) error {
	owner := event.EventOwner()
	if err := owner.Validate(); err != nil {
		return err
	}

	balance := &model.CreditBalance{
		Owner:     owner,
		Tier:      event.EventTier(),
		Credits:   CreditsForTier(event.EventTier()),
		UpdatedAt: time.Now(),
	}
	if err := l.storage.SetCreditBalance(ctx, balance); err != nil {
		return fmt.Errorf("failed to set credit balance: %w", err)
	}
	return nil
}
