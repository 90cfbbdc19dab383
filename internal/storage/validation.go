// Package storage provides the data persistence layer for ledgerdiff.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperclay/ledgerdiff/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidRule       = errors.New("invalid category rule")
	ErrInvalidUsage      = errors.New("invalid usage entry")
	ErrInvalidBalance    = errors.New("invalid credit balance")
	ErrInvalidComparison = errors.New("invalid comparison")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOwner ensures an owner has a known scope and a non-empty id.
func validateOwner(owner model.Owner) error {
	return owner.Validate()
}

// validateRule validates a learned category rule.
func validateRule(rule *model.CategoryRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	if err := rule.Owner.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(rule.Signature) == "" {
		return fmt.Errorf("%w: missing signature", ErrInvalidRule)
	}
	if !model.ValidCategory(rule.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidRule, rule.Category)
	}
	if rule.Confidence < 0 || rule.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidRule)
	}
	return nil
}

// validateUsageEntry validates a usage log entry.
func validateUsageEntry(entry *model.UsageEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if err := entry.Owner.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidUsage)
	}
	if entry.Credits <= 0 {
		return fmt.Errorf("%w: credits must be positive", ErrInvalidUsage)
	}
	return nil
}

// validateBalance validates a credit balance row.
func validateBalance(balance *model.CreditBalance) error {
	if balance == nil {
		return fmt.Errorf("%w: balance", ErrNilParameter)
	}
	if err := balance.Owner.Validate(); err != nil {
		return err
	}
	if balance.Credits < 0 {
		return fmt.Errorf("%w: credits cannot be negative", ErrInvalidBalance)
	}
	return nil
}

// validateComparison validates a comparison record before persistence.
func validateComparison(cmp *model.Comparison) error {
	if cmp == nil {
		return fmt.Errorf("%w: comparison", ErrNilParameter)
	}
	if cmp.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidComparison)
	}
	if err := cmp.Owner.Validate(); err != nil {
		return err
	}
	for _, r := range cmp.Results {
		if !model.ValidCategory(r.Category) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidComparison, r.Category)
		}
	}
	return nil
}
