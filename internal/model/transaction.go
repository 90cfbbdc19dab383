// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
)

// Direction indicates whether a transaction moves money out of or into the account.
type Direction string

const (
	// DirectionWithdrawal represents money leaving the account.
	DirectionWithdrawal Direction = "withdrawal"
	// DirectionDeposit represents money entering the account.
	DirectionDeposit Direction = "deposit"
)

// StatementLabel identifies which of the two compared statements a transaction belongs to.
type StatementLabel string

const (
	// StatementOne is the first uploaded statement.
	StatementOne StatementLabel = "Statement 1"
	// StatementTwo is the second uploaded statement.
	StatementTwo StatementLabel = "Statement 2"
)

// Transaction represents a single ledger line from a parsed statement.
type Transaction struct {
	ID          string
	Date        string // free-text, as parsed from the statement
	Description string // raw merchant text
	Category    string
	Statement   StatementLabel
	Direction   Direction
	Amount      float64 // non-negative magnitude; Direction carries the sign
}

// FromSignedAmount builds a direction and magnitude from a signed statement
// amount (negative = withdrawal).
func FromSignedAmount(amount float64) (Direction, float64) {
	if amount < 0 {
		return DirectionWithdrawal, -amount
	}
	return DirectionDeposit, amount
}

// GenerateHash creates a stable hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date,
		t.Amount,
		t.Description,
		t.Statement)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
