package model

import (
	"errors"
	"time"
)

// OwnerType partitions learned rules between authenticated users and
// anonymous sessions. A user-owned rule and a session-owned rule with the
// same signature never collide.
type OwnerType string

const (
	// OwnerUser scopes rules to an authenticated user id.
	OwnerUser OwnerType = "user"
	// OwnerSession scopes rules to an anonymous session id.
	OwnerSession OwnerType = "session"
)

// ErrInvalidOwner indicates an owner with a missing or unknown scope.
var ErrInvalidOwner = errors.New("invalid owner")

// Owner identifies who a learned rule or usage entry belongs to: exactly one
// of an authenticated user id or an anonymous session id.
type Owner struct {
	Type OwnerType
	ID   string
}

// UserOwner builds an owner scoped to an authenticated user id.
func UserOwner(userID string) Owner {
	return Owner{Type: OwnerUser, ID: userID}
}

// SessionOwner builds an owner scoped to an anonymous session id.
func SessionOwner(sessionID string) Owner {
	return Owner{Type: OwnerSession, ID: sessionID}
}

// Validate checks that the owner has a known scope and a non-empty id.
func (o Owner) Validate() error {
	if o.ID == "" {
		return ErrInvalidOwner
	}
	switch o.Type {
	case OwnerUser, OwnerSession:
		return nil
	default:
		return ErrInvalidOwner
	}
}

// Rule confidence constants. A fresh correction yields full confidence;
// re-confirmations bump an existing rule by ConfidenceStep, capped at
// ConfidenceMax. Rules below ConfidenceFloor are ignored during lookup.
const (
	ConfidenceMax   = 1.0
	ConfidenceStep  = 0.2
	ConfidenceFloor = 0.5
)

// CategoryRule is a learned mapping from a merchant signature to a category,
// scoped to one owner. Confidence only ever increases.
type CategoryRule struct {
	LastUpdated time.Time
	Owner       Owner
	Signature   string
	Category    string
	Confidence  float64
	UseCount    int
}
