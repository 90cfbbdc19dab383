package model

// Tier is a named subscription level controlling the credit quota
// available to an owner.
type Tier string

const (
	// TierFree is the default tier for new owners.
	TierFree Tier = "free"
	// TierStarter is the entry paid tier.
	TierStarter Tier = "starter"
	// TierPro is the full paid tier.
	TierPro Tier = "pro"
)

// PaymentEvent is the closed set of checkout-provider events the credit
// ledger reacts to. Each variant carries only the fields the core needs:
// who paid and which tier they bought. Webhook transport and signature
// verification live outside this module.
type PaymentEvent interface {
	paymentEvent()
	EventOwner() Owner
	EventTier() Tier
}

// CheckoutCompleted fires when a checkout session finishes successfully.
type CheckoutCompleted struct {
	Owner     Owner
	Tier      Tier
	SessionID string // opaque provider session identifier
}

// PaymentSucceeded fires when a one-off payment settles.
type PaymentSucceeded struct {
	Owner Owner
	Tier  Tier
}

// SubscriptionCreated fires when a recurring subscription starts.
type SubscriptionCreated struct {
	Owner Owner
	Tier  Tier
}

// SubscriptionUpdated fires when a subscription changes tier.
type SubscriptionUpdated struct {
	Owner Owner
	Tier  Tier
}

func (CheckoutCompleted) paymentEvent()   {}
func (PaymentSucceeded) paymentEvent()    {}
func (SubscriptionCreated) paymentEvent() {}
func (SubscriptionUpdated) paymentEvent() {}

// EventOwner returns the owner the checkout was completed for.
func (e CheckoutCompleted) EventOwner() Owner { return e.Owner }

// EventTier returns the purchased tier.
func (e CheckoutCompleted) EventTier() Tier { return e.Tier }

// EventOwner returns the owner the payment settled for.
func (e PaymentSucceeded) EventOwner() Owner { return e.Owner }

// EventTier returns the purchased tier.
func (e PaymentSucceeded) EventTier() Tier { return e.Tier }

// EventOwner returns the subscribing owner.
func (e SubscriptionCreated) EventOwner() Owner { return e.Owner }

// EventTier returns the subscribed tier.
func (e SubscriptionCreated) EventTier() Tier { return e.Tier }

// EventOwner returns the owner whose subscription changed.
func (e SubscriptionUpdated) EventOwner() Owner { return e.Owner }

// EventTier returns the new tier.
func (e SubscriptionUpdated) EventTier() Tier { return e.Tier }
