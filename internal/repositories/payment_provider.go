package repositories

import "context"

// CheckoutSession is the provider-agnostic view of a hosted checkout page.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// PaymentIntent carries the client secret the frontend needs to collect
// a card payment.
type PaymentIntent struct {
	IntentID     string
	ClientSecret string
}

// SessionResult is what the provider reports for a finished session.
type SessionResult struct {
	TransactionID string // provider payment intent id
	PaymentStatus string
	AmountTotal   float64 // major units
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// ChargeRequest describes what the provider should collect.
type ChargeRequest struct {
	Amount        float64 // major units
	Currency      string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// PaymentProvider is the external payment processor. Failures surface as
// errors to be classified upstream; the core never retries.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req ChargeRequest) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, req ChargeRequest) (*PaymentIntent, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionResult, error)
}
