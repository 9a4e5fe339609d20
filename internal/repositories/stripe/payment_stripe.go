package stripe

import (
	"context"
	"fmt"

	stripesdk "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/scholar-stream/scholarship-service/internal/repositories"
)

// StripeConfig holds credentials for the Stripe API.
type StripeConfig struct {
	SecretKey string
}

// PaymentStripe implements repositories.PaymentProvider against the
// Stripe API. It is an external collaborator like the identity verifier;
// nothing here touches the database.
type PaymentStripe struct {
	api *client.API
}

func NewPaymentStripe(cfg StripeConfig) repositories.PaymentProvider {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &PaymentStripe{api: api}
}

func (p *PaymentStripe) CreateCheckoutSession(ctx context.Context, req repositories.ChargeRequest) (*repositories.CheckoutSession, error) {
	params := &stripesdk.CheckoutSessionParams{
		Mode:          stripesdk.String(string(stripesdk.CheckoutSessionModePayment)),
		SuccessURL:    stripesdk.String(req.SuccessURL),
		CancelURL:     stripesdk.String(req.CancelURL),
		CustomerEmail: stripesdk.String(req.CustomerEmail),
		LineItems: []*stripesdk.CheckoutSessionLineItemParams{
			{
				PriceData: &stripesdk.CheckoutSessionLineItemPriceDataParams{
					Currency: stripesdk.String(req.Currency),
					ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripesdk.String(req.Description),
					},
					UnitAmount: stripesdk.Int64(toMinorUnits(req.Amount)),
				},
				Quantity: stripesdk.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session create failed: %w", err)
	}

	return &repositories.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func (p *PaymentStripe) CreatePaymentIntent(ctx context.Context, req repositories.ChargeRequest) (*repositories.PaymentIntent, error) {
	params := &stripesdk.PaymentIntentParams{
		Amount:       stripesdk.Int64(toMinorUnits(req.Amount)),
		Currency:     stripesdk.String(req.Currency),
		Description:  stripesdk.String(req.Description),
		ReceiptEmail: stripesdk.String(req.CustomerEmail),
		AutomaticPaymentMethods: &stripesdk.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripesdk.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent create failed: %w", err)
	}

	return &repositories.PaymentIntent{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (p *PaymentStripe) RetrieveSession(ctx context.Context, sessionID string) (*repositories.SessionResult, error) {
	params := &stripesdk.CheckoutSessionParams{}
	params.Context = ctx

	session, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session retrieve failed: %w", err)
	}

	result := &repositories.SessionResult{
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   fromMinorUnits(session.AmountTotal),
		Currency:      string(session.Currency),
		CustomerEmail: session.CustomerEmail,
		Metadata:      session.Metadata,
	}
	if session.PaymentIntent != nil {
		result.TransactionID = session.PaymentIntent.ID
	}
	if result.CustomerEmail == "" && session.CustomerDetails != nil {
		result.CustomerEmail = session.CustomerDetails.Email
	}

	return result, nil
}

// Stripe amounts are integer minor units (cents for usd).
func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
