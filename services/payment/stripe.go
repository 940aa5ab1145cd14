package payment

import (
	"context"
	"fmt"
	"strings"

	"medibook/models"
	"medibook/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway opens PaymentIntents and confirms them by status.
type StripeGateway struct {
	intents *paymentintent.Client
}

func NewStripeGateway(key string) *StripeGateway {
	return &StripeGateway{
		intents: &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: key},
	}
}

func (g *StripeGateway) Name() string {
	return "stripe"
}

func (g *StripeGateway) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.PaymentOrder, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("appointmentId", req.AppointmentID)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe payment intent: %w", err)
	}
	return &models.PaymentOrder{
		ID:           pi.ID,
		Gateway:      g.Name(),
		Amount:       pi.Amount,
		Currency:     strings.ToUpper(string(pi.Currency)),
		Receipt:      req.AppointmentID,
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}, nil
}

// Verify retrieves the intent and requires it to have succeeded. When
// paymentRef is set it must name the intent's latest charge.
func (g *StripeGateway) Verify(ctx context.Context, orderRef, paymentRef, signature string) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.intents.Get(orderRef, params)
	if err != nil {
		return utils.NewUpstreamError("Payment gateway unavailable", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return utils.ErrSignatureMismatch
	}
	if paymentRef != "" && (pi.LatestCharge == nil || pi.LatestCharge.ID != paymentRef) {
		return utils.ErrSignatureMismatch
	}
	return nil
}
