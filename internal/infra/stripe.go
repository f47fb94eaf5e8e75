package infra

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// PagoResult is the subset of the PaymentIntent the payment service cares about.
type PagoResult struct {
	PaymentIntentID string
	Estado          stripe.PaymentIntentStatus
}

// PasarelaPago abstracts the payment gateway so services and tests do not
// depend on the Stripe SDK directly.
type PasarelaPago interface {
	// CobrarPedido charges the order total; emailRecibo is where the gateway
	// sends its own receipt.
	CobrarPedido(ctx context.Context, pedidoID string, monto decimal.Decimal, moneda, metodoPagoID, emailRecibo string) (*PagoResult, error)
}

// StripeClient charges orders through Stripe PaymentIntents.
type StripeClient struct {
	sc *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeClient{sc: sc}
}

// CobrarPedido creates and confirms a PaymentIntent for the given amount.
// Stripe amounts are integer minor units, so the decimal total is shifted two
// places; order totals carry two decimals so the shift is exact.
func (c *StripeClient) CobrarPedido(ctx context.Context, pedidoID string, monto decimal.Decimal, moneda, metodoPagoID, emailRecibo string) (*PagoResult, error) {
	centavos := monto.Shift(2)
	if !centavos.IsInteger() {
		return nil, fmt.Errorf("stripe: monto %s no es representable en centavos", monto)
	}

	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(centavos.IntPart()),
		Currency:      stripe.String(moneda),
		PaymentMethod: stripe.String(metodoPagoID),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if emailRecibo != "" {
		params.ReceiptEmail = stripe.String(emailRecibo)
	}
	params.AddMetadata("pedido_id", pedidoID)

	pi, err := c.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: crear payment intent: %w", err)
	}
	return &PagoResult{PaymentIntentID: pi.ID, Estado: pi.Status}, nil
}
