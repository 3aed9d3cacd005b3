package lib

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// CreatePaymentOrder opens a gateway-side order for the given amount in minor
// currency units and returns its external id.
func CreatePaymentOrder(amount int64, currency string, capture bool) (string, error) {
	sc := GetStripeClient()
	captureMethod := "manual"
	if capture {
		captureMethod = "automatic"
	}
	params := stripe.PaymentIntentCreateParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(currency),
		CaptureMethod: stripe.String(captureMethod),
	}
	intent, err := sc.V1PaymentIntents.Create(context.Background(), &params)
	if err != nil {
		return "", err
	}
	return intent.ID, nil
}

// RefundPaymentOrder asks the gateway to return the full captured amount for
// an order. Callers treat failures as advisory; the local refund record is
// authoritative for advance-only bookings.
func RefundPaymentOrder(orderId string) (string, error) {
	sc := GetStripeClient()
	params := stripe.RefundCreateParams{
		PaymentIntent: stripe.String(orderId),
	}
	refund, err := sc.V1Refunds.Create(context.Background(), &params)
	if err != nil {
		return "", err
	}
	return refund.ID, nil
}
