// Package payment talks to the card payment provider.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ChargeRequest describes one charge against a single-use card token.
type ChargeRequest struct {
	Token       string
	Email       string
	Amount      int64
	Currency    string
	Description string
}

// Charge is the provider's confirmation.
type Charge struct {
	CustomerID string
	ChargeID   string
	Amount     int64
	Currency   string
	Status     string
}

// DeclinedError is a provider refusal that should be shown to the user.
type DeclinedError struct {
	Code    string
	Message string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined (%s): %s", e.Code, e.Message)
}

// Gateway creates a provider customer for the token and charges it.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
}

type Stripe struct {
	api *client.API
}

func NewStripe(secretKey string) *Stripe {
	return &Stripe{api: client.New(secretKey, nil)}
}

func (s *Stripe) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	customerParams := &stripe.CustomerParams{
		Email:  stripe.String(req.Email),
		Source: stripe.String(req.Token),
	}
	customerParams.Context = ctx
	customer, err := s.api.Customers.New(customerParams)
	if err != nil {
		return nil, translate(err)
	}

	chargeParams := &stripe.ChargeParams{
		Customer:    stripe.String(customer.ID),
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	chargeParams.Context = ctx
	ch, err := s.api.Charges.New(chargeParams)
	if err != nil {
		return nil, translate(err)
	}

	return &Charge{
		CustomerID: customer.ID,
		ChargeID:   ch.ID,
		Amount:     ch.Amount,
		Currency:   string(ch.Currency),
		Status:     string(ch.Status),
	}, nil
}

// tokenCodes are the invalid-request codes caused by the card token the
// customer submitted rather than by our own account or request.
var tokenCodes = map[stripe.ErrorCode]bool{
	stripe.ErrorCodeResourceMissing:  true,
	stripe.ErrorCodeTokenAlreadyUsed: true,
	stripe.ErrorCodeTokenInUse:       true,
}

// translate turns card errors and bad tokens into DeclinedError. Anything
// else (network, auth, rate limits) is returned wrapped.
func translate(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode != http.StatusUnauthorized {
		switch {
		case stripeErr.Type == stripe.ErrorTypeCard,
			stripeErr.Type == stripe.ErrorTypeInvalidRequest && tokenCodes[stripeErr.Code]:
			return &DeclinedError{Code: string(stripeErr.Code), Message: stripeErr.Msg}
		}
	}
	return fmt.Errorf("stripe: %w", err)
}
