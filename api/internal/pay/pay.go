// Package pay defines the payment-gateway contract: one awaitable charge
// that eventually resolves or rejects. The checkout state machine treats any
// implementation as unreliable.
package pay

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Charge is one payment request. Amount is in minor units (kobo/cents).
type Charge struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"` // "NGN" | "USD"
	Reference string `json:"reference"`
}

// Receipt is the gateway's confirmation of a settled charge.
type Receipt struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

type Gateway interface {
	ChargeCard(ctx context.Context, c Charge) (Receipt, error)
}

// NewReference mints a unique transaction reference.
func NewReference() string {
	return fmt.Sprintf("ref_%s", uuid.NewString())
}
