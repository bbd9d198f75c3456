package pay

import (
	"context"
	"errors"
	"time"
)

// Simulator is the demo gateway: it waits a fixed delay and settles every
// charge, unless scripted to fail. Tests script it; the demo deployment runs
// it with the 3s delay the real integration would roughly take.
type Simulator struct {
	Delay time.Duration
	// Fail, when set, is returned instead of a receipt.
	Fail error
}

func NewSimulator() *Simulator {
	return &Simulator{Delay: 3 * time.Second}
}

func (s *Simulator) ChargeCard(ctx context.Context, c Charge) (Receipt, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		}
	}
	if s.Fail != nil {
		return Receipt{}, s.Fail
	}
	if c.Amount <= 0 {
		return Receipt{}, errors.New("simulator: non-positive amount")
	}
	return Receipt{
		Reference: c.Reference,
		Amount:    c.Amount,
		Currency:  c.Currency,
		Status:    "success",
	}, nil
}
