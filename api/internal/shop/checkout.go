package shop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"medassist/api/internal/pay"
)

type Step string

const (
	StepCart          Step = "cart"
	StepShipping      Step = "shipping"
	StepPayment       Step = "payment"
	StepPaymentFailed Step = "paymentFailed"
	StepSuccess       Step = "success"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrBadTransition   = errors.New("transition not allowed from current step")
	ErrPaymentInFlight = errors.New("payment already in progress")
)

// ValidationError reports the empty ShippingInfo fields that block the
// shipping -> payment transition. Surfaced as field-level messages, not as a
// fault.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing shipping fields: %v", e.Fields)
}

// PaymentError wraps a gateway failure. The session is left on the
// paymentFailed step; the user retries or goes back, the cart is untouched.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return "payment failed: " + e.Err.Error() }
func (e *PaymentError) Unwrap() error { return e.Err }

// Order is the confirmation snapshot retained after a successful payment,
// while the live cart is already cleared.
type Order struct {
	Items    []CartItem   `json:"items"`
	Total    int64        `json:"total"`
	Currency Currency     `json:"currency"`
	Shipping ShippingInfo `json:"shipping"`
	Receipt  pay.Receipt  `json:"receipt"`
}

// Session owns one shopping cart and drives checkout through
// cart -> shipping -> payment -> success, with an explicit paymentFailed
// detour instead of a silent stall. All mutation goes through its methods;
// the mutex exists because HTTP and bot frontends may reach the same session
// from different goroutines, not because the flow itself is concurrent.
type Session struct {
	ID string

	mu         sync.Mutex
	cart       Cart
	step       Step
	currency   Currency
	shipping   *ShippingInfo
	processing bool
	lastOrder  *Order
}

func NewSession(id string) *Session {
	return &Session{ID: id, step: StepCart, currency: Naira}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) Currency() Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

func (s *Session) SetCurrency(c Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
}

func (s *Session) AddItem(item CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(item)
}

func (s *Session) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(id)
}

func (s *Session) UpdateQuantity(id string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(id, n)
}

func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

func (s *Session) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Session) TotalPrice(c Currency) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice(c)
}

func (s *Session) ShippingInfo() *ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shipping == nil {
		return nil
	}
	cp := *s.shipping
	return &cp
}

func (s *Session) LastOrder() *Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOrder
}

// ProceedToShipping moves cart -> shipping. Rejected for an empty cart.
func (s *Session) ProceedToShipping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepCart {
		return ErrBadTransition
	}
	if s.cart.Len() == 0 {
		return ErrEmptyCart
	}
	s.step = StepShipping
	return nil
}

// SubmitShipping commits the shipping info and moves shipping -> payment.
// Any empty field blocks the transition with a ValidationError.
func (s *Session) SubmitShipping(info ShippingInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepShipping {
		return ErrBadTransition
	}
	if missing := info.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	s.shipping = &info
	s.step = StepPayment
	return nil
}

// Back navigates one step backward: shipping -> cart, payment -> shipping,
// paymentFailed -> shipping. No data is discarded.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case StepShipping:
		s.step = StepCart
	case StepPayment, StepPaymentFailed:
		s.step = StepShipping
	default:
		return ErrBadTransition
	}
	return nil
}

// Pay charges the gateway for the current cart total. At most one charge is
// in flight per session: a second call while processing gets
// ErrPaymentInFlight. On success the cart is cleared and the order snapshot
// is retained for the confirmation view; on gateway failure the session
// lands on paymentFailed with the cart intact.
func (s *Session) Pay(ctx context.Context, gw pay.Gateway, payerEmail string) (*Order, error) {
	s.mu.Lock()
	if s.step != StepPayment && s.step != StepPaymentFailed {
		s.mu.Unlock()
		return nil, ErrBadTransition
	}
	if s.processing {
		s.mu.Unlock()
		return nil, ErrPaymentInFlight
	}
	if s.shipping == nil {
		s.mu.Unlock()
		return nil, ErrBadTransition
	}
	s.processing = true
	items := s.cart.Items()
	cur := s.currency
	total := s.cart.TotalPrice(cur)
	shipping := *s.shipping
	s.mu.Unlock()

	charge := pay.Charge{
		Email:     payerEmail,
		Amount:    total * 100, // naira -> kobo, dollars -> cents
		Currency:  cur.Code(),
		Reference: pay.NewReference(),
	}
	receipt, err := gw.ChargeCard(ctx, charge)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
	if err != nil {
		s.step = StepPaymentFailed
		return nil, &PaymentError{Err: err}
	}

	order := &Order{
		Items:    items,
		Total:    total,
		Currency: cur,
		Shipping: shipping,
		Receipt:  receipt,
	}
	s.lastOrder = order
	s.cart.Clear()
	s.step = StepSuccess
	return order, nil
}

// Close resets a finished session back to an empty cart view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepCart
}
