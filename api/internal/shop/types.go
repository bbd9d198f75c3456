package shop

import "fmt"

type Currency string

const (
	Naira  Currency = "naira"
	Dollar Currency = "dollar"
)

func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case Naira, Dollar:
		return Currency(s), nil
	case "":
		return Naira, nil
	}
	return "", fmt.Errorf("unknown currency: %s", s)
}

// Code returns the ISO code used on the payment wire.
func (c Currency) Code() string {
	if c == Dollar {
		return "USD"
	}
	return "NGN"
}

type ItemType string

const (
	Medicine ItemType = "medicine"
	Food     ItemType = "food"
)

// Price carries both display currencies in whole units. Totals are computed
// in integer arithmetic; minor units (kobo/cents) appear only on the payment
// wire.
type Price struct {
	Naira  int64 `json:"naira"`
	Dollar int64 `json:"dollar"`
}

func (p Price) In(c Currency) int64 {
	if c == Dollar {
		return p.Dollar
	}
	return p.Naira
}

type CartItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Price       Price    `json:"price"`
	Quantity    int      `json:"quantity"`
	Description string   `json:"description"`
}

type ShippingInfo struct {
	ReceiverName string `json:"receiverName"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// MissingFields lists the empty required fields, in display order.
func (s ShippingInfo) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, val string
	}{
		{"receiverName", s.ReceiverName},
		{"phoneNumber", s.PhoneNumber},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
	} {
		if trimEmpty(f.val) {
			missing = append(missing, f.name)
		}
	}
	return missing
}
