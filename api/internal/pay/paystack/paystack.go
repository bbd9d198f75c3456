// Package paystack charges via the Paystack transaction API.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medassist/api/internal/pay"
)

type Client struct {
	SecretKey string
	httpc     *http.Client

	// BaseURL is overridable for tests; default is the public API.
	BaseURL string
}

func New(secretKey string) *Client {
	return &Client{
		SecretKey: secretKey,
		httpc:     &http.Client{Timeout: 30 * time.Second},
		BaseURL:   "https://api.paystack.co",
	}
}

// ChargeCard initializes a transaction and immediately verifies it by
// reference. A charge that does not verify as success is a failure.
func (c *Client) ChargeCard(ctx context.Context, ch pay.Charge) (pay.Receipt, error) {
	if c.SecretKey == "" {
		return pay.Receipt{}, fmt.Errorf("paystack: secret key is empty")
	}

	body := map[string]any{
		"email":     ch.Email,
		"amount":    ch.Amount,
		"currency":  ch.Currency,
		"reference": ch.Reference,
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/transaction/initialize", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return pay.Receipt{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return pay.Receipt{}, fmt.Errorf("paystack initialize %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var initOut struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&initOut); err != nil {
		return pay.Receipt{}, err
	}
	if !initOut.Status {
		return pay.Receipt{}, fmt.Errorf("paystack initialize: %s", initOut.Message)
	}

	return c.verify(ctx, ch)
}

func (c *Client) verify(ctx context.Context, ch pay.Charge) (pay.Receipt, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/transaction/verify/"+ch.Reference, nil)
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return pay.Receipt{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return pay.Receipt{}, fmt.Errorf("paystack verify %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out struct {
		Status bool `json:"status"`
		Data   struct {
			Status   string `json:"status"`
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return pay.Receipt{}, err
	}
	if !out.Status || out.Data.Status != "success" {
		return pay.Receipt{}, fmt.Errorf("paystack: charge %s not settled (status=%s)", ch.Reference, out.Data.Status)
	}
	return pay.Receipt{
		Reference: ch.Reference,
		Amount:    out.Data.Amount,
		Currency:  out.Data.Currency,
		Status:    out.Data.Status,
	}, nil
}
