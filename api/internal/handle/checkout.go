package handle

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"medassist/api/internal/shop"
)

func writeCheckoutErr(w http.ResponseWriter, err error) {
	var ve *shop.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":   "validation_failed",
			"error":  err.Error(),
			"fields": ve.Fields,
		})
	case errors.Is(err, shop.ErrEmptyCart):
		writeErr(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, shop.ErrPaymentInFlight):
		writeErr(w, http.StatusConflict, "payment_in_flight", err.Error())
	case errors.Is(err, shop.ErrBadTransition):
		writeErr(w, http.StatusConflict, "bad_transition", err.Error())
	default:
		writeErr(w, http.StatusBadGateway, "payment_failed", err.Error())
	}
}

// CheckoutStart moves the session from cart to shipping.
func (h *Handle) CheckoutStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	s := h.Sessions.Get(req.SessionID)
	if err := s.ProceedToShipping(); err != nil {
		writeCheckoutErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

type shippingReq struct {
	SessionID string            `json:"session_id"`
	Shipping  shop.ShippingInfo `json:"shipping"`
}

func (h *Handle) CheckoutShipping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req shippingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	s := h.Sessions.Get(req.SessionID)
	if err := s.SubmitShipping(req.Shipping); err != nil {
		writeCheckoutErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

func (h *Handle) CheckoutBack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	s := h.Sessions.Get(req.SessionID)
	if err := s.Back(); err != nil {
		writeCheckoutErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

type payReq struct {
	SessionID  string `json:"session_id"`
	PayerEmail string `json:"payer_email"`
}

// CheckoutPay charges the gateway. On success the cart is cleared and the
// order confirmation is returned; on gateway failure the session lands on
// paymentFailed and the client gets an explicit error instead of a stalled
// spinner.
func (h *Handle) CheckoutPay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req payReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	email := req.PayerEmail
	if email == "" {
		email = "user@example.com"
	}
	s := h.Sessions.Get(req.SessionID)

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	order, err := s.Pay(ctx, h.Gateway, email)
	if err != nil {
		writeCheckoutErr(w, err)
		return
	}
	h.saveOrder(r.Context(), req.SessionID, *order)

	writeJSON(w, http.StatusOK, map[string]any{
		"step":  s.Step(),
		"order": order,
	})
}

func (h *Handle) CheckoutClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	s := h.Sessions.Get(req.SessionID)
	s.Close()
	writeJSON(w, http.StatusOK, h.view(s))
}

func (h *Handle) saveOrder(ctx context.Context, sessionID string, o shop.Order) {
	if h.Orders == nil {
		return
	}
	if err := h.Orders.Save(ctx, sessionID, o); err != nil {
		log.Printf("order save failed: %v", err)
	}
}
