package handle

import (
	"encoding/json"
	"net/http"

	"medassist/api/internal/shop"
)

type cartView struct {
	SessionID string          `json:"session_id"`
	Step      shop.Step       `json:"step"`
	Currency  shop.Currency   `json:"currency"`
	Items     []shop.CartItem `json:"items"`
	Total     int64           `json:"total"`
}

func (h *Handle) view(s *shop.Session) cartView {
	cur := s.Currency()
	return cartView{
		SessionID: s.ID,
		Step:      s.Step(),
		Currency:  cur,
		Items:     s.Items(),
		Total:     s.TotalPrice(cur),
	}
}

// Cart returns the current cart for a session.
func (h *Handle) Cart(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session_id")
	if session == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "session_id is required")
		return
	}
	s := h.Sessions.Get(session)
	if c := r.URL.Query().Get("currency"); c != "" {
		cur, err := shop.ParseCurrency(c)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		s.SetCurrency(cur)
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

type cartAddReq struct {
	SessionID string        `json:"session_id"`
	Item      shop.CartItem `json:"item"`
	// Items allows adding a whole extraction in one call.
	Items []shop.CartItem `json:"items"`
}

func (h *Handle) CartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req cartAddReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if req.SessionID == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "session_id is required")
		return
	}
	s := h.Sessions.Get(req.SessionID)
	if req.Item.ID != "" {
		s.AddItem(req.Item)
	}
	for _, it := range req.Items {
		if it.ID != "" {
			s.AddItem(it)
		}
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

type cartItemReq struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handle) CartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req cartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if req.SessionID == "" || req.ItemID == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "session_id and item_id are required")
		return
	}
	s := h.Sessions.Get(req.SessionID)
	s.RemoveItem(req.ItemID)
	writeJSON(w, http.StatusOK, h.view(s))
}

func (h *Handle) CartQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req cartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if req.SessionID == "" || req.ItemID == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "session_id and item_id are required")
		return
	}
	s := h.Sessions.Get(req.SessionID)
	s.UpdateQuantity(req.ItemID, req.Quantity)
	writeJSON(w, http.StatusOK, h.view(s))
}

type sessionReq struct {
	SessionID string `json:"session_id"`
}

func (h *Handle) CartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if req.SessionID == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "session_id is required")
		return
	}
	s := h.Sessions.Get(req.SessionID)
	s.ClearCart()
	writeJSON(w, http.StatusOK, h.view(s))
}
