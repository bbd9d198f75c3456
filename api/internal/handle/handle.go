package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medassist/api/internal/ai"
	"medassist/api/internal/pay"
	"medassist/api/internal/shop"
	"medassist/api/internal/store"
)

// Upstream AI calls get a bounded window; past it the call counts as a
// provider failure.
const aiTimeout = 30 * time.Second

type Handle struct {
	AI       *ai.Service
	Sessions *shop.Sessions
	Gateway  pay.Gateway
	Pricer   ai.Pricer

	// Optional; nil disables persistence.
	Reports *store.ReportRepo
	Orders  *store.OrderRepo
}

func New(svc *ai.Service, sessions *shop.Sessions, gw pay.Gateway) *Handle {
	return &Handle{
		AI:       svc,
		Sessions: sessions,
		Gateway:  gw,
		Pricer:   ai.RandomPricer,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"code": code, "error": msg})
}

// writeAIErr maps normalizer failures so clients can show distinct guidance:
// "configure a key" versus "provider is down, try again".
func writeAIErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ai.ErrNotConfigured) {
		writeErr(w, http.StatusServiceUnavailable, "not_configured", err.Error())
		return
	}
	writeErr(w, http.StatusBadGateway, "provider_error", err.Error())
}
