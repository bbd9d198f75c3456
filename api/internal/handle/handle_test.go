package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medassist/api/internal/ai"
	"medassist/api/internal/pay"
	"medassist/api/internal/shop"
)

type stubEngine struct {
	reply string
	err   error
}

func (e *stubEngine) Name() string     { return "openai" }
func (e *stubEngine) GetModel() string { return "stub" }
func (e *stubEngine) Configured() bool { return e.err == nil }
func (e *stubEngine) Complete(ctx context.Context, in ai.CompletionInput) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.reply, nil
}

func newTestHandle(eng ai.Engine) *Handle {
	defs := &ai.Engines{OpenAI: eng, Gemini: &stubEngine{err: errors.New("no gemini")}}
	svc := ai.NewService(ai.NewManager(defs, "openai"))
	h := New(svc, shop.NewSessions(), &pay.Simulator{})
	h.Pricer = ai.TablePricer(
		shop.Price{Naira: 2000, Dollar: 20},
		shop.Price{Naira: 800, Dollar: 8},
	)
	return h
}

func post(t *testing.T, fn http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestDiagnose(t *testing.T) {
	h := newTestHandle(&stubEngine{
		reply: `{"condition":"Flu","confidence":80,"description":"viral",
		         "medications":["Paracetamol"],"foods":["Ginger tea"]}`,
	})
	w := post(t, h.Diagnose, map[string]any{
		"session_id": "s1",
		"symptoms":   "fever, cough",
	})
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	diag := out["diagnosis"].(map[string]any)
	assert.Equal(t, "Flu", diag["condition"])

	items := out["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "med-0", first["id"])
	assert.Equal(t, "Paracetamol", first["name"])
}

func TestDiagnoseRequiresSymptoms(t *testing.T) {
	h := newTestHandle(&stubEngine{reply: "{}"})
	w := post(t, h.Diagnose, map[string]any{"session_id": "s1", "symptoms": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiagnoseNotConfigured(t *testing.T) {
	h := newTestHandle(&stubEngine{err: fmt.Errorf("openai: %w", ai.ErrNotConfigured)})
	w := post(t, h.Diagnose, map[string]any{"session_id": "s1", "symptoms": "fever"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_configured", decode(t, w)["code"])
}

func TestDiagnoseProviderError(t *testing.T) {
	h := newTestHandle(&stubEngine{err: errors.New("openai 500: boom")})
	w := post(t, h.Diagnose, map[string]any{"session_id": "s1", "symptoms": "fever"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "provider_error", decode(t, w)["code"])
}

func TestPhoto(t *testing.T) {
	h := newTestHandle(&stubEngine{
		reply: `{"condition":"Rash","severity":"mild","anomalyDetected":true,"description":"x"}`,
	})
	img := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	w := post(t, h.Photo, map[string]any{
		"session_id": "s1",
		"image_b64":  "data:image/jpeg;base64," + img,
		"image_type": "skin",
		"body_part":  "arm",
	})
	require.Equal(t, http.StatusOK, w.Code)
	diag := decode(t, w)["diagnosis"].(map[string]any)
	assert.Equal(t, "mild", diag["severity"])
}

func TestPhotoRejectsBadImage(t *testing.T) {
	h := newTestHandle(&stubEngine{reply: "{}"})
	w := post(t, h.Photo, map[string]any{"session_id": "s1", "image_b64": "!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetKeyAndStatus(t *testing.T) {
	h := newTestHandle(&stubEngine{err: fmt.Errorf("openai: %w", ai.ErrNotConfigured)})

	req := httptest.NewRequest(http.MethodGet, "/?session_id=s1", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)
	assert.Equal(t, false, decode(t, w)["configured"])

	w = post(t, h.SetKey, map[string]any{
		"session_id": "s1",
		"provider":   "gemini",
		"api_key":    "test-key",
	})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, "gemini", out["provider"])
	assert.Equal(t, "gemini-2.5-flash", out["model"])

	req = httptest.NewRequest(http.MethodGet, "/?session_id=s1", nil)
	w2 := httptest.NewRecorder()
	h.Status(w2, req)
	assert.Equal(t, true, decode(t, w2)["configured"])
}

func TestSetKeyUnknownProvider(t *testing.T) {
	h := newTestHandle(&stubEngine{reply: "{}"})
	w := post(t, h.SetKey, map[string]any{
		"session_id": "s1", "provider": "claude", "api_key": "k",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartFlow(t *testing.T) {
	h := newTestHandle(&stubEngine{reply: "{}"})

	w := post(t, h.CartAdd, map[string]any{
		"session_id": "s1",
		"items": []map[string]any{
			{"id": "med-0", "name": "Paracetamol", "type": "medicine",
				"price": map[string]int64{"naira": 2000, "dollar": 20}, "quantity": 1},
			{"id": "food-0", "name": "Ginger tea", "type": "food",
				"price": map[string]int64{"naira": 800, "dollar": 8}, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Len(t, out["items"], 2)
	assert.EqualValues(t, 2800, out["total"])

	w = post(t, h.CartQuantity, map[string]any{
		"session_id": "s1", "item_id": "med-0", "quantity": 2,
	})
	assert.EqualValues(t, 4800, decode(t, w)["total"])

	w = post(t, h.CartRemove, map[string]any{"session_id": "s1", "item_id": "food-0"})
	assert.EqualValues(t, 4000, decode(t, w)["total"])

	// Currency switch via the GET view.
	req := httptest.NewRequest(http.MethodGet, "/?session_id=s1&currency=dollar", nil)
	rec := httptest.NewRecorder()
	h.Cart(rec, req)
	out = decode(t, rec)
	assert.Equal(t, "dollar", out["currency"])
	assert.EqualValues(t, 40, out["total"])

	w = post(t, h.CartClear, map[string]any{"session_id": "s1"})
	assert.EqualValues(t, 0, decode(t, w)["total"])
}

func TestCheckoutFlow(t *testing.T) {
	h := newTestHandle(&stubEngine{reply: "{}"})

	// Empty cart cannot start checkout.
	w := post(t, h.CheckoutStart, map[string]any{"session_id": "s1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "empty_cart", decode(t, w)["code"])

	post(t, h.CartAdd, map[string]any{
		"session_id": "s1",
		"item": map[string]any{"id": "med-0", "name": "Paracetamol", "type": "medicine",
			"price": map[string]int64{"naira": 2000, "dollar": 20}, "quantity": 1},
	})

	w = post(t, h.CheckoutStart, map[string]any{"session_id": "s1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shipping", decode(t, w)["step"])

	// Incomplete shipping info reports field-level errors.
	w = post(t, h.CheckoutShipping, map[string]any{
		"session_id": "s1",
		"shipping":   map[string]string{"receiverName": "Ada Obi"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	out := decode(t, w)
	assert.Equal(t, "validation_failed", out["code"])
	assert.Len(t, out["fields"], 4)

	w = post(t, h.CheckoutShipping, map[string]any{
		"session_id": "s1",
		"shipping": map[string]string{
			"receiverName": "Ada Obi", "phoneNumber": "+2348012345678",
			"address": "12 Broad St", "city": "Lagos", "state": "Lagos",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "payment", decode(t, w)["step"])

	w = post(t, h.CheckoutPay, map[string]any{"session_id": "s1"})
	require.Equal(t, http.StatusOK, w.Code)
	out = decode(t, w)
	assert.Equal(t, "success", out["step"])
	order := out["order"].(map[string]any)
	assert.EqualValues(t, 2000, order["total"])

	// Close returns to an empty cart.
	w = post(t, h.CheckoutClose, map[string]any{"session_id": "s1"})
	out = decode(t, w)
	assert.Equal(t, "cart", out["step"])
	assert.Empty(t, out["items"])
}

func TestCheckoutPayFailure(t *testing.T) {
	h := newTestHandle(&stubEngine{reply: "{}"})
	declined := errors.New("card declined")
	h.Gateway = &pay.Simulator{Fail: declined}

	post(t, h.CartAdd, map[string]any{
		"session_id": "s1",
		"item": map[string]any{"id": "med-0", "name": "Paracetamol", "type": "medicine",
			"price": map[string]int64{"naira": 2000, "dollar": 20}, "quantity": 1},
	})
	post(t, h.CheckoutStart, map[string]any{"session_id": "s1"})
	post(t, h.CheckoutShipping, map[string]any{
		"session_id": "s1",
		"shipping": map[string]string{
			"receiverName": "Ada Obi", "phoneNumber": "+2348012345678",
			"address": "12 Broad St", "city": "Lagos", "state": "Lagos",
		},
	})

	w := post(t, h.CheckoutPay, map[string]any{"session_id": "s1"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "payment_failed", decode(t, w)["code"])

	// The session sits on paymentFailed with the cart intact; a retry
	// succeeds once the gateway recovers.
	s := h.Sessions.Get("s1")
	assert.Equal(t, shop.StepPaymentFailed, s.Step())
	assert.Len(t, s.Items(), 1)

	h.Gateway = &pay.Simulator{}
	w = post(t, h.CheckoutPay, map[string]any{"session_id": "s1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decode(t, w)["step"])
}

func TestMethodGuards(t *testing.T) {
	h := newTestHandle(&stubEngine{reply: "{}"})
	for name, fn := range map[string]http.HandlerFunc{
		"diagnose": h.Diagnose,
		"cart add": h.CartAdd,
		"pay":      h.CheckoutPay,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			fn(w, req)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}
