package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"medassist/api/internal/ai"
	"medassist/api/internal/ai/gemini"
	"medassist/api/internal/ai/openai"
	"medassist/api/internal/util"
)

type diagnoseReq struct {
	SessionID string `json:"session_id"`
	ai.SymptomQuery
}

// Diagnose runs a symptom analysis and returns the normalized diagnosis plus
// the purchasable items extracted from it.
func (h *Handle) Diagnose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req diagnoseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "symptoms is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), aiTimeout)
	defer cancel()

	d, err := h.AI.GenerateSymptomDiagnosis(ctx, req.SessionID, req.SymptomQuery)
	if err != nil {
		writeAIErr(w, err)
		return
	}
	h.saveReport(r.Context(), req.SessionID, "symptom", d)

	writeJSON(w, http.StatusOK, map[string]any{
		"diagnosis": d,
		"items":     ai.ExtractShoppingItems(d, h.Pricer),
	})
}

type treatmentReq struct {
	SessionID string `json:"session_id"`
	Condition string `json:"condition"`
	Severity  string `json:"severity"`
}

func (h *Handle) Treatment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req treatmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Condition) == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "condition is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), aiTimeout)
	defer cancel()

	plan, err := h.AI.GenerateTreatmentPlan(ctx, req.SessionID, req.Condition, req.Severity)
	if err != nil {
		writeAIErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type photoReq struct {
	SessionID string `json:"session_id"`
	ImageB64  string `json:"image_b64"`
	ImageType string `json:"image_type"`
	BodyPart  string `json:"body_part"`
}

func (h *Handle) Photo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req photoReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	img, mimeHint, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
	if err != nil || len(img) == 0 {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad image_b64")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), aiTimeout)
	defer cancel()

	d, err := h.AI.AnalyzePhoto(ctx, req.SessionID, ai.PhotoQuery{
		Image:     img,
		MIME:      util.PickMIME("", mimeHint, img),
		ImageType: req.ImageType,
		BodyPart:  req.BodyPart,
	})
	if err != nil {
		writeAIErr(w, err)
		return
	}
	h.saveReport(r.Context(), req.SessionID, "photo", d)

	writeJSON(w, http.StatusOK, map[string]any{
		"diagnosis": d,
		"items":     ai.ExtractShoppingItems(d, h.Pricer),
	})
}

type articleReq struct {
	SessionID string `json:"session_id"`
	Topic     string `json:"topic"`
}

func (h *Handle) Article(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req articleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "topic is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), aiTimeout)
	defer cancel()

	a, err := h.AI.GenerateHealthArticle(ctx, req.SessionID, req.Topic)
	if err != nil {
		writeAIErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type keyReq struct {
	SessionID string `json:"session_id"`
	Provider  string `json:"provider"` // "openai" | "gemini"
	APIKey    string `json:"api_key"`
	Model     string `json:"model"`
}

// SetKey installs a session-scoped provider key, overriding the env default
// for that session only.
func (h *Handle) SetKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if req.SessionID == "" || strings.TrimSpace(req.APIKey) == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "session_id and api_key are required")
		return
	}

	var eng ai.Engine
	switch strings.ToLower(strings.TrimSpace(req.Provider)) {
	case "", "gpt", "openai":
		model := req.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		eng = openai.New(req.APIKey, model)
	case "gemini":
		model := req.Model
		if model == "" {
			model = "gemini-2.5-flash"
		}
		eng = gemini.New(req.APIKey, model)
	default:
		writeErr(w, http.StatusBadRequest, "bad_request", "unknown provider: "+req.Provider)
		return
	}
	h.AI.Engines().Set(req.SessionID, eng)

	writeJSON(w, http.StatusOK, map[string]any{
		"provider":   eng.Name(),
		"model":      eng.GetModel(),
		"configured": true,
	})
}

func (h *Handle) Status(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session_id")
	eng := h.AI.Engines().Get(session)
	writeJSON(w, http.StatusOK, map[string]any{
		"configured": h.AI.Configured(session),
		"provider":   eng.Name(),
		"model":      eng.GetModel(),
	})
}

func (h *Handle) saveReport(ctx context.Context, sessionID, kind string, d ai.Diagnosis) {
	if h.Reports == nil {
		return
	}
	if _, err := h.Reports.Save(ctx, sessionID, kind, d); err != nil {
		log.Printf("report save failed: %v", err)
	}
}
