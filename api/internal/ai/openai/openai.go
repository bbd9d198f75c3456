package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medassist/api/internal/ai"
	"medassist/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client

	// BaseURL is overridable for tests; default is the public API.
	BaseURL string
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey:  key,
		Model:   model,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		BaseURL: "https://api.openai.com",
	}
}

func (e *Engine) Name() string     { return "openai" }
func (e *Engine) GetModel() string { return e.Model }
func (e *Engine) Configured() bool { return e.APIKey != "" }

func (e *Engine) Complete(ctx context.Context, in ai.CompletionInput) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("openai: %w", ai.ErrNotConfigured)
	}

	var userContent any = in.Prompt
	if len(in.Image) > 0 {
		mime := in.MIME
		if mime == "" {
			mime = util.SniffMimeHTTP(in.Image)
		}
		dataURL := util.MakeDataURL(mime, base64.StdEncoding.EncodeToString(in.Image))
		userContent = []any{
			map[string]any{"type": "text", "text": in.Prompt},
			map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
		}
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": in.System},
			map[string]any{"role": "user", "content": userContent},
		},
		"temperature":     0.2,
		"max_tokens":      1500,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", e.BaseURL+"/v1/chat/completions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return strings.TrimSpace(raw.Choices[0].Message.Content), nil
}
