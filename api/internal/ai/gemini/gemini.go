package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"medassist/api/internal/ai"
	"medassist/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(key, model string) *Engine {
	return &Engine{APIKey: key, Model: model}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }
func (e *Engine) Configured() bool { return e.APIKey != "" }

func (e *Engine) Complete(ctx context.Context, in ai.CompletionInput) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("gemini: %w", ai.ErrNotConfigured)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(e.Model))
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.2),
		ResponseMIMEType: "application/json",
	}
	if in.System != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(in.System)},
		}
	}

	parts := []genai.Part{genai.Text(in.Prompt)}
	if len(in.Image) > 0 {
		mime := in.MIME
		if mime == "" {
			mime = util.SniffMimeHTTP(in.Image)
		}
		parts = append(parts, &genai.Blob{MIMEType: mime, Data: in.Image})
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(txt), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
