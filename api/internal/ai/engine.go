package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotConfigured marks a provider with no resolvable API key. Callers use
// errors.Is to tell "set up a key" apart from transient provider failures.
var ErrNotConfigured = errors.New("provider not configured")

// CompletionInput is one request to a provider. Image is optional; when set,
// MIME should describe it (sniffed upstream when empty).
type CompletionInput struct {
	System string
	Prompt string
	Image  []byte
	MIME   string
}

// Engine is a single AI provider. Complete issues exactly one call and
// returns the extracted free text; it does not retry and does not parse.
type Engine interface {
	Name() string
	GetModel() string
	Configured() bool
	Complete(ctx context.Context, in CompletionInput) (string, error)
}

// Engines holds the process-default provider instances, built from env keys.
type Engines struct {
	OpenAI Engine
	Gemini Engine
}

func (e *Engines) ByName(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gpt", "openai":
		return e.OpenAI, nil
	case "gemini":
		return e.Gemini, nil
	}
	return nil, fmt.Errorf("unknown provider: %s", name)
}

// Manager resolves the engine for a session. A session-scoped engine (set via
// a user-supplied key or an explicit provider switch) wins over the process
// default: this is the two-tier key lookup, session override then env.
type Manager struct {
	defs        *Engines
	defProvider string
	m           sync.Map // session ID -> Engine
}

func NewManager(defs *Engines, defaultProvider string) *Manager {
	return &Manager{defs: defs, defProvider: defaultProvider}
}

func (m *Manager) Get(session string) Engine {
	if session != "" {
		if v, ok := m.m.Load(session); ok {
			return v.(Engine)
		}
	}
	e, err := m.defs.ByName(m.defProvider)
	if err != nil {
		return m.defs.OpenAI
	}
	return e
}

func (m *Manager) Set(session string, e Engine) {
	m.m.Store(session, e)
}

func (m *Manager) Clear(session string) {
	m.m.Delete(session)
}

// Configured reports whether any provider is usable for the session: a
// session-scoped engine with a key, or either default engine with an env key.
func (m *Manager) Configured(session string) bool {
	if session != "" {
		if v, ok := m.m.Load(session); ok && v.(Engine).Configured() {
			return true
		}
	}
	return m.defs.OpenAI.Configured() || m.defs.Gemini.Configured()
}
