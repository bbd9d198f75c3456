package shop

import "sync"

// Sessions is the registry of live shopping sessions, keyed by an opaque
// session ID (HTTP clients pass one; the bot uses the chat ID). Sessions are
// ephemeral and never persisted; a lost ID is a fresh cart.
type Sessions struct {
	m sync.Map // session ID -> *Session
}

func NewSessions() *Sessions {
	return &Sessions{}
}

// Get returns the session for id, creating it on first use.
func (s *Sessions) Get(id string) *Session {
	if v, ok := s.m.Load(id); ok {
		return v.(*Session)
	}
	v, _ := s.m.LoadOrStore(id, NewSession(id))
	return v.(*Session)
}

func (s *Sessions) Drop(id string) {
	s.m.Delete(id)
}
