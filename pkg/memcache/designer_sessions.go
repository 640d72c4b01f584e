package mem

import (
	"sync"
	"time"
)

// ChatMessage is one turn of a designer conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DesignerSessionStore keeps per-session chat history for the trip
// designer agent. Sessions expire after a TTL; history lives only in
// memory, the itinerary itself is the durable artifact.
type DesignerSessionStore interface {
	Append(sessionID string, msg ChatMessage, ttl time.Duration)
	History(sessionID string) ([]ChatMessage, bool)
	Drop(sessionID string)
}

type sessionEntry struct {
	messages  []ChatMessage
	expiresAt time.Time
}

type DesignerSessions struct {
	mu   sync.RWMutex
	data map[string]sessionEntry
}

func NewDesignerSessions() *DesignerSessions {
	return &DesignerSessions{
		data: make(map[string]sessionEntry),
	}
}

func (s *DesignerSessions) Append(sessionID string, msg ChatMessage, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.data[sessionID]
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		e = sessionEntry{}
	}
	e.messages = append(e.messages, msg)
	e.expiresAt = time.Now().Add(ttl)
	s.data[sessionID] = e
}

func (s *DesignerSessions) History(sessionID string) ([]ChatMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	out := make([]ChatMessage, len(e.messages))
	copy(out, e.messages)
	return out, true
}

func (s *DesignerSessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
}
