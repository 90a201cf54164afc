package session

import (
	"fmt"
	"sort"
	"sync"

	"ai-chat-history/internal/llm"
)

// DefaultID is the sentinel name of the not-yet-named session. It never has
// a store entry: the first exchange renames it via the Namer.
const DefaultID = "default"

// Store keeps every named conversation and the pointer to the active one.
// Message lists are append-only; a key disappears only through Clear.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]llm.Message
	current  string
	counter  int
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string][]llm.Message),
		current:  DefaultID,
		counter:  1,
	}
}

func (s *Store) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) SetCurrent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
}

// ResetCurrent points the store back at the default sentinel without
// touching any stored session.
func (s *Store) ResetCurrent() {
	s.SetCurrent(DefaultID)
}

func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// IsNew reports whether a session has no recorded exchanges yet.
func (s *Store) IsNew(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[id]) == 0
}

// History returns a copy of the session's messages in exchange order.
func (s *Store) History(id string) []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.sessions[id]
	out := make([]llm.Message, len(msgs))
	copy(out, msgs)
	return out
}

// AppendTurn records one completed exchange: the user message followed by
// the assistant reply. Partial turns are never stored.
func (s *Store) AppendTurn(id, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = append(s.sessions[id],
		llm.Message{Role: llm.RoleUser, Content: userText},
		llm.Message{Role: llm.RoleAssistant, Content: assistantText},
	)
}

// Clear removes the active session's entry entirely and resets the pointer
// to the default sentinel. No-op when the active session has no entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, s.current)
	s.current = DefaultID
}

// Names returns all stored session names sorted for stable display.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.sessions))
	for name := range s.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextCounter returns the current fallback-label counter and increments it.
// The counter is shared by the chat_N and session_N fallback paths.
func (s *Store) NextCounter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.counter
	s.counter++
	return n
}

// UniqueName resolves a name collision by suffixing _1, _2, ... until the
// name is free.
func (s *Store) UniqueName(base string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name := base
	for i := 1; ; i++ {
		if _, exists := s.sessions[name]; !exists {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}
