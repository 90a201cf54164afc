package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-chat-history/internal/llm"
	"ai-chat-history/internal/session"
	"ai-chat-history/internal/storage"
)

// Turn is the result of one completed exchange.
type Turn struct {
	Session string
	Reply   llm.Response
}

// State is a snapshot of the conversation state for rendering.
type State struct {
	Current  string
	Sessions []string
	Messages []llm.Message
	Welcome  bool
}

// Service owns the session store and drives the turn-taking flow against
// the model provider.
type Service struct {
	store    *session.Store
	namer    *session.Namer
	client   llm.Client
	recorder storage.Recorder
}

func NewService(client llm.Client, recorder storage.Recorder) *Service {
	store := session.NewStore()
	return &Service{
		store:    store,
		namer:    session.NewNamer(client, store),
		client:   client,
		recorder: recorder,
	}
}

// Send runs one conversation turn for the active session. A first message in
// the default session names the session before anything is recorded. On
// provider failure nothing is appended: the session looks exactly as it did
// before the call.
func (s *Service) Send(ctx context.Context, text string) (Turn, error) {
	id := s.store.Current()
	if s.store.IsNew(id) && id == session.DefaultID {
		name := s.store.UniqueName(s.namer.Generate(ctx, text))
		s.store.SetCurrent(name)
		id = name
		log.Printf("created session %q", id)
	}

	msgs := append(s.store.History(id), llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := s.client.Generate(ctx, msgs)
	if err != nil {
		log.Printf("failed to generate response for session %q: %v", id, err)
		return Turn{Session: id}, fmt.Errorf("failed to generate response: %w", err)
	}

	s.store.AppendTurn(id, text, resp.Content)
	log.Printf("LLM response for %q [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		id, resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)

	if s.recorder != nil {
		ev := storage.Event{
			Timestamp:         time.Now().UTC(),
			Session:           id,
			UserMessage:       text,
			AssistantResponse: resp.Content,
		}
		if err := s.recorder.AppendInteraction(ev); err != nil {
			log.Printf("failed to record interaction: %v", err)
		}
	}

	return Turn{Session: id, Reply: resp}, nil
}

// NewChat points the active session back at the default sentinel so the next
// message starts a freshly named session. Existing sessions are untouched.
func (s *Service) NewChat() {
	s.store.ResetCurrent()
}

// Switch makes an existing session the active one. The default sentinel is
// always a valid target even though it has no entry.
func (s *Service) Switch(name string) error {
	if name != session.DefaultID && !s.store.Has(name) {
		return fmt.Errorf("unknown session: %s", name)
	}
	s.store.SetCurrent(name)
	return nil
}

// Clear deletes the active session's history entirely. No-op when the active
// session has no entry.
func (s *Service) Clear() {
	s.store.Clear()
}

func (s *Service) State() State {
	id := s.store.Current()
	return State{
		Current:  id,
		Sessions: s.store.Names(),
		Messages: s.store.History(id),
		Welcome:  !s.store.Has(id),
	}
}
