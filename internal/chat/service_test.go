package chat

import (
	"context"
	"errors"
	"testing"

	"ai-chat-history/internal/llm"
	"ai-chat-history/internal/session"
	"ai-chat-history/internal/storage"
)

type step struct {
	resp llm.Response
	err  error
}

// scriptedClient replays a fixed sequence of provider outcomes and records
// every request it receives.
type scriptedClient struct {
	steps []step
	calls [][]llm.Message
}

func (c *scriptedClient) Generate(_ context.Context, msgs []llm.Message) (llm.Response, error) {
	cp := make([]llm.Message, len(msgs))
	copy(cp, msgs)
	c.calls = append(c.calls, cp)

	if len(c.steps) == 0 {
		return llm.Response{}, errors.New("script exhausted")
	}
	st := c.steps[0]
	c.steps = c.steps[1:]
	return st.resp, st.err
}

type memRecorder struct {
	events []storage.Event
}

func (r *memRecorder) AppendInteraction(ev storage.Event) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *memRecorder) LoadInteractions() ([]storage.Event, error) {
	return r.events, nil
}

func TestSendCreatesNamedSession(t *testing.T) {
	client := &scriptedClient{steps: []step{
		{resp: llm.Response{Content: "Python Question"}},
		{resp: llm.Response{Content: "Python is a language.", Model: "test", TotalTokens: 7}},
	}}
	rec := &memRecorder{}
	svc := NewService(client, rec)

	turn, err := svc.Send(context.Background(), "What is Python?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if turn.Session != "python_question" {
		t.Fatalf("want session python_question, got %q", turn.Session)
	}
	if turn.Reply.Content != "Python is a language." {
		t.Fatalf("unexpected reply: %q", turn.Reply.Content)
	}

	st := svc.State()
	if st.Current != "python_question" || st.Welcome {
		t.Fatalf("unexpected state: %+v", st)
	}
	if len(st.Messages) != 2 {
		t.Fatalf("want exactly 2 messages, got %d", len(st.Messages))
	}
	if st.Messages[0].Role != llm.RoleUser || st.Messages[1].Role != llm.RoleAssistant {
		t.Fatalf("messages out of order: %+v", st.Messages)
	}
	if len(st.Sessions) != 1 || st.Sessions[0] != "python_question" {
		t.Fatalf("unexpected session list: %v", st.Sessions)
	}

	// First provider call is the naming request, second the chat turn with
	// just the new user message.
	if len(client.calls) != 2 {
		t.Fatalf("want 2 provider calls, got %d", len(client.calls))
	}
	if len(client.calls[1]) != 1 || client.calls[1][0].Content != "What is Python?" {
		t.Fatalf("unexpected chat request: %+v", client.calls[1])
	}

	if len(rec.events) != 1 || rec.events[0].Session != "python_question" ||
		rec.events[0].UserMessage != "What is Python?" ||
		rec.events[0].AssistantResponse != "Python is a language." {
		t.Fatalf("unexpected recorded events: %+v", rec.events)
	}
}

func TestSendReplaysFullHistory(t *testing.T) {
	client := &scriptedClient{steps: []step{
		{resp: llm.Response{Content: "Python Question"}},
		{resp: llm.Response{Content: "first answer"}},
		{resp: llm.Response{Content: "second answer"}},
	}}
	svc := NewService(client, nil)

	if _, err := svc.Send(context.Background(), "What is Python?"); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if _, err := svc.Send(context.Background(), "Tell me more"); err != nil {
		t.Fatalf("second send: %v", err)
	}

	// No naming call the second time: the session already has messages.
	if len(client.calls) != 3 {
		t.Fatalf("want 3 provider calls, got %d", len(client.calls))
	}
	second := client.calls[2]
	if len(second) != 3 {
		t.Fatalf("second turn must replay history plus the new message, got %d messages", len(second))
	}
	if second[2].Content != "Tell me more" {
		t.Fatalf("new message must come last, got %+v", second[2])
	}

	if got := len(svc.State().Messages); got != 4 {
		t.Fatalf("want 4 stored messages after two turns, got %d", got)
	}
}

func TestSendFailurePreservesHistory(t *testing.T) {
	client := &scriptedClient{steps: []step{
		{resp: llm.Response{Content: "Python Question"}},
		{resp: llm.Response{Content: "ok"}},
		{err: errors.New("provider down")},
	}}
	rec := &memRecorder{}
	svc := NewService(client, rec)

	if _, err := svc.Send(context.Background(), "What is Python?"); err != nil {
		t.Fatalf("first send: %v", err)
	}

	if _, err := svc.Send(context.Background(), "again"); err == nil {
		t.Fatalf("expected provider error")
	}

	st := svc.State()
	if len(st.Messages) != 2 {
		t.Fatalf("failed turn must not change history, got %d messages", len(st.Messages))
	}
	if len(rec.events) != 1 {
		t.Fatalf("failed turn must not be recorded, got %d events", len(rec.events))
	}
}

func TestSendFailureOnFirstTurn(t *testing.T) {
	client := &scriptedClient{steps: []step{
		{resp: llm.Response{Content: "Some Topic"}},
		{err: errors.New("provider down")},
	}}
	svc := NewService(client, nil)

	if _, err := svc.Send(context.Background(), "hello"); err == nil {
		t.Fatalf("expected provider error")
	}

	// The session was named before the failing call, but holds nothing.
	st := svc.State()
	if st.Current != "some_topic" {
		t.Fatalf("unexpected current session: %q", st.Current)
	}
	if !st.Welcome || len(st.Messages) != 0 {
		t.Fatalf("failed first turn must leave the session empty: %+v", st)
	}
}

func TestSendResolvesNameCollision(t *testing.T) {
	client := &scriptedClient{steps: []step{
		{resp: llm.Response{Content: "Python Question"}},
		{resp: llm.Response{Content: "ok"}},
		{resp: llm.Response{Content: "Python Question"}},
		{resp: llm.Response{Content: "ok"}},
	}}
	svc := NewService(client, nil)
	svc.store.AppendTurn("python_question", "seed", "seed")

	turn, err := svc.Send(context.Background(), "What is Python?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if turn.Session != "python_question_1" {
		t.Fatalf("want python_question_1, got %q", turn.Session)
	}

	svc.NewChat()
	turn, err = svc.Send(context.Background(), "What is Python?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if turn.Session != "python_question_2" {
		t.Fatalf("want python_question_2, got %q", turn.Session)
	}
}

func TestNewChatSwitchClear(t *testing.T) {
	client := &scriptedClient{steps: []step{
		{resp: llm.Response{Content: "Python Question"}},
		{resp: llm.Response{Content: "ok"}},
	}}
	svc := NewService(client, nil)

	if _, err := svc.Send(context.Background(), "What is Python?"); err != nil {
		t.Fatalf("send: %v", err)
	}

	svc.NewChat()
	st := svc.State()
	if st.Current != session.DefaultID || !st.Welcome {
		t.Fatalf("new chat must reset to the default sentinel: %+v", st)
	}
	if len(st.Sessions) != 1 {
		t.Fatalf("new chat must not delete sessions: %v", st.Sessions)
	}
	svc.NewChat() // idempotent
	if svc.State().Current != session.DefaultID {
		t.Fatalf("new chat is not idempotent")
	}

	if err := svc.Switch("python_question"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	st = svc.State()
	if st.Welcome || len(st.Messages) != 2 {
		t.Fatalf("switch must restore the transcript: %+v", st)
	}

	if err := svc.Switch("no_such_session"); err == nil {
		t.Fatalf("switch to unknown session must fail")
	}
	if err := svc.Switch(session.DefaultID); err != nil {
		t.Fatalf("switch to default must always work: %v", err)
	}
	if st := svc.State(); !st.Welcome {
		t.Fatalf("default without messages must show the welcome state")
	}

	// Clear on the entry-less default is a no-op.
	svc.Clear()
	if len(svc.State().Sessions) != 1 {
		t.Fatalf("clear on default must not delete other sessions")
	}

	if err := svc.Switch("python_question"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	svc.Clear()
	st = svc.State()
	if len(st.Sessions) != 0 || st.Current != session.DefaultID || !st.Welcome {
		t.Fatalf("clear must remove the session entirely: %+v", st)
	}
}
