package session

import (
	"context"
	"fmt"
	"log"

	"ai-chat-history/internal/llm"
)

const namingPrompt = `Based on the following question, generate a short, descriptive session name (2-4 words max) that captures the main topic or context.

Question: %s

Return ONLY the session name, nothing else. Make it lowercase with underscores instead of spaces.
Examples:
- "What is Python?" -> "python_question"
- "How do I cook pasta?" -> "cooking_pasta"
- "Explain machine learning" -> "machine_learning"
- "Tell me about the weather" -> "weather_inquiry"

Session name:`

// Namer produces display names for sessions from their first question.
type Namer struct {
	client llm.Client
	store  *Store
}

func NewNamer(client llm.Client, store *Store) *Namer {
	return &Namer{client: client, store: store}
}

// Generate asks the model for a short name and slugifies the answer. It
// never fails: a provider error yields session_N, a degenerate slug chat_N,
// both from the store's shared counter.
func (n *Namer) Generate(ctx context.Context, question string) string {
	prompt := fmt.Sprintf(namingPrompt, question)
	resp, err := n.client.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
	if err != nil {
		log.Printf("failed to generate session name: %v", err)
		return fmt.Sprintf("session_%d", n.store.NextCounter())
	}

	name := Slugify(resp.Content)
	if len(name) < 3 {
		return fmt.Sprintf("chat_%d", n.store.NextCounter())
	}
	return name
}
