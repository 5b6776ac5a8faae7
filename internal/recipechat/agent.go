package recipechat

import (
	"errors"
	"strings"
)

// Agent advances a conversation by one turn. It guarantees that exactly one
// system message leads the transcript sent to the completion service: when
// the caller's history does not start with a system message, the configured
// persona instruction is prepended. A caller-supplied leading system message
// is used verbatim and the persona is not forced over it.
//
// The persona instruction and model identifier are fixed at construction;
// an Agent holds no other state and is safe for concurrent use.
type Agent struct {
	svc     CompletionService
	model   string
	persona string
}

// NewAgent creates an Agent backed by the given completion service.
// model is the bare model name (without provider prefix); persona is the
// system instruction injected when the history lacks a leading system
// message.
func NewAgent(svc CompletionService, model, persona string) *Agent {
	return &Agent{
		svc:     svc,
		model:   model,
		persona: persona,
	}
}

// Advance submits the conversation history to the completion service and
// returns the updated transcript: the effective request sequence plus one
// trailing assistant message carrying the whitespace-trimmed reply.
//
// The input slice is never mutated; the returned slice is freshly
// allocated. Failures of the completion call are returned as-is, without
// wrapping, and leave no partial transcript behind.
func (a *Agent) Advance(history []Message) ([]Message, error) {
	injected := len(history) == 0 || history[0].Role != RoleSystem

	effective := make([]Message, 0, len(history)+2)
	if injected {
		effective = append(effective, Message{Role: RoleSystem, Content: a.persona})
	}
	effective = append(effective, history...)

	completion, err := a.svc.CreateCompletion(a.model, effective)
	if err != nil {
		return nil, err
	}
	if completion == nil || len(completion.Choices) == 0 {
		return nil, errors.New("completion response contains no choices")
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	return append(effective, Message{Role: RoleAssistant, Content: reply}), nil
}

// Model returns the configured model identifier.
func (a *Agent) Model() string {
	return a.model
}

// Persona returns the configured persona instruction.
func (a *Agent) Persona() string {
	return a.persona
}
