package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfukushima/recipechat/internal/recipechat"
)

// Session represents a stored conversation. The message list is the full
// transcript as returned by the agent, so a session that has been advanced
// at least once starts with a system message and never gains a second one.
type Session struct {
	ID          string               `json:"id"`           // UUID v4 (e.g., "550e8400-e29b-41d4-a716-446655440000")
	Name        string               `json:"name"`         // Optional session name (empty by default)
	PersonaName string               `json:"persona_name"` // Persona file name used at creation (empty = built-in)
	Model       string               `json:"model"`        // Model in "provider:model" format
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Messages    []recipechat.Message `json:"messages"`
}

// NewSession creates a new session for the given model
func NewSession(model string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []recipechat.Message{},
	}
}

// SetMessages replaces the session transcript and bumps UpdatedAt
func (s *Session) SetMessages(messages []recipechat.Message) {
	s.Messages = messages
	s.UpdatedAt = time.Now()
}

// GetShortID returns the shortened session ID (first 8 characters)
func (s *Session) GetShortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}

// GetDisplayName returns the display name for the session.
// If a name is set, returns the name. Otherwise, returns the short ID.
func (s *Session) GetDisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.GetShortID()
}

// MessageCount returns the number of messages in the session
func (s *Session) MessageCount() int {
	return len(s.Messages)
}

// EstimateTokens returns the approximate number of context tokens the
// session transcript occupies when sent to a completion endpoint.
func (s *Session) EstimateTokens() int {
	total := 0
	for _, msg := range s.Messages {
		// Per-message framing overhead on chat completion endpoints
		total += 4
		total += countTokens(string(msg.Role))
		total += countTokens(msg.Content)
	}
	return total
}
