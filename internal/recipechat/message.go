package recipechat

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"    // Persona instruction or caller-supplied system prompt
	RoleUser      Role = "user"      // End-user input
	RoleAssistant Role = "assistant" // Model reply
)

// Message represents a single message in a conversation
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
