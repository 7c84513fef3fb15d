package llm

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage creates a system message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// LLMResponse is one completion.
type LLMResponse struct {
	Content string
	Usage   *TokenUsage
	// Truncated is set when generation stopped at the output token limit.
	// A truncated post usually lacks its closing delimiters.
	Truncated bool
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}

// splitSystem separates the system prompt from the conversation turns.
// Anthropic and Gemini carry the system prompt outside the message list.
func splitSystem(messages []ChatMessage) (system string, turns []ChatMessage) {
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			system = msg.Content
			continue
		}
		turns = append(turns, msg)
	}
	return system, turns
}
