package core

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is the chat-completion wire shape used by LLM adapters.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AssistRequest struct {
	Message             string    `json:"message"`
	ConversationHistory []Message `json:"conversationHistory"`
	Language            Language  `json:"language"`
}

type AssistResponse struct {
	ResponseText string `json:"responseText"`
}

// Assistant is the optional external language-model backend.
type Assistant interface {
	Reply(ctx context.Context, req AssistRequest) (AssistResponse, error)
}

// ChatProvider is implemented by chat-completion style LLM APIs.
type ChatProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}
