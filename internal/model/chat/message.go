package chat

// Roles used in the transcript and in model requests.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
