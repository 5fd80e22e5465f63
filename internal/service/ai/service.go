package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/cvassistenza/backend/internal/config"
	"github.com/cvassistenza/backend/internal/model/chat"
)

// Service runs single-shot completions against the configured chat model.
// One synchronous request per call; no streaming, no fan-out.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the chat model and compiles the prompt chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// Generate sends the system instruction, the full history in order and the
// new query to the model, returning the single completion.
func (s *Service) Generate(ctx context.Context, system string, history []chat.Message, query string) (string, error) {
	input := map[string]any{
		"system":  system,
		"history": buildHistoryMessages(history),
		"query":   query,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run completion chain: %w", err)
	}

	log.Printf("[ai] generated completion, history=%d, length=%d", len(history), len(response.Content))
	return response.Content, nil
}

// buildHistoryMessages converts the stored transcript into model messages.
// The whole transcript is forwarded: the interview relies on everything the
// user has said so far.
func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
