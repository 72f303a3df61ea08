package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/pkg/openai"

	"go.uber.org/zap"
)

const (
	// maxHistory bounds the stored conversation, oldest messages dropped first.
	maxHistory   = 20
	promptHeader = "You are a helpful shopping assistant for our store. Only recommend products from this list:\n"
)

// Completer produces an assistant reply for a conversation.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, messages []openai.Message) (string, error)
}

// ChatCache holds anonymous histories and the rendered catalog prompt.
type ChatCache interface {
	GetChatHistory(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	SetChatHistory(ctx context.Context, sessionID string, history []models.ChatMessage, ttl time.Duration) error
	DeleteChatHistory(ctx context.Context, sessionID string) error
	GetCatalogPrompt(ctx context.Context) (string, error)
	SetCatalogPrompt(ctx context.Context, prompt string, ttl time.Duration) error
}

// ChatCaller identifies whose history a message belongs to: a user when
// UserID is set, otherwise an anonymous session.
type ChatCaller struct {
	UserID    uint
	SessionID string
}

type ChatService interface {
	Reply(ctx context.Context, caller ChatCaller, message string) (string, error)
	// Reset forgets the caller's conversation.
	Reset(ctx context.Context, caller ChatCaller) error
}

type chatService struct {
	completer   Completer
	cache       ChatCache
	chatRepo    repository.ChatRepository
	productRepo repository.ProductRepository
	promptTTL   time.Duration
	historyTTL  time.Duration
}

func NewChatService(
	completer Completer,
	cache ChatCache,
	chatRepo repository.ChatRepository,
	productRepo repository.ProductRepository,
	promptTTL, historyTTL time.Duration,
) ChatService {
	return &chatService{
		completer:   completer,
		cache:       cache,
		chatRepo:    chatRepo,
		productRepo: productRepo,
		promptTTL:   promptTTL,
		historyTTL:  historyTTL,
	}
}

func (s *chatService) Reply(ctx context.Context, caller ChatCaller, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if !s.completer.Configured() {
		return "", ErrChatUnavailable
	}

	prompt, err := s.catalogPrompt(ctx)
	if err != nil {
		return "", err
	}

	history, err := s.loadHistory(ctx, caller)
	if err != nil {
		return "", err
	}
	history = append(history, models.ChatMessage{Role: "user", Content: message})

	messages := make([]openai.Message, 0, len(history)+1)
	messages = append(messages, openai.Message{Role: "system", Content: prompt})
	for _, m := range history {
		messages = append(messages, openai.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := s.completer.Complete(ctx, messages)
	if errors.Is(err, openai.ErrRateLimited) {
		return "", ErrChatQuotaExceeded
	}
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	history = append(history, models.ChatMessage{Role: "assistant", Content: reply})
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if err := s.saveHistory(ctx, caller, history); err != nil {
		logger.FromContext(ctx).Warn("Failed to save chat history", zap.Error(err))
	}
	return reply, nil
}

func (s *chatService) Reset(ctx context.Context, caller ChatCaller) error {
	if caller.UserID == 0 {
		return s.cache.DeleteChatHistory(ctx, caller.SessionID)
	}
	if err := s.chatRepo.DeleteByUserID(ctx, caller.UserID); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

// catalogPrompt renders one "name - price EGP" line per product, cached for
// promptTTL.
func (s *chatService) catalogPrompt(ctx context.Context) (string, error) {
	if prompt, err := s.cache.GetCatalogPrompt(ctx); err == nil {
		return prompt, nil
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load products: %w", err)
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	for _, p := range products {
		fmt.Fprintf(&b, "%s - %s EGP\n", p.Name, p.EffectivePrice().StringFixed(2))
	}
	prompt := b.String()

	if err := s.cache.SetCatalogPrompt(ctx, prompt, s.promptTTL); err != nil {
		logger.FromContext(ctx).Warn("Failed to cache catalog prompt", zap.Error(err))
	}
	return prompt, nil
}

func (s *chatService) loadHistory(ctx context.Context, caller ChatCaller) ([]models.ChatMessage, error) {
	if caller.UserID == 0 {
		return s.cache.GetChatHistory(ctx, caller.SessionID)
	}

	conversation, err := s.chatRepo.GetByUserID(ctx, caller.UserID)
	if err != nil || conversation == nil || conversation.Messages == "" {
		return nil, err
	}

	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(conversation.Messages), &history); err != nil {
		logger.FromContext(ctx).Warn("Discarding unreadable chat history",
			zap.Uint("user_id", caller.UserID),
			zap.Error(err),
		)
		return nil, nil
	}
	return history, nil
}

func (s *chatService) saveHistory(ctx context.Context, caller ChatCaller, history []models.ChatMessage) error {
	if caller.UserID == 0 {
		return s.cache.SetChatHistory(ctx, caller.SessionID, history, s.historyTTL)
	}

	encoded, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.chatRepo.Save(ctx, &models.ChatConversation{UserID: caller.UserID, Messages: string(encoded)})
}
