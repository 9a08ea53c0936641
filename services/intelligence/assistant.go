package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tidyhive/models"
)

const maxContextMessages = 20

// Generator produces a completion for a prompt. Satisfied by GeminiClient.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Quoter prices a cleaning request. Wired to the booking pricing engine so the
// assistant quotes exactly what the booking flow charges.
type Quoter interface {
	Quote(req models.QuoteRequest) (*models.Quote, error)
}

// AssistantService is the customer-facing chat assistant.
type AssistantService interface {
	Chat(ctx context.Context, customerID, message string) (string, error)
	ClearContext(ctx context.Context, customerID string) error
}

// DefaultAssistantService backs the chat endpoint with Gemini plus a rolling
// Redis conversation context.
type DefaultAssistantService struct {
	Generator Generator
	Store     ContextStore
	Quoter    Quoter
	Logger    *zap.Logger
}

func NewDefaultAssistantService(apiKey string, store ContextStore, quoter Quoter, logger *zap.Logger) *DefaultAssistantService {
	return &DefaultAssistantService{
		Generator: NewGeminiClient(apiKey),
		Store:     store,
		Quoter:    quoter,
		Logger:    logger,
	}
}

const systemPrompt = `You are the booking assistant for TidyHive, a home-cleaning service.
Answer questions about services (standard, deep, move_out cleans), pricing, scheduling and
preparation. Be brief and friendly. If the customer wants to book, point them to the booking
page. Never invent prices; when a price context block is provided, quote it exactly.`

// Chat appends the message to the customer's conversation, asks the model, and
// stores the reply back into the context.
func (s *DefaultAssistantService) Chat(ctx context.Context, customerID, message string) (string, error) {
	chatCtx, err := s.Store.Get(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("failed to load chat context: %w", err)
	}

	prompt := s.buildPrompt(chatCtx, message)
	reply, err := s.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	now := time.Now()
	chatCtx.Messages = append(chatCtx.Messages,
		models.ChatMessage{Role: "user", Content: message, At: now},
		models.ChatMessage{Role: "assistant", Content: reply, At: now},
	)
	if len(chatCtx.Messages) > maxContextMessages {
		chatCtx.Messages = chatCtx.Messages[len(chatCtx.Messages)-maxContextMessages:]
	}
	chatCtx.UpdatedAt = now
	if err := s.Store.Set(ctx, customerID, chatCtx); err != nil {
		s.Logger.Warn("failed to persist chat context", zap.String("customer", customerID), zap.Error(err))
	}
	return reply, nil
}

func (s *DefaultAssistantService) ClearContext(ctx context.Context, customerID string) error {
	return s.Store.Clear(ctx, customerID)
}

func (s *DefaultAssistantService) buildPrompt(chatCtx *models.ChatContext, message string) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")

	// When the customer is asking about price, ground the model with a real
	// quote for a typical home so it never hallucinates rates.
	if s.Quoter != nil && mentionsPrice(message) {
		for _, serviceType := range []string{"standard", "deep", "move_out"} {
			q, err := s.Quoter.Quote(models.QuoteRequest{ServiceType: serviceType, Bedrooms: 2, Bathrooms: 1})
			if err != nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("Price context: a 2-bed 1-bath %s clean is $%.2f (%d min).\n", serviceType, q.Total, q.DurationMin))
		}
		sb.WriteString("\n")
	}

	for _, m := range chatCtx.Messages {
		sb.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
	}
	sb.WriteString("user: " + message + "\nassistant:")
	return sb.String()
}

func mentionsPrice(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range []string{"price", "cost", "how much", "quote", "rate", "$"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
