package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/flexos-dev/builder-gateway/internal/config"
	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/prompt"
	"github.com/flexos-dev/builder-gateway/internal/provider"
	"github.com/flexos-dev/builder-gateway/internal/tokens"
)

// historyTokenBudget bounds the conversation history sent to a provider,
// leaving headroom for the system prompt and the reply inside the model
// context window.
const historyTokenBudget = 3000

// counterModel is the model whose encoding prices the history budget. Close
// enough for both backends; the budget is a guard, not an exact fit.
const counterModel = "gpt-4-turbo-preview"

// Service is the chat core shared by the unary and streaming endpoints. It
// selects a provider per request, builds the system prompt, and bounds the
// history.
type Service struct {
	cfg     *config.Config
	counter *tokens.Counter
	logger  *slog.Logger
}

// NewService creates a chat service.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		counter: tokens.NewCounter(counterModel),
		logger:  logger,
	}
}

// Respond handles a unary chat request and returns the provider completion.
func (s *Service) Respond(ctx context.Context, req *domain.ChatRequest) (*domain.Completion, error) {
	p := provider.Select(s.cfg, req.Mode)
	s.logger.InfoContext(ctx, "chat completion",
		"provider", p.Name(),
		"tab", req.ActiveTab,
		"messages", len(req.Messages))

	return p.Complete(ctx, s.buildRequest(req, prompt.Legacy(req.ActiveTab, req.ProjectContext)))
}

// StreamTo handles a streaming chat request, writing events to w. A provider
// that fails to start produces a single error event; all other outcomes end
// with a done marker.
func (s *Service) StreamTo(ctx context.Context, req *domain.ChatRequest, w EventWriter) error {
	p := provider.Select(s.cfg, req.Mode)
	s.logger.InfoContext(ctx, "chat stream",
		"provider", p.Name(),
		"tab", req.ActiveTab,
		"messages", len(req.Messages))

	chunks, err := p.Stream(ctx, s.buildRequest(req, prompt.Structured(req.ActiveTab, req.ProjectContext)))
	if err != nil {
		s.logger.ErrorContext(ctx, "provider stream start failed", "provider", p.Name(), "error", err)
		return w.Error(ErrorMessage)
	}

	re := &Reemitter{
		WordDelay: time.Duration(s.cfg.Chat.WordDelayMS) * time.Millisecond,
		Logger:    s.logger,
	}
	return re.Run(ctx, chunks, w)
}

func (s *Service) buildRequest(req *domain.ChatRequest, systemPrompt string) *domain.CompletionRequest {
	return &domain.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages:     s.counter.TrimToBudget(req.Messages, historyTokenBudget),
		ActiveTab:    req.ActiveTab,
		Project:      req.ProjectContext,
	}
}
