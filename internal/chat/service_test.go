package chat

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/flexos-dev/builder-gateway/internal/config"
	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/provider/mock"
)

func testService() *Service {
	return NewService(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Respond_MockFallback(t *testing.T) {
	s := testService()

	got, err := s.Respond(context.Background(), &domain.ChatRequest{
		ActiveTab: "vision",
		Messages:  []domain.ChatTurn{{Role: "user", Content: "An app for dog walkers"}},
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if got.Text == "" {
		t.Error("Respond() returned empty text")
	}
	if got.Usage.TotalTokens != 150 {
		t.Errorf("TotalTokens = %d, want the mock provider's 150", got.Usage.TotalTokens)
	}
}

func TestService_StreamTo_GreetingRoundTrip(t *testing.T) {
	s := testService()

	rec := &recorder{}
	err := s.StreamTo(context.Background(), &domain.ChatRequest{ActiveTab: "vision"}, rec)
	if err != nil {
		t.Fatalf("StreamTo() error = %v", err)
	}

	if got := strings.Join(rec.contents, ""); got != mock.Greeting {
		t.Errorf("reassembled message = %q, want the greeting", got)
	}
	if !rec.done {
		t.Error("stream must end with done")
	}
	if len(rec.errs) != 0 {
		t.Errorf("unexpected error events: %q", rec.errs)
	}
}

func TestService_StreamTo_DemoModeCarriesActions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Anthropic.APIKey = "sk-ant-unused"
	s := NewService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := &recorder{}
	err := s.StreamTo(context.Background(), &domain.ChatRequest{
		ActiveTab: "vision",
		Mode:      "demo",
		Messages:  []domain.ChatTurn{{Role: "user", Content: "A marketplace app"}},
	}, rec)
	if err != nil {
		t.Fatalf("StreamTo() error = %v", err)
	}

	if len(rec.actions) != 1 || rec.actions[0].Type != domain.ActionUpdateVision {
		t.Errorf("actions = %+v, want the demo vision update despite the configured key", rec.actions)
	}
}
