// Package provider selects a concrete LLM backend for each request.
package provider

import (
	"github.com/flexos-dev/builder-gateway/internal/config"
	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/provider/anthropic"
	"github.com/flexos-dev/builder-gateway/internal/provider/mock"
	"github.com/flexos-dev/builder-gateway/internal/provider/openai"
)

// Select picks the provider for a request. Demo mode always wins; otherwise
// Anthropic is preferred over OpenAI when both keys are configured, and the
// mock backend is the fallback when neither is.
func Select(cfg *config.Config, mode string) domain.Provider {
	if mode == "demo" {
		return mock.New()
	}
	if cfg.Anthropic.APIKey != "" {
		return anthropic.New(cfg.Anthropic.APIKey)
	}
	if cfg.OpenAI.APIKey != "" {
		return openai.New(cfg.OpenAI.APIKey)
	}
	return mock.New()
}

// SelectedName reports which provider Select would choose, for diagnostics.
func SelectedName(cfg *config.Config, mode string) string {
	return Select(cfg, mode).Name()
}
