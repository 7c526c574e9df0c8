package handler

import (
	"net/http"

	"github.com/flexos-dev/builder-gateway/internal/provider"
)

// testAIResponse reports provider availability. Key presence only, never key
// material.
type testAIResponse struct {
	HasAnthropicKey bool   `json:"hasAnthropicKey"`
	HasOpenAIKey    bool   `json:"hasOpenAIKey"`
	PreferredAI     string `json:"preferredAI"`
}

// TestAI reports which provider the gateway would select for a normal
// request.
func (h *Handler) TestAI(w http.ResponseWriter, r *http.Request) {
	preferred := "Mock Mode"
	switch provider.SelectedName(h.cfg, "") {
	case "anthropic":
		preferred = "Anthropic Claude"
	case "openai":
		preferred = "OpenAI"
	}

	h.writeJSON(w, http.StatusOK, testAIResponse{
		HasAnthropicKey: h.cfg.Anthropic.APIKey != "",
		HasOpenAIKey:    h.cfg.OpenAI.APIKey != "",
		PreferredAI:     preferred,
	})
}
