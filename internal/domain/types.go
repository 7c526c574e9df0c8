package domain

// ChatTurn is a single message in a conversation. Turns are append-only:
// once sent to a provider they are never mutated.
type ChatTurn struct {
	Role    string `json:"role"` // "user", "assistant", or "system"
	Content string `json:"content"`
}

// ProjectContext is a snapshot of the product-definition state passed with
// every chat request. It is an immutable input to prompt construction; the
// chat core never writes back into it.
type ProjectContext struct {
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	TargetAudience string        `json:"targetAudience"`
	Vision         string        `json:"vision"`
	Features       []FeatureData `json:"features,omitempty"`
	Pages          []PageData    `json:"pages,omitempty"`
	MessageContext []ChatTurn    `json:"messageContext,omitempty"`
}

// ChatRequest is the inbound request body shared by the unary and streaming
// chat endpoints.
type ChatRequest struct {
	Messages       []ChatTurn     `json:"messages"`
	ProjectContext ProjectContext `json:"projectContext"`
	ActiveTab      string         `json:"activeTab"`
	// Mode forces demo mode when set to "demo", regardless of configured keys.
	Mode string `json:"mode,omitempty"`
}

// UserMessageCount returns the number of user turns in the request. The mock
// provider keys its canned replies off this.
func (r *ChatRequest) UserMessageCount() int {
	n := 0
	for _, m := range r.Messages {
		if m.Role == "user" {
			n++
		}
	}
	return n
}

// Usage represents token usage reported by a provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// StructuredResponse is the JSON contract the model is prompted to satisfy:
// a short conversational message plus optional suggestion and action entries.
// The contract is soft. Nothing validates the model actually honors it; a
// response that fails to parse degrades to a raw-text passthrough.
type StructuredResponse struct {
	Message     string            `json:"message"`
	Suggestions []SuggestionEntry `json:"suggestions,omitempty"`
	Actions     []Action          `json:"actions,omitempty"`
}

// Completion is the result of a unary provider call.
type Completion struct {
	Text  string
	Usage Usage
}

// TokenChunk is one fragment of a streaming provider response. Exactly one of
// Text or Err is set; an Err chunk is terminal.
type TokenChunk struct {
	Text string
	Err  error
}
