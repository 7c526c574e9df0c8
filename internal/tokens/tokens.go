// Package tokens counts prompt tokens with tiktoken and bounds conversation
// history to a token budget before it is sent to a provider.
package tokens

import (
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Per-message overhead for chat models: 3 tokens of framing plus 1 for the
// role, per OpenAI's counting guidance.
const (
	tokensPerMessage = 3
	tokensPerRole    = 1
)

// estimatorCharsPerToken backs the fallback estimate when no codec is
// available for the model.
const estimatorCharsPerToken = 4

// Counter counts tokens for a single model. The codec is resolved lazily and
// cached; when tiktoken has no encoding for the model the counter degrades to
// a character-based estimate.
type Counter struct {
	model string

	once  sync.Once
	codec tokenizer.Codec
}

// NewCounter creates a counter for the given model.
func NewCounter(model string) *Counter {
	return &Counter{model: model}
}

func (c *Counter) getCodec() tokenizer.Codec {
	c.once.Do(func() {
		codec, err := tokenizer.ForModel(tokenizer.Model(strings.ToLower(c.model)))
		if err != nil {
			codec, err = tokenizer.Get(tokenizer.Cl100kBase)
			if err != nil {
				return
			}
		}
		c.codec = codec
	})
	return c.codec
}

// Count returns the token count for a plain text string.
func (c *Counter) Count(text string) int {
	codec := c.getCodec()
	if codec == nil {
		return len(text) / estimatorCharsPerToken
	}
	ids, _, err := codec.Encode(text)
	if err != nil {
		return len(text) / estimatorCharsPerToken
	}
	return len(ids)
}

// CountTurn returns the token cost of one chat turn including message framing
// overhead.
func (c *Counter) CountTurn(turn domain.ChatTurn) int {
	return tokensPerMessage + tokensPerRole + c.Count(turn.Content)
}

// CountTurns returns the total token cost of a conversation.
func (c *Counter) CountTurns(turns []domain.ChatTurn) int {
	total := 0
	for _, t := range turns {
		total += c.CountTurn(t)
	}
	return total
}

// TrimToBudget returns the longest suffix of turns that fits within budget
// tokens. The most recent turns are kept because they carry the active
// context; a single oversized turn still survives so the conversation is
// never emptied.
func (c *Counter) TrimToBudget(turns []domain.ChatTurn, budget int) []domain.ChatTurn {
	if len(turns) == 0 {
		return turns
	}

	total := 0
	start := len(turns)
	for i := len(turns) - 1; i >= 0; i-- {
		cost := c.CountTurn(turns[i])
		if total+cost > budget {
			break
		}
		total += cost
		start = i
	}

	if start == len(turns) {
		// Even the last turn alone blows the budget. Keep it anyway.
		start = len(turns) - 1
	}
	return turns[start:]
}
