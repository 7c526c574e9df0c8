package tokens

import (
	"strings"
	"testing"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

func TestCounter_Count(t *testing.T) {
	c := NewCounter("gpt-4-turbo-preview")

	if got := c.Count("hello world"); got == 0 {
		t.Error("Count() = 0, want a positive count for non-empty text")
	}
	if got := c.Count(""); got != 0 {
		t.Errorf("Count(empty) = %d, want 0", got)
	}
}

func TestCounter_CountTurnIncludesOverhead(t *testing.T) {
	c := NewCounter("gpt-4-turbo-preview")
	turn := domain.ChatTurn{Role: "user", Content: "hello"}

	if got, want := c.CountTurn(turn), c.Count("hello")+tokensPerMessage+tokensPerRole; got != want {
		t.Errorf("CountTurn() = %d, want %d", got, want)
	}
}

func TestCounter_TrimToBudget(t *testing.T) {
	c := NewCounter("gpt-4-turbo-preview")

	turns := []domain.ChatTurn{
		{Role: "user", Content: strings.Repeat("alpha ", 50)},
		{Role: "assistant", Content: "short reply"},
		{Role: "user", Content: "latest question"},
	}

	// A budget that fits the last two turns but not the long first one.
	budget := c.CountTurn(turns[1]) + c.CountTurn(turns[2]) + 1
	got := c.TrimToBudget(turns, budget)

	if len(got) != 2 {
		t.Fatalf("TrimToBudget() kept %d turns, want 2", len(got))
	}
	if got[len(got)-1].Content != "latest question" {
		t.Error("TrimToBudget() must keep the most recent turn last")
	}
}

func TestCounter_TrimToBudget_KeepsOversizedLastTurn(t *testing.T) {
	c := NewCounter("gpt-4-turbo-preview")

	turns := []domain.ChatTurn{
		{Role: "user", Content: strings.Repeat("word ", 200)},
	}

	got := c.TrimToBudget(turns, 1)
	if len(got) != 1 {
		t.Fatalf("TrimToBudget() kept %d turns, want the oversized turn retained", len(got))
	}
}

func TestCounter_TrimToBudget_Empty(t *testing.T) {
	c := NewCounter("gpt-4-turbo-preview")
	if got := c.TrimToBudget(nil, 100); len(got) != 0 {
		t.Errorf("TrimToBudget(nil) = %v, want empty", got)
	}
}
