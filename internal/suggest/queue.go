package suggest

import (
	"sync"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Queue holds suggestions awaiting a user decision. Newest first. Safe for
// concurrent use.
type Queue struct {
	mu    sync.RWMutex
	items []domain.Suggestion
}

// NewQueue creates an empty suggestion queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add prepends a suggestion and returns it.
func (q *Queue) Add(s domain.Suggestion) domain.Suggestion {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append([]domain.Suggestion{s}, q.items...)
	return s
}

// Accept marks a pending suggestion accepted. Decisions are final: a
// suggestion that already left the pending state is not changed.
func (q *Queue) Accept(id string) (domain.Suggestion, bool) {
	return q.transition(id, domain.SuggestionAccepted, nil)
}

// Reject marks a pending suggestion rejected.
func (q *Queue) Reject(id string) (domain.Suggestion, bool) {
	return q.transition(id, domain.SuggestionRejected, nil)
}

// Modify applies mutate to a pending suggestion and marks it modified.
func (q *Queue) Modify(id string, mutate func(*domain.Suggestion)) (domain.Suggestion, bool) {
	return q.transition(id, domain.SuggestionModified, mutate)
}

func (q *Queue) transition(id string, to domain.SuggestionStatus, mutate func(*domain.Suggestion)) (domain.Suggestion, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if q.items[i].ID != id {
			continue
		}
		if q.items[i].Status != domain.SuggestionPending {
			return domain.Suggestion{}, false
		}
		if mutate != nil {
			mutate(&q.items[i])
		}
		q.items[i].Status = to
		return q.items[i], true
	}
	return domain.Suggestion{}, false
}

// Get returns a suggestion by ID.
func (q *Queue) Get(id string) (domain.Suggestion, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, s := range q.items {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Suggestion{}, false
}

// All returns every suggestion, newest first.
func (q *Queue) All() []domain.Suggestion {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]domain.Suggestion, len(q.items))
	copy(out, q.items)
	return out
}

// Pending returns the suggestions still awaiting a decision.
func (q *Queue) Pending() []domain.Suggestion {
	return q.filter(domain.SuggestionPending)
}

// Accepted returns the accepted suggestions.
func (q *Queue) Accepted() []domain.Suggestion {
	return q.filter(domain.SuggestionAccepted)
}

// HasPending reports whether any suggestion awaits a decision.
func (q *Queue) HasPending() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, s := range q.items {
		if s.Status == domain.SuggestionPending {
			return true
		}
	}
	return false
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// ClearRejected drops rejected suggestions, keeping everything else.
func (q *Queue) ClearRejected() {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, s := range q.items {
		if s.Status != domain.SuggestionRejected {
			kept = append(kept, s)
		}
	}
	q.items = kept
}

func (q *Queue) filter(status domain.SuggestionStatus) []domain.Suggestion {
	q.mu.RLock()
	defer q.mu.RUnlock()
	var out []domain.Suggestion
	for _, s := range q.items {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}
