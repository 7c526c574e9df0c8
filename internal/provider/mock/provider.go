// Package mock is the deterministic demo-mode provider. It is selected when
// no LLM credentials are configured or when a request forces demo mode, and
// produces canned replies keyed by the active tab and the number of user
// turns so far.
package mock

import (
	"context"
	"encoding/json"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Greeting is the fixed opening message returned before the user has said
// anything.
const Greeting = "Hi! I'm here to help transform your app idea into comprehensive documentation. What kind of app would you like to build?"

// streamChunkSize is the fragment size used to mimic token-by-token arrival.
const streamChunkSize = 24

// Provider implements domain.Provider with canned responses.
type Provider struct{}

// New creates a mock provider.
func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "mock" }

// Complete returns a canned plain-text reply for the unary path, cycling
// through per-tab question banks by user-message count.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.Completion, error) {
	replies, ok := unaryReplies[req.ActiveTab]
	if !ok {
		replies = unaryReplies["vision"]
	}

	count := userMessageCount(req.Messages)
	return &domain.Completion{
		Text: replies[count%len(replies)],
		Usage: domain.Usage{
			PromptTokens:     100,
			CompletionTokens: 50,
			TotalTokens:      150,
		},
	}, nil
}

// Stream emits the structured canned reply as raw JSON fragments, the same
// shape a live provider produces, so the re-emitter exercises its real
// parse-and-project path in demo mode.
func (p *Provider) Stream(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.TokenChunk, error) {
	reply := StructuredReply(req)
	payload, err := json.Marshal(reply)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.TokenChunk)
	go func() {
		defer close(out)
		for i := 0; i < len(payload); i += streamChunkSize {
			end := i + streamChunkSize
			if end > len(payload) {
				end = len(payload)
			}
			select {
			case out <- domain.TokenChunk{Text: string(payload[i:end])}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// StructuredReply builds the canned structured response for a request. The
// first two turns are fixed; after that the reply cycles through the active
// tab's bank, and an extra feature suggestion is appended once the
// conversation has depth but the project still has no features.
func StructuredReply(req *domain.CompletionRequest) domain.StructuredResponse {
	count := userMessageCount(req.Messages)

	if count == 0 {
		return domain.StructuredResponse{Message: Greeting}
	}

	if count == 1 {
		return domain.StructuredResponse{
			Message: "That sounds interesting! Tell me more about the main problem your app will solve.",
			Actions: []domain.Action{{
				Type:         domain.ActionUpdateVision,
				UpdateVision: &domain.UpdateVisionData{Vision: "Build an innovative solution that transforms how people work"},
			}},
		}
	}

	bank, ok := structuredReplies[req.ActiveTab]
	if !ok {
		bank = structuredReplies["vision"]
	}
	reply := bank[(count-2)%len(bank)](count)

	if len(req.Project.Features) == 0 && count > 3 {
		reply.Suggestions = append(reply.Suggestions, domain.SuggestionEntry{
			Type: domain.SuggestionFeature,
			Feature: &domain.FeatureData{
				Name:        "Dashboard",
				Description: "Central hub for users to see overview and metrics",
				Priority:    "high",
				Category:    "Core Features",
			},
		})
	}

	return reply
}

func userMessageCount(messages []domain.ChatTurn) int {
	n := 0
	for _, m := range messages {
		if m.Role == "user" {
			n++
		}
	}
	return n
}

// structuredReplies are the per-tab banks for the streaming path. Entries are
// builders because some replies depend on conversation depth.
var structuredReplies = map[string][]func(count int) domain.StructuredResponse{
	"vision": {
		func(int) domain.StructuredResponse {
			return domain.StructuredResponse{
				Message: "What specific problem are you trying to solve for your users?",
			}
		},
		func(count int) domain.StructuredResponse {
			reply := domain.StructuredResponse{
				Message: "Who exactly would use this app - can you describe your ideal user?",
			}
			if count > 3 {
				reply.Actions = []domain.Action{{
					Type:                 domain.ActionUpdateTargetAudience,
					UpdateTargetAudience: &domain.UpdateTargetAudienceData{TargetAudience: "Small business owners and entrepreneurs"},
				}}
			}
			return reply
		},
		func(int) domain.StructuredResponse {
			return domain.StructuredResponse{
				Message: "What makes your solution different from what's already out there?",
				Suggestions: []domain.SuggestionEntry{{
					Type: domain.SuggestionFeature,
					Feature: &domain.FeatureData{
						Name:        "AI-Powered Insights",
						Description: "Use artificial intelligence to provide smart recommendations",
						Priority:    "high",
						Category:    "Core Features",
					},
				}},
			}
		},
	},
	"mockups": {
		func(int) domain.StructuredResponse {
			return domain.StructuredResponse{
				Message: "What's the first thing users should see when they open your app?",
				Suggestions: []domain.SuggestionEntry{{
					Type: domain.SuggestionPage,
					Page: &domain.PageData{
						Name:        "Welcome Screen",
						Description: "First screen users see with branding and call-to-action",
						Type:        "public",
						Sections:    []string{"Hero Image", "Value Proposition", "Get Started Button"},
					},
				}},
			}
		},
		func(int) domain.StructuredResponse {
			return domain.StructuredResponse{
				Message: "Do you prefer a clean minimal design or something more colorful and playful?",
				Suggestions: []domain.SuggestionEntry{{
					Type: domain.SuggestionMockup,
					Mockup: &domain.MockupData{
						Name:        "Dashboard Mockup",
						Description: "Visual representation of the main dashboard",
						Type:        "Page",
					},
				}},
			}
		},
	},
	"features": {
		func(int) domain.StructuredResponse {
			return domain.StructuredResponse{
				Message: "What's the one feature users absolutely can't live without?",
				Suggestions: []domain.SuggestionEntry{{
					Type: domain.SuggestionFeature,
					Feature: &domain.FeatureData{
						Name:        "User Authentication",
						Description: "Secure login and registration system",
						Priority:    "high",
						Category:    "Security",
					},
				}},
			}
		},
		func(int) domain.StructuredResponse {
			return domain.StructuredResponse{
				Message: "How will users find what they're looking for?",
				Suggestions: []domain.SuggestionEntry{{
					Type: domain.SuggestionFeature,
					Feature: &domain.FeatureData{
						Name:        "Advanced Search",
						Description: "Search functionality with filters and sorting",
						Priority:    "medium",
						Category:    "Discovery",
					},
				}},
			}
		},
	},
	"docs": {
		func(int) domain.StructuredResponse {
			return domain.StructuredResponse{
				Message: "Have we covered all the user types who will use your app?",
				Suggestions: []domain.SuggestionEntry{{
					Type: domain.SuggestionJourney,
					Journey: &domain.JourneyData{
						Name:        "New User Onboarding",
						Description: "Step-by-step journey for first-time users",
						Steps: []domain.JourneyStep{
							{Title: "Sign Up", Description: "User creates an account"},
							{Title: "Welcome Tour", Description: "Guided tour of key features"},
							{Title: "First Action", Description: "User completes their first task"},
						},
					},
				}},
			}
		},
	},
}

// unaryReplies are the legacy plain-text banks for the unary path.
var unaryReplies = map[string][]string{
	"vision": {
		"That's a great vision! Can you tell me more about the specific problem this solves for your users?",
		"Interesting! How do you see this being different from existing solutions in the market?",
		"I love the direction this is going. What would be the single most important outcome for your users?",
		"Let's dig deeper into your target audience. Who specifically would benefit most from this?",
		"That makes sense. What inspired you to solve this particular problem?",
	},
	"mockups": {
		"For the user interface, what's the most important action users need to take?",
		"How do you envision users navigating through your app? What's the main user flow?",
		"Should we prioritize mobile or desktop experience first?",
		"What visual style appeals to your target audience - minimal, playful, professional?",
		"Let's think about the first screen users see. What would make them want to explore further?",
	},
	"features": {
		"What feature would provide the most immediate value to your users?",
		"That's a great feature idea! How do you see users interacting with it?",
		"Should this feature be part of the MVP or saved for a future release?",
		"What data would this feature need to work effectively?",
		"How would you measure the success of this feature?",
	},
	"docs": {
		"Looking at the documentation, I notice we should expand on the user authentication flow.",
		"The feature list is coming together nicely. Should we add more detail about the payment processing?",
		"I've organized the requirements into clear sections. What technical constraints should we document?",
		"The documentation is quite comprehensive. Are there any edge cases we should consider?",
		"Great progress! Should we add more details about the data model?",
	},
}
