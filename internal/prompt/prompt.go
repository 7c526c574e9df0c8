// Package prompt builds the system prompts sent to LLM providers. The
// structured prompt pins the JSON response contract; the legacy prompt is a
// plain conversational variant used by the unary endpoint.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

const structuredBase = `You are FlexOS Builder, an AI assistant helping non-technical founders transform their app ideas into comprehensive documentation.

CRITICAL INSTRUCTIONS FOR STRUCTURED RESPONSES:
You MUST respond with a JSON object containing:
1. "message": Your conversational response (2-3 sentences max, ONE question only)
2. "suggestions": Array of items to suggest (features, pages, journeys, mockups)
3. "actions": Array of actions to take (update vision, create mockup, etc.)

EXAMPLE RESPONSE FORMAT:
{
  "message": "That's interesting! Tell me more about who your target users are.",
  "suggestions": [
    {
      "type": "feature",
      "data": {
        "name": "User Authentication",
        "description": "Secure login and registration system",
        "priority": "high",
        "category": "Security"
      }
    },
    {
      "type": "page",
      "data": {
        "name": "Dashboard",
        "description": "Main user dashboard after login",
        "type": "auth",
        "sections": ["Overview", "Recent Activity", "Quick Actions"]
      }
    }
  ],
  "actions": [
    {
      "type": "update_vision",
      "data": {
        "vision": "Create a platform that connects users efficiently"
      }
    }
  ]
}

SUGGESTION TYPES:
- feature: { name, description, priority, category }
- page: { name, description, type, sections }
- journey: { name, description, steps: [{title, description}] }
- mockup: { name, description, type }

ACTION TYPES:
- update_vision: { vision }
- update_description: { description }
- update_target_audience: { targetAudience }

RULES:
1. ALWAYS return valid JSON
2. Ask ONLY ONE focused question in the message
3. Keep message concise (2-3 sentences max)
4. Only include suggestions when you have enough context
5. Make suggestions specific and actionable
`

var structuredTabs = map[string]string{
	"vision": `
You are helping define the project vision. Ask ONE specific question about:
- The core problem being solved
- Who the target users are
- What makes this solution unique
- The desired outcome for users`,

	"mockups": `
You are discussing UI design. Ask ONE specific question about:
- The main user interface
- Key screens needed
- Visual style preferences
- User flow through the app`,

	"features": `
You are discovering features. Ask ONE specific question about:
- Essential functionality needed
- User actions and workflows
- Data requirements
- Integration needs`,

	"docs": `
You are reviewing documentation. Ask ONE specific question about:
- Missing information
- Technical specifications
- Implementation details
- Edge cases to consider`,
}

const legacyBase = `You are FlexOS Builder, an AI assistant helping non-technical founders transform their app ideas into comprehensive documentation. You ask insightful questions to discover requirements, suggest features, and help clarify the vision.
`

var legacyTabs = map[string]string{
	"vision": `
You are currently helping define the project vision. Focus on:
- Understanding the core problem being solved
- Identifying target users and their pain points
- Clarifying the unique value proposition
- Exploring market differentiators`,

	"mockups": `
You are currently discussing mockups and UI design. Focus on:
- Understanding user workflows
- Suggesting UI patterns and layouts
- Discussing visual hierarchy
- Identifying key screens and interactions`,

	"features": `
You are currently discovering and defining features. Focus on:
- Breaking down requirements into specific features
- Prioritizing features (MVP vs future)
- Understanding technical requirements
- Creating user stories`,

	"docs": `
You are currently reviewing documentation. Focus on:
- Ensuring completeness
- Identifying gaps
- Suggesting improvements
- Validating technical feasibility`,
}

// Structured builds the system prompt for the streaming endpoint. It embeds
// the JSON response contract, a snapshot of the project context, and a
// tab-specific focus block. Unknown tabs fall back to vision.
func Structured(activeTab string, project domain.ProjectContext) string {
	var b strings.Builder
	b.WriteString(structuredBase)
	b.WriteString("\nCurrent project context:\n")
	writeContext(&b, project)
	b.WriteString(fmt.Sprintf("- Existing Features: %d\n", len(project.Features)))
	b.WriteString(fmt.Sprintf("- Existing Pages: %d\n", len(project.Pages)))
	b.WriteString("- Message Context: ")
	b.WriteString(messageContextJSON(project.MessageContext))
	b.WriteString(tabBlock(structuredTabs, activeTab))
	return b.String()
}

// Legacy builds the plain conversational prompt used by the unary endpoint.
func Legacy(activeTab string, project domain.ProjectContext) string {
	var b strings.Builder
	b.WriteString(legacyBase)
	b.WriteString("\nCurrent project context:\n")
	writeContext(&b, project)
	b.WriteString(tabBlock(legacyTabs, activeTab))
	return b.String()
}

func writeContext(b *strings.Builder, project domain.ProjectContext) {
	fmt.Fprintf(b, "- Name: %s\n", orDefault(project.Name, "Untitled Project"))
	fmt.Fprintf(b, "- Description: %s\n", orDefault(project.Description, "No description yet"))
	fmt.Fprintf(b, "- Target Audience: %s\n", orDefault(project.TargetAudience, "Not defined"))
	fmt.Fprintf(b, "- Vision: %s\n", orDefault(project.Vision, "Not defined"))
}

func tabBlock(tabs map[string]string, activeTab string) string {
	if block, ok := tabs[activeTab]; ok {
		return block
	}
	return tabs["vision"]
}

func messageContextJSON(turns []domain.ChatTurn) string {
	if len(turns) == 0 {
		return "[]"
	}
	data, err := json.Marshal(turns)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
