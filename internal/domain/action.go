package domain

import (
	"encoding/json"
	"fmt"
)

// ActionType identifies an imperative project-state mutation proposed by the
// model. Actions have no accept/reject lifecycle; the consuming layer applies
// them directly. The chat core only surfaces them.
type ActionType string

const (
	ActionUpdateVision         ActionType = "update_vision"
	ActionUpdateDescription    ActionType = "update_description"
	ActionUpdateTargetAudience ActionType = "update_target_audience"
	ActionCreateMockup         ActionType = "create_mockup"
)

// UpdateVisionData carries the new project vision.
type UpdateVisionData struct {
	Vision string `json:"vision"`
}

// UpdateDescriptionData carries the new project description.
type UpdateDescriptionData struct {
	Description string `json:"description"`
}

// UpdateTargetAudienceData carries the new target audience.
type UpdateTargetAudienceData struct {
	TargetAudience string `json:"targetAudience"`
}

// CreateMockupData describes a mockup the model wants created.
type CreateMockupData struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Action is an imperative instruction as it appears on the wire. The Data
// variant is keyed by Type; exactly one variant is populated.
type Action struct {
	Type                 ActionType
	UpdateVision         *UpdateVisionData
	UpdateDescription    *UpdateDescriptionData
	UpdateTargetAudience *UpdateTargetAudienceData
	CreateMockup         *CreateMockupData
}

// MarshalJSON emits the {"type": ..., "data": {...}} wire shape.
func (a Action) MarshalJSON() ([]byte, error) {
	var data any
	switch a.Type {
	case ActionUpdateVision:
		data = a.UpdateVision
	case ActionUpdateDescription:
		data = a.UpdateDescription
	case ActionUpdateTargetAudience:
		data = a.UpdateTargetAudience
	case ActionCreateMockup:
		data = a.CreateMockup
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
	return json.Marshal(struct {
		Type ActionType `json:"type"`
		Data any        `json:"data"`
	}{Type: a.Type, Data: data})
}

// UnmarshalJSON decodes the {"type": ..., "data": {...}} wire shape into the
// variant matching the declared type.
func (a *Action) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type ActionType      `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = Action{Type: raw.Type}
	if len(raw.Data) == 0 {
		raw.Data = []byte("{}")
	}
	switch raw.Type {
	case ActionUpdateVision:
		a.UpdateVision = &UpdateVisionData{}
		return json.Unmarshal(raw.Data, a.UpdateVision)
	case ActionUpdateDescription:
		a.UpdateDescription = &UpdateDescriptionData{}
		return json.Unmarshal(raw.Data, a.UpdateDescription)
	case ActionUpdateTargetAudience:
		a.UpdateTargetAudience = &UpdateTargetAudienceData{}
		return json.Unmarshal(raw.Data, a.UpdateTargetAudience)
	case ActionCreateMockup:
		a.CreateMockup = &CreateMockupData{}
		return json.Unmarshal(raw.Data, a.CreateMockup)
	default:
		return fmt.Errorf("unknown action type %q", raw.Type)
	}
}
