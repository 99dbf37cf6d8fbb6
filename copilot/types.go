package copilot

import (
	"encoding/json"
	"time"
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Mode selects which persona answers a message.
type Mode string

const (
	ModeCreate  Mode = "create"
	ModePro     Mode = "pro"
	ModeGeneral Mode = "general"

	// ModeAuto is a request-time meta value asking the classifier to pick;
	// it is never stored or returned as a resolved mode.
	ModeAuto = "auto"
)

// Message is one turn of a chat request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationTurn is one persisted entry of a project's history.
// Append-only; insertion order is the ordering.
type ConversationTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectRecord is everything persisted under one project name.
type ProjectRecord struct {
	Conversation []ConversationTurn `json:"conversation"`
	Schematics   []Blueprint        `json:"schematics,omitempty"`
}

// StyleProfile describes how replies should be phrased. Unknown fields from
// the on-disk profile survive in Extra but are never interpreted.
type StyleProfile struct {
	Tone       string
	Detail     string
	Emojis     string
	Formatting string
	Extra      map[string]any
}

// DefaultStyleProfile is what a fresh install answers with.
func DefaultStyleProfile() StyleProfile {
	return StyleProfile{
		Tone:       "casual",
		Detail:     "concise",
		Emojis:     "sparing",
		Formatting: "markdown",
	}
}

func (p StyleProfile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+4)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["tone"] = p.Tone
	out["detail"] = p.Detail
	out["emojis"] = p.Emojis
	out["formatting"] = p.Formatting
	return json.Marshal(out)
}

func (p *StyleProfile) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = StyleProfile{}
	for k, v := range raw {
		s, _ := v.(string)
		switch k {
		case "tone":
			p.Tone = s
		case "detail":
			p.Detail = s
		case "emojis":
			p.Emojis = s
		case "formatting":
			p.Formatting = s
		default:
			if p.Extra == nil {
				p.Extra = map[string]any{}
			}
			p.Extra[k] = v
		}
	}
	return nil
}

// StressSpec is the blueprint model's stated power demand.
type StressSpec struct {
	Machines   int     `json:"machines,omitempty"`
	BaseStress float64 `json:"baseStress,omitempty"`
}

// Schematic is the structured arm of a Blueprint.
type Schematic struct {
	Name           string      `json:"name,omitempty"`
	Description    string      `json:"description,omitempty"`
	Materials      []string    `json:"materials,omitempty"`
	Size           string      `json:"size,omitempty"`
	Steps          []string    `json:"steps,omitempty"`
	Stress         *StressSpec `json:"stress,omitempty"`
	StressEstimate *float64    `json:"stressEstimate,omitempty"`
}

// Degraded is the fallback arm when the blueprint model's output did not
// parse as JSON.
type Degraded struct {
	ParseError string `json:"parseError"`
	Raw        string `json:"raw"`
}

// Blueprint is a two-arm union: exactly one of Structured or Degraded is
// set. It marshals flat, as whichever arm is present.
type Blueprint struct {
	Structured *Schematic
	Degraded   *Degraded
}

func (b Blueprint) MarshalJSON() ([]byte, error) {
	if b.Degraded != nil {
		return json.Marshal(b.Degraded)
	}
	return json.Marshal(b.Structured)
}

func (b *Blueprint) UnmarshalJSON(data []byte) error {
	var probe struct {
		ParseError *string `json:"parseError"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	*b = Blueprint{}
	if probe.ParseError != nil {
		b.Degraded = &Degraded{}
		return json.Unmarshal(data, b.Degraded)
	}
	b.Structured = &Schematic{}
	return json.Unmarshal(data, b.Structured)
}

// ChatResult is what a chat request resolves to.
type ChatResult struct {
	Mode  Mode   `json:"mode"`
	Reply string `json:"reply"`
}
