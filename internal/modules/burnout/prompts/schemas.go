package prompts

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/platform/openai"
)

// SentimentOutput is the classifier's contract. The schema is reflected from
// this struct, so the wire shape and the decoder cannot drift apart.
type SentimentOutput struct {
	Polarity        float64 `json:"polarity" jsonschema:"minimum=-1,maximum=1"`
	Intensity       float64 `json:"intensity" jsonschema:"enum=0.3,enum=0.6,enum=1"`
	DominantEmotion string  `json:"dominant_emotion" jsonschema:"enum=joy,enum=contentment,enum=neutral,enum=worry,enum=frustration,enum=exhaustion,enum=sadness,enum=anger"`
}

func SentimentSchema() map[string]any {
	return openai.SchemaFor[SentimentOutput]()
}

// RecommendationOutput is the generator's contract per strategy.
type RecommendationOutput struct {
	Title       string   `json:"title" jsonschema:"minLength=1,maxLength=120"`
	Description string   `json:"description" jsonschema:"minLength=1"`
	Rationale   string   `json:"rationale" jsonschema:"minLength=1"`
	ActionSteps []string `json:"action_steps" jsonschema:"minItems=1,maxItems=10"`
}

func RecommendationSchema() map[string]any {
	return openai.SchemaFor[RecommendationOutput]()
}

func decodeInto(obj map[string]any, out any) error {
	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DecodeSentiment maps the raw model object into a validated SentimentOutput.
// Breaches come back as *burnout.ValidationError so callers can take the
// retry-then-neutral path.
func DecodeSentiment(obj map[string]any) (SentimentOutput, error) {
	var out SentimentOutput
	if err := decodeInto(obj, &out); err != nil {
		return out, &burnout.ValidationError{Field: "sentiment", Msg: err.Error()}
	}
	if out.Polarity < -1 || out.Polarity > 1 {
		return out, &burnout.ValidationError{Field: "polarity", Msg: "outside [-1,1]"}
	}
	if !burnout.ValidIntensity(out.Intensity) {
		return out, &burnout.ValidationError{Field: "intensity", Msg: "not one of 0.3/0.6/1.0"}
	}
	if !burnout.ValidEmotion(out.DominantEmotion) {
		return out, &burnout.ValidationError{Field: "dominant_emotion", Msg: "unknown label"}
	}
	return out, nil
}

// DecodeRecommendation maps and validates the generator's object: title 1-120
// chars, non-empty description and rationale, 1-10 non-empty action steps.
func DecodeRecommendation(obj map[string]any) (RecommendationOutput, error) {
	var out RecommendationOutput
	if err := decodeInto(obj, &out); err != nil {
		return out, &burnout.ValidationError{Field: "recommendation", Msg: err.Error()}
	}
	out.Title = strings.TrimSpace(out.Title)
	if out.Title == "" || utf8.RuneCountInString(out.Title) > 120 {
		return out, &burnout.ValidationError{Field: "title", Msg: "must be 1-120 characters"}
	}
	out.Description = strings.TrimSpace(out.Description)
	if out.Description == "" {
		return out, &burnout.ValidationError{Field: "description", Msg: "required"}
	}
	out.Rationale = strings.TrimSpace(out.Rationale)
	if out.Rationale == "" {
		return out, &burnout.ValidationError{Field: "rationale", Msg: "required"}
	}
	if len(out.ActionSteps) == 0 || len(out.ActionSteps) > 10 {
		return out, &burnout.ValidationError{Field: "action_steps", Msg: "must have 1-10 steps"}
	}
	steps := make([]string, 0, len(out.ActionSteps))
	for _, s := range out.ActionSteps {
		s = strings.TrimSpace(s)
		if s == "" {
			return out, &burnout.ValidationError{Field: "action_steps", Msg: "empty step"}
		}
		steps = append(steps, s)
	}
	out.ActionSteps = steps
	return out, nil
}
