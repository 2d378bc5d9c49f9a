package burnout

import (
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
)

// Valid sentiment intensity buckets, weakest to strongest.
const (
	IntensityLow    = 0.3
	IntensityMedium = 0.6
	IntensityHigh   = 1.0
)

// EmotionNeutral is the fallback classification when no text exists or the
// model's output never validated.
const EmotionNeutral = "neutral"

// Emotions lists the labels the classifier may return.
func Emotions() []string {
	return []string{
		"joy",
		"contentment",
		EmotionNeutral,
		"worry",
		"frustration",
		"exhaustion",
		"sadness",
		"anger",
	}
}

// ValidEmotion reports whether the label is one the classifier may emit.
func ValidEmotion(label string) bool {
	for _, e := range Emotions() {
		if e == label {
			return true
		}
	}
	return false
}

// ValidIntensity reports whether v is one of the three allowed buckets.
func ValidIntensity(v float64) bool {
	return v == IntensityLow || v == IntensityMedium || v == IntensityHigh
}

// SentimentResult is the classifier's verdict over the trailing week of text.
// Polarity runs negative (distress) to positive; intensity scales how hard
// the aggregate adjustment pushes.
type SentimentResult struct {
	Polarity        float64 `json:"polarity"`
	Intensity       float64 `json:"intensity"`
	DominantEmotion string  `json:"dominant_emotion"`

	Degraded bool `json:"degraded"`
}

// NeutralSentiment is the degraded default: no pull in either direction.
func NeutralSentiment(degraded bool) SentimentResult {
	return SentimentResult{
		Polarity:        0,
		Intensity:       IntensityLow,
		DominantEmotion: EmotionNeutral,
		Degraded:        degraded,
	}
}

// StrategyCandidate is a retrieved strategy with its vector distance
// (0 identical, grows with dissimilarity).
type StrategyCandidate struct {
	Strategy *types.Strategy
	Distance float64
}

// RankedStrategy is a candidate that survived prerequisite filtering, scored
// for final ordering.
type RankedStrategy struct {
	Strategy  *types.Strategy
	Relevance float64
}
