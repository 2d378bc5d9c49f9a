package prompts

type PromptName string

const (
	// Scoring
	PromptSentimentClassification PromptName = "sentiment_classification"

	// Generation (grounded per strategy)
	PromptRecommendationGeneration PromptName = "recommendation_generation"
)
