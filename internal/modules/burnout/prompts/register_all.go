package prompts

// RegisterAll registers every prompt via RegisterSpec(Spec{...}). Call once
// at startup before any Build.
func RegisterAll() {
	// ---------- Scoring ----------

	RegisterSpec(Spec{
		Name:       PromptSentimentClassification,
		Version:    1,
		SchemaName: "sentiment_classification",
		Schema:     SentimentSchema,
		System: `
You are assessing the emotional tone of a person's own work journal for a
burnout early-warning system. Judge only what the text supports; do not
diagnose, speculate, or moralize.
Return JSON only.`,
		User: `
Journal entries from the last 7 days, newest first:
{{.JournalText}}

Output rules:
- polarity: overall emotional tone in [-1,1]; -1 severe distress, 0 neutral,
  1 clearly positive.
- intensity: how strongly the tone is expressed; exactly one of 0.3 (mild),
  0.6 (moderate), 1.0 (strong).
- dominant_emotion: the single most present emotion among joy, contentment,
  neutral, worry, frustration, exhaustion, sadness, anger.
- Weigh recent entries more than older ones.`,
		Validators: []Validator{
			RequireNonEmpty("JournalText", func(in Input) string { return in.JournalText }),
		},
	})

	// ---------- Generation ----------

	RegisterSpec(Spec{
		Name:       PromptRecommendationGeneration,
		Version:    1,
		SchemaName: "recommendation_generation",
		Schema:     RecommendationSchema,
		System: `
You adapt one recovery strategy to one person's actual workday. Every claim
must be grounded: mention only tasks and events that appear in the schedule
below, by their listed names and times. Never invent meetings, deadlines,
people, or symptoms. If the schedule offers nothing concrete for a step, keep
that step generic rather than fabricating specifics.
Return JSON only.`,
		User: `
STRATEGY to adapt:
Title: {{.StrategyTitle}}
Description: {{.StrategyDescription}}
Typical steps:
{{.StrategySteps}}

THEIR SITUATION:
{{.AnalysisSummary}}

PROFILE:
{{.ProfileSummary}}

TODAY'S CALENDAR (name, start-end):
{{.ScheduleToday}}

TODAY'S TASKS (name, due, priority):
{{.TasksToday}}

Output rules:
- title: imperative, specific to their day, at most 120 characters.
- description: 2-4 sentences applying the strategy to their situation.
- rationale: 1-2 sentences tying the advice to their scores and schedule.
- action_steps: 1-10 concrete steps; reference only listed items.`,
		Validators: []Validator{
			RequireNonEmpty("StrategyTitle", func(in Input) string { return in.StrategyTitle }),
			RequireNonEmpty("StrategyDescription", func(in Input) string { return in.StrategyDescription }),
			RequireNonEmpty("AnalysisSummary", func(in Input) string { return in.AnalysisSummary }),
		},
	})
}
