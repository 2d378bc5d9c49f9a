package prompts

// Input is a superset of all fields any prompt might need. Missing fields
// render empty strings (templates use missingkey=zero).
type Input struct {
	// Sentiment classification
	JournalText string

	// Strategy grounding
	StrategyTitle       string
	StrategyDescription string
	StrategySteps       string

	// The user's concrete day; the generator must reference only these.
	ScheduleToday string
	TasksToday    string

	// Context
	ProfileSummary  string
	AnalysisSummary string
}
