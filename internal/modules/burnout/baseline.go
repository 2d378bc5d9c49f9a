package burnout

// Global defaults used until a user has at least MinBaselineSamples days of
// history. Chosen as a plausible knowledge-worker week so first-run scores
// land mid-range instead of saturating.
const (
	DefaultAvgActiveTasks = 10.0
	DefaultAvgWorkHours   = 8.0
	DefaultAvgMeetings    = 3.0

	// MinBaselineSamples is the history size below which the learner refuses
	// to personalize and stays on the defaults.
	MinBaselineSamples = 7

	// WeekendWorkerShare is the fraction of worked days falling on Sat/Sun
	// above which the user counts as a weekend worker.
	WeekendWorkerShare = 0.4
)

const (
	WorkPatternEarly = "early_riser"
	WorkPatternMixed = "mixed"
	WorkPatternLate  = "late_riser"
)

// Baseline is the learned per-user frame of reference the workload scorer
// divides by.
type Baseline struct {
	AvgActiveTasks float64 `json:"avg_active_tasks"`
	AvgWorkHours   float64 `json:"avg_work_hours"`
	AvgMeetings    float64 `json:"avg_meetings"`
	WeekendWorker  bool    `json:"weekend_worker"`
	WorkPattern    string  `json:"work_pattern"`

	// SampleDays is how many valid history rows informed the numbers; below
	// MinBaselineSamples the numeric fields are the global defaults.
	SampleDays int `json:"sample_days"`
}

// DefaultBaseline returns the global defaults with the observed sample count.
func DefaultBaseline(sampleDays int) Baseline {
	return Baseline{
		AvgActiveTasks: DefaultAvgActiveTasks,
		AvgWorkHours:   DefaultAvgWorkHours,
		AvgMeetings:    DefaultAvgMeetings,
		WeekendWorker:  false,
		WorkPattern:    WorkPatternMixed,
		SampleDays:     sampleDays,
	}
}

// Normalized returns a copy with zero denominators replaced by the defaults
// so ratio computations never divide by zero.
func (b Baseline) Normalized() Baseline {
	out := b
	if out.AvgActiveTasks <= 0 {
		out.AvgActiveTasks = DefaultAvgActiveTasks
	}
	if out.AvgWorkHours <= 0 {
		out.AvgWorkHours = DefaultAvgWorkHours
	}
	if out.AvgMeetings <= 0 {
		out.AvgMeetings = DefaultAvgMeetings
	}
	if out.WorkPattern == "" {
		out.WorkPattern = WorkPatternMixed
	}
	return out
}
