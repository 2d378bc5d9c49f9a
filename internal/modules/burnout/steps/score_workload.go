package steps

import (
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
)

// Component weights; time pressure dominates.
const (
	workloadTaskWeight    = 0.3
	workloadTimeWeight    = 0.4
	workloadMeetingWeight = 0.3
)

// backToBackCap bounds how much meeting fragmentation can inflate the
// composite: 0.1 per pair, at most 5 pairs.
const backToBackCap = 5

type ScoreWorkloadInput struct {
	Snapshot *types.MetricSnapshot
	Baseline burnout.Baseline
}

type ScoreWorkloadOutput struct {
	Total   float64 `json:"total"`
	Task    float64 `json:"task"`
	Time    float64 `json:"time"`
	Meeting float64 `json:"meeting"`
}

// ScoreWorkload maps the snapshot's load ratios against the baseline through
// a saturating curve. Pure function: same inputs, same output, no I/O.
func ScoreWorkload(in ScoreWorkloadInput) (ScoreWorkloadOutput, error) {
	out := ScoreWorkloadOutput{}
	if in.Snapshot == nil {
		return out, burnout.ErrDataUnavailable
	}
	// A taskless snapshot with no baseline at all would score a fabricated
	// calm; refuse instead.
	if in.Snapshot.ActiveTasks == 0 && in.Snapshot.OverdueTasks == 0 && in.Baseline == (burnout.Baseline{}) {
		return out, burnout.ErrDataUnavailable
	}
	base := in.Baseline.Normalized()
	snap := in.Snapshot

	taskRatio := (float64(snap.ActiveTasks) + float64(snap.OverdueTasks)) / base.AvgActiveTasks
	timeRatio := snap.WorkHours / base.AvgWorkHours

	// AvgMeetings is a daily meeting count; dividing meeting hours by it
	// reads as hours against a typical hour-per-meeting day.
	backToBack := float64(snap.BackToBackCount)
	if backToBack > backToBackCap {
		backToBack = backToBackCap
	}
	meetingComposite := snap.MeetingHours/base.AvgMeetings + 0.1*backToBack

	out.Task = scoreRatio(taskRatio)
	out.Time = scoreRatio(timeRatio)
	out.Meeting = scoreRatio(meetingComposite)
	out.Total = clampScore(workloadTaskWeight*out.Task + workloadTimeWeight*out.Time + workloadMeetingWeight*out.Meeting)
	return out, nil
}

// scoreRatio is the shared saturating curve: a ratio of 1.0 (at baseline)
// lands at 50, overload saturates toward 100 instead of growing without
// bound.
//
//	r <= 0.8        -> 20..40
//	0.8 < r <= 1.2  -> 40..60
//	1.2 < r <= 1.5  -> 60..80
//	r > 1.5         -> 80..100 (capped)
func scoreRatio(r float64) float64 {
	if r < 0 {
		r = 0
	}
	switch {
	case r <= 0.8:
		return 20 + (r/0.8)*20
	case r <= 1.2:
		return 40 + ((r-0.8)/0.4)*20
	case r <= 1.5:
		return 60 + ((r-1.2)/0.3)*20
	default:
		s := 80 + ((r-1.5)/0.5)*20
		if s > 100 {
			return 100
		}
		return s
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
