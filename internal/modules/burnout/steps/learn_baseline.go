package steps

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pulsecheck-backend/internal/data/repos"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/redis"
)

const (
	baselineHistoryDays = 30
	baselineCacheTTL    = 6 * time.Hour

	earlyStartMinutes = 9 * 60
	lateStartMinutes  = 10*60 + 30
)

type LearnBaselineDeps struct {
	Log       *logger.Logger
	Snapshots repos.MetricSnapshotRepo

	// Cache is optional; a nil or failing cache only costs the recompute.
	Cache redis.Cache
}

type LearnBaselineInput struct {
	UserID uuid.UUID
}

type LearnBaselineOutput struct {
	Baseline  burnout.Baseline `json:"baseline"`
	FromCache bool             `json:"from_cache"`
}

// LearnBaseline resolves the user's frame of reference from up to 30 days of
// snapshot history. It always resolves: thin or corrupted history falls back
// to the global defaults instead of failing the run.
func LearnBaseline(ctx context.Context, deps LearnBaselineDeps, in LearnBaselineInput) (LearnBaselineOutput, error) {
	out := LearnBaselineOutput{}
	if deps.Log == nil || deps.Snapshots == nil {
		return out, fmt.Errorf("learn_baseline: missing deps")
	}
	if in.UserID == uuid.Nil {
		return out, fmt.Errorf("learn_baseline: missing user_id")
	}

	cacheKey := baselineCacheKey(in.UserID)
	if deps.Cache != nil {
		var cached burnout.Baseline
		if hit, err := deps.Cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			out.Baseline = cached.Normalized()
			out.FromCache = true
			return out, nil
		}
	}

	history, err := deps.Snapshots.ListRecent(ctx, nil, in.UserID, baselineHistoryDays)
	if err != nil {
		return out, fmt.Errorf("learn_baseline: load history: %w", err)
	}

	valid, dropped := filterValidSnapshots(history)
	if dropped > 0 {
		cerr := &burnout.ConsistencyError{
			Reason: fmt.Sprintf("%d of %d snapshots failed validation", dropped, len(history)),
		}
		deps.Log.Warn("learn_baseline: dropping corrupted history", "user_id", in.UserID, "error", cerr.Error())
	}

	out.Baseline = computeBaseline(valid)

	if deps.Cache != nil {
		if err := deps.Cache.SetJSON(ctx, cacheKey, out.Baseline, baselineCacheTTL); err != nil {
			deps.Log.Warn("learn_baseline: cache write failed (continuing)", "user_id", in.UserID, "error", err.Error())
		}
	}
	return out, nil
}

func baselineCacheKey(userID uuid.UUID) string {
	return "pc:baseline:" + userID.String()
}

func filterValidSnapshots(history []*types.MetricSnapshot) (valid []*types.MetricSnapshot, dropped int) {
	valid = make([]*types.MetricSnapshot, 0, len(history))
	for _, s := range history {
		if s == nil || !s.Valid() {
			dropped++
			continue
		}
		valid = append(valid, s)
	}
	return valid, dropped
}

// computeBaseline derives the personalized numbers, or the defaults when the
// history is too thin to trust.
func computeBaseline(history []*types.MetricSnapshot) burnout.Baseline {
	if len(history) < burnout.MinBaselineSamples {
		return burnout.DefaultBaseline(len(history))
	}

	var taskSum, hourSum, meetingSum float64
	var workedDays, weekendDays int
	starts := make([]int, 0, len(history))
	for _, s := range history {
		taskSum += float64(s.ActiveTasks)
		hourSum += s.WorkHours
		meetingSum += float64(s.MeetingCount)

		if s.WorkHours > 0 {
			workedDays++
			switch s.PeriodStart.Weekday() {
			case time.Saturday, time.Sunday:
				weekendDays++
			}
		}
		if s.FirstActivityMinutes != nil {
			starts = append(starts, *s.FirstActivityMinutes)
		}
	}

	n := float64(len(history))
	b := burnout.Baseline{
		AvgActiveTasks: taskSum / n,
		AvgWorkHours:   hourSum / n,
		AvgMeetings:    meetingSum / n,
		WorkPattern:    workPatternFromStarts(starts),
		SampleDays:     len(history),
	}
	if workedDays > 0 {
		b.WeekendWorker = float64(weekendDays)/float64(workedDays) > burnout.WeekendWorkerShare
	}
	return b.Normalized()
}

// workPatternFromStarts classifies by the median first-activity minute; days
// with no timed activity are excluded from the median.
func workPatternFromStarts(starts []int) string {
	if len(starts) == 0 {
		return burnout.WorkPatternMixed
	}
	sorted := make([]int, len(starts))
	copy(sorted, starts)
	sort.Ints(sorted)

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = float64(sorted[mid])
	} else {
		median = float64(sorted[mid-1]+sorted[mid]) / 2
	}

	switch {
	case median < earlyStartMinutes:
		return burnout.WorkPatternEarly
	case median > lateStartMinutes:
		return burnout.WorkPatternLate
	default:
		return burnout.WorkPatternMixed
	}
}
