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
)

const (
	// backToBackGap is the longest break between two meetings that still
	// counts them as back to back.
	backToBackGap = 15 * time.Minute

	journalWindowDays = 7
	journalFetchLimit = 50

	// maxWorkHours caps the estimate; calendar double-booking and inflated
	// task estimates otherwise push a day past what a human can work.
	maxWorkHours = 16.0
)

type CollectMetricsDeps struct {
	Log       *logger.Logger
	Tasks     repos.TaskRepo
	Events    repos.CalendarEventRepo
	Journals  repos.JournalEntryRepo
	Snapshots repos.MetricSnapshotRepo
}

type CollectMetricsInput struct {
	UserID uuid.UUID
	// Now anchors the day window. Zero means the current UTC time.
	Now time.Time
}

type CollectMetricsOutput struct {
	Snapshot *types.MetricSnapshot `json:"snapshot"`

	// Raw inputs ride along so downstream stages do not re-query.
	ActiveTasks   []*types.Task          `json:"-"`
	TasksDueToday []*types.Task          `json:"-"`
	EventsToday   []*types.CalendarEvent `json:"-"`
	Journals      []*types.JournalEntry  `json:"-"`
}

// CollectMetrics summarizes the user's current day into a MetricSnapshot and
// persists it. The snapshot for a (user, day) pair is replaced on re-runs.
func CollectMetrics(ctx context.Context, deps CollectMetricsDeps, in CollectMetricsInput) (CollectMetricsOutput, error) {
	var out CollectMetricsOutput
	if deps.Log == nil || deps.Tasks == nil || deps.Events == nil || deps.Journals == nil || deps.Snapshots == nil {
		return out, fmt.Errorf("collect_metrics: missing deps")
	}
	if in.UserID == uuid.Nil {
		return out, fmt.Errorf("collect_metrics: missing user_id")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	journalSince := now.AddDate(0, 0, -journalWindowDays)

	tasks, err := deps.Tasks.ListActive(ctx, nil, in.UserID)
	if err != nil {
		return out, fmt.Errorf("collect_metrics: list tasks: %w", err)
	}
	dueToday, err := deps.Tasks.ListDueBetween(ctx, nil, in.UserID, dayStart, dayEnd)
	if err != nil {
		return out, fmt.Errorf("collect_metrics: list due tasks: %w", err)
	}
	events, err := deps.Events.ListBetween(ctx, nil, in.UserID, dayStart, dayEnd)
	if err != nil {
		return out, fmt.Errorf("collect_metrics: list events: %w", err)
	}
	journals, err := deps.Journals.ListSince(ctx, nil, in.UserID, journalSince, journalFetchLimit)
	if err != nil {
		return out, fmt.Errorf("collect_metrics: list journal entries: %w", err)
	}

	if len(tasks) == 0 && len(events) == 0 && len(journals) == 0 {
		return out, burnout.ErrDataUnavailable
	}

	snapshot := buildSnapshot(in.UserID, now, dayStart, dayEnd, tasks, dueToday, events)
	if err := deps.Snapshots.Upsert(ctx, nil, snapshot); err != nil {
		return out, fmt.Errorf("collect_metrics: persist snapshot: %w", err)
	}

	deps.Log.Info("collect_metrics: snapshot built",
		"user_id", in.UserID,
		"period_start", snapshot.PeriodStart,
		"active_tasks", snapshot.ActiveTasks,
		"overdue_tasks", snapshot.OverdueTasks,
		"work_hours", snapshot.WorkHours,
		"meeting_count", snapshot.MeetingCount,
		"back_to_back_count", snapshot.BackToBackCount,
	)

	out.Snapshot = snapshot
	out.ActiveTasks = tasks
	out.TasksDueToday = dueToday
	out.EventsToday = events
	out.Journals = journals
	return out, nil
}

func buildSnapshot(userID uuid.UUID, now, dayStart, dayEnd time.Time, tasks, dueToday []*types.Task, events []*types.CalendarEvent) *types.MetricSnapshot {
	snapshot := &types.MetricSnapshot{
		UserID:      userID,
		PeriodStart: dayStart,
		PeriodEnd:   dayEnd,
	}

	for _, t := range tasks {
		if t == nil || !t.Active() {
			continue
		}
		snapshot.ActiveTasks++
		if t.OverdueAt(now) {
			snapshot.OverdueTasks++
		}
	}

	var eventHours float64
	meetings := make([]*types.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		eventHours += e.Duration().Hours()
		if e.Meeting() {
			meetings = append(meetings, e)
			snapshot.MeetingCount++
			snapshot.MeetingHours += e.Duration().Hours()
		}
	}
	snapshot.BackToBackCount = countBackToBack(meetings)

	var taskHours float64
	for _, t := range dueToday {
		if t == nil || !t.Active() {
			continue
		}
		taskHours += float64(t.EstimatedMinutes) / 60.0
	}
	snapshot.WorkHours = eventHours + taskHours
	if snapshot.WorkHours > maxWorkHours {
		snapshot.WorkHours = maxWorkHours
	}

	snapshot.FirstActivityMinutes = firstActivityMinutes(dayStart, dayEnd, tasks, events)
	return snapshot
}

// countBackToBack counts adjacent meeting pairs separated by at most
// backToBackGap. Overlapping meetings count as well.
func countBackToBack(meetings []*types.CalendarEvent) int {
	if len(meetings) < 2 {
		return 0
	}
	sorted := make([]*types.CalendarEvent, len(meetings))
	copy(sorted, meetings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartsAt.Before(sorted[j].StartsAt)
	})

	count := 0
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].StartsAt.Sub(sorted[i-1].EndsAt)
		if gap <= backToBackGap {
			count++
		}
	}
	return count
}

// firstActivityMinutes finds the day's earliest observed activity: an event
// start or a task touched within the window. Returns nil when the window has
// no timed activity.
func firstActivityMinutes(dayStart, dayEnd time.Time, tasks []*types.Task, events []*types.CalendarEvent) *int {
	var earliest *time.Time
	consider := func(ts time.Time) {
		if ts.Before(dayStart) || !ts.Before(dayEnd) {
			return
		}
		if earliest == nil || ts.Before(*earliest) {
			t := ts
			earliest = &t
		}
	}

	for _, e := range events {
		if e != nil {
			consider(e.StartsAt)
		}
	}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		consider(t.UpdatedAt)
		if t.CompletedAt != nil {
			consider(*t.CompletedAt)
		}
	}

	if earliest == nil {
		return nil
	}
	minutes := int(earliest.Sub(dayStart).Minutes())
	return &minutes
}
