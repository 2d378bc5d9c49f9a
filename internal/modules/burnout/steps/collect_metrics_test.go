package steps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

var collectNow = time.Date(2025, 6, 10, 17, 30, 0, 0, time.UTC)

func dayAt(hour, min int) time.Time {
	return time.Date(2025, 6, 10, hour, min, 0, 0, time.UTC)
}

func meetingEvent(title string, start, end time.Time) *types.CalendarEvent {
	return &types.CalendarEvent{ID: uuid.New(), Title: title, StartsAt: start, EndsAt: end, IsMeeting: true}
}

func TestCollectMetrics_BuildsSnapshot(t *testing.T) {
	overdueAt := time.Date(2025, 6, 9, 17, 0, 0, 0, time.UTC)
	dueA, dueB := dayAt(18, 0), dayAt(19, 30)

	tasks := &fakeTaskRepo{
		active: []*types.Task{
			{Title: "overdue report", Status: types.TaskStatusOpen, DueAt: &overdueAt, EstimatedMinutes: 60},
			{Title: "refactor", Status: types.TaskStatusInProgress},
			{Title: "slides", Status: types.TaskStatusOpen, DueAt: &dueA, EstimatedMinutes: 90},
			{Title: "review", Status: types.TaskStatusInProgress, DueAt: &dueB, EstimatedMinutes: 30},
			{Title: "read paper", Status: types.TaskStatusOpen, IsOptional: true},
		},
		due: []*types.Task{
			{Title: "slides", Status: types.TaskStatusOpen, DueAt: &dueA, EstimatedMinutes: 90},
			{Title: "review", Status: types.TaskStatusInProgress, DueAt: &dueB, EstimatedMinutes: 30},
		},
	}
	events := &fakeEventRepo{events: []*types.CalendarEvent{
		meetingEvent("standup", dayAt(9, 0), dayAt(10, 0)),
		{ID: uuid.New(), Title: "planning", StartsAt: dayAt(10, 0), EndsAt: dayAt(10, 30), AttendeeCount: 3},
		{ID: uuid.New(), Title: "focus block", StartsAt: dayAt(11, 0), EndsAt: dayAt(12, 30)},
		meetingEvent("design review", dayAt(13, 0), dayAt(14, 0)),
	}}
	journals := &fakeJournalRepo{entries: []*types.JournalEntry{
		{Source: types.JournalSourceDiary, Content: "long day", RecordedAt: collectNow.Add(-2 * time.Hour)},
	}}
	snaps := &fakeSnapshotRepo{}

	deps := CollectMetricsDeps{Log: logger.NewNop(), Tasks: tasks, Events: events, Journals: journals, Snapshots: snaps}
	out, err := CollectMetrics(context.Background(), deps, CollectMetricsInput{UserID: uuid.New(), Now: collectNow})
	if err != nil {
		t.Fatalf("CollectMetrics: %v", err)
	}

	s := out.Snapshot
	if s == nil {
		t.Fatalf("missing snapshot")
	}
	if s.ActiveTasks != 4 {
		t.Fatalf("active tasks: want=4 got=%d", s.ActiveTasks)
	}
	if s.OverdueTasks != 1 {
		t.Fatalf("overdue tasks: want=1 got=%d", s.OverdueTasks)
	}
	if s.MeetingCount != 3 {
		t.Fatalf("meeting count: want=3 got=%d", s.MeetingCount)
	}
	if !withinDelta(s.MeetingHours, 2.5, 0.0001) {
		t.Fatalf("meeting hours: want=2.5 got=%.4f", s.MeetingHours)
	}
	// standup 09:00-10:00 straight into planning at 10:00.
	if s.BackToBackCount != 1 {
		t.Fatalf("back to back: want=1 got=%d", s.BackToBackCount)
	}
	// 4h of events plus 2h of estimated task work due today.
	if !withinDelta(s.WorkHours, 6.0, 0.0001) {
		t.Fatalf("work hours: want=6.0 got=%.4f", s.WorkHours)
	}
	if s.FirstActivityMinutes == nil || *s.FirstActivityMinutes != 9*60 {
		t.Fatalf("first activity: want=540 got=%v", s.FirstActivityMinutes)
	}
	if !s.PeriodStart.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("period start: got=%s", s.PeriodStart)
	}
	if !s.PeriodEnd.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("period end: got=%s", s.PeriodEnd)
	}

	if len(snaps.upserted) != 1 || snaps.upserted[0] != s {
		t.Fatalf("snapshot not persisted exactly once")
	}
	if len(out.EventsToday) != 4 || len(out.Journals) != 1 || len(out.TasksDueToday) != 2 {
		t.Fatalf("raw inputs not carried: events=%d journals=%d due=%d", len(out.EventsToday), len(out.Journals), len(out.TasksDueToday))
	}
}

func TestCollectMetrics_NothingToAnalyze(t *testing.T) {
	snaps := &fakeSnapshotRepo{}
	deps := CollectMetricsDeps{
		Log:       logger.NewNop(),
		Tasks:     &fakeTaskRepo{},
		Events:    &fakeEventRepo{},
		Journals:  &fakeJournalRepo{},
		Snapshots: snaps,
	}

	_, err := CollectMetrics(context.Background(), deps, CollectMetricsInput{UserID: uuid.New(), Now: collectNow})
	if !errors.Is(err, burnout.ErrDataUnavailable) {
		t.Fatalf("want ErrDataUnavailable, got %v", err)
	}
	if len(snaps.upserted) != 0 {
		t.Fatalf("no snapshot may be written when there is nothing to analyze")
	}
}

func TestCollectMetrics_JournalOnlyUserStillAnalyzed(t *testing.T) {
	journals := &fakeJournalRepo{entries: []*types.JournalEntry{
		{Source: types.JournalSourceCheckin, Content: "tired", RecordedAt: collectNow.Add(-time.Hour)},
	}}
	snaps := &fakeSnapshotRepo{}
	deps := CollectMetricsDeps{Log: logger.NewNop(), Tasks: &fakeTaskRepo{}, Events: &fakeEventRepo{}, Journals: journals, Snapshots: snaps}

	out, err := CollectMetrics(context.Background(), deps, CollectMetricsInput{UserID: uuid.New(), Now: collectNow})
	if err != nil {
		t.Fatalf("CollectMetrics: %v", err)
	}
	if out.Snapshot.ActiveTasks != 0 || out.Snapshot.WorkHours != 0 {
		t.Fatalf("journal-only day should produce a zeroed snapshot: %+v", out.Snapshot)
	}
	if out.Snapshot.FirstActivityMinutes != nil {
		t.Fatalf("no timed activity, first activity must be nil")
	}
}

func TestCollectMetrics_WorkHoursCapped(t *testing.T) {
	events := &fakeEventRepo{events: []*types.CalendarEvent{
		meetingEvent("marathon a", dayAt(0, 0), dayAt(10, 0)),
		meetingEvent("marathon b", dayAt(10, 0), dayAt(22, 0)),
	}}
	snaps := &fakeSnapshotRepo{}
	deps := CollectMetricsDeps{Log: logger.NewNop(), Tasks: &fakeTaskRepo{}, Events: events, Journals: &fakeJournalRepo{}, Snapshots: snaps}

	out, err := CollectMetrics(context.Background(), deps, CollectMetricsInput{UserID: uuid.New(), Now: collectNow})
	if err != nil {
		t.Fatalf("CollectMetrics: %v", err)
	}
	if out.Snapshot.WorkHours != 16 {
		t.Fatalf("work hours cap: want=16 got=%.2f", out.Snapshot.WorkHours)
	}
}

func TestCountBackToBack_GapBoundaries(t *testing.T) {
	meetings := []*types.CalendarEvent{
		meetingEvent("a", dayAt(9, 0), dayAt(9, 30)),
		meetingEvent("b", dayAt(9, 40), dayAt(10, 0)),   // 10 min gap
		meetingEvent("c", dayAt(10, 15), dayAt(10, 45)), // exactly 15 min
		meetingEvent("d", dayAt(11, 1), dayAt(11, 30)),  // 16 min, too long
		meetingEvent("e", dayAt(11, 20), dayAt(12, 0)),  // overlaps d
	}
	if got := countBackToBack(meetings); got != 3 {
		t.Fatalf("back to back: want=3 got=%d", got)
	}

	if got := countBackToBack(meetings[:1]); got != 0 {
		t.Fatalf("single meeting: want=0 got=%d", got)
	}
	if got := countBackToBack(nil); got != 0 {
		t.Fatalf("no meetings: want=0 got=%d", got)
	}
}

func TestFirstActivityMinutes_TasksAndEvents(t *testing.T) {
	dayStart := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	events := []*types.CalendarEvent{meetingEvent("standup", dayAt(9, 0), dayAt(9, 15))}
	tasks := []*types.Task{{Title: "early fix", Status: types.TaskStatusDone, UpdatedAt: dayAt(8, 15)}}

	got := firstActivityMinutes(dayStart, dayEnd, tasks, events)
	if got == nil || *got != 8*60+15 {
		t.Fatalf("first activity: want=495 got=%v", got)
	}

	// Timestamps outside the window never count.
	stale := []*types.Task{{Title: "old", UpdatedAt: dayStart.Add(-2 * time.Hour)}}
	if got := firstActivityMinutes(dayStart, dayEnd, stale, nil); got != nil {
		t.Fatalf("out-of-window activity must be ignored, got %v", got)
	}
}
