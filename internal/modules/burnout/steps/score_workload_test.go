package steps

import (
	"errors"
	"math"
	"testing"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
)

func withinDelta(got, want, delta float64) bool {
	return math.Abs(got-want) <= delta
}

func TestScoreWorkload_OverloadedDay(t *testing.T) {
	// 47 demands against a baseline of 30, 10h worked against 8, 6 meeting
	// hours against a 2-meeting norm.
	in := ScoreWorkloadInput{
		Snapshot: &types.MetricSnapshot{
			ActiveTasks:     40,
			OverdueTasks:    7,
			WorkHours:       10,
			MeetingHours:    6,
			MeetingCount:    6,
			BackToBackCount: 0,
		},
		Baseline: burnout.Baseline{
			AvgActiveTasks: 30,
			AvgWorkHours:   8,
			AvgMeetings:    2,
			SampleDays:     14,
		},
	}

	out, err := ScoreWorkload(in)
	if err != nil {
		t.Fatalf("ScoreWorkload: %v", err)
	}
	if !withinDelta(out.Task, 82.67, 0.01) {
		t.Fatalf("task component: want=82.67 got=%.4f", out.Task)
	}
	if !withinDelta(out.Time, 63.33, 0.01) {
		t.Fatalf("time component: want=63.33 got=%.4f", out.Time)
	}
	if out.Meeting != 100 {
		t.Fatalf("meeting component: want=100 got=%.4f", out.Meeting)
	}
	if !withinDelta(out.Total, 80.13, 0.01) {
		t.Fatalf("total: want=80.13 got=%.4f", out.Total)
	}
	if out.Total <= 70 {
		t.Fatalf("overloaded day should score above 70, got=%.4f", out.Total)
	}
}

func TestScoreWorkload_CalmDay(t *testing.T) {
	in := ScoreWorkloadInput{
		Snapshot: &types.MetricSnapshot{
			ActiveTasks:  10,
			OverdueTasks: 0,
			WorkHours:    7,
			MeetingHours: 1,
			MeetingCount: 1,
		},
		Baseline: burnout.Baseline{
			AvgActiveTasks: 12,
			AvgWorkHours:   8,
			AvgMeetings:    2,
			SampleDays:     21,
		},
	}

	out, err := ScoreWorkload(in)
	if err != nil {
		t.Fatalf("ScoreWorkload: %v", err)
	}
	if !withinDelta(out.Task, 41.67, 0.01) {
		t.Fatalf("task component: want=41.67 got=%.4f", out.Task)
	}
	if !withinDelta(out.Time, 43.75, 0.01) {
		t.Fatalf("time component: want=43.75 got=%.4f", out.Time)
	}
	if !withinDelta(out.Meeting, 32.5, 0.01) {
		t.Fatalf("meeting component: want=32.5 got=%.4f", out.Meeting)
	}
	if !withinDelta(out.Total, 39.75, 0.01) {
		t.Fatalf("total: want=39.75 got=%.4f", out.Total)
	}
}

func TestScoreWorkload_ComponentsStayInRange(t *testing.T) {
	snapshots := []*types.MetricSnapshot{
		{},
		{ActiveTasks: 1000, OverdueTasks: 500, WorkHours: 16, MeetingHours: 12, BackToBackCount: 40},
		{ActiveTasks: 1, WorkHours: 0.25, MeetingHours: 0.1},
	}
	baselines := []burnout.Baseline{
		{},
		burnout.DefaultBaseline(0),
		{AvgActiveTasks: 1, AvgWorkHours: 1, AvgMeetings: 1, SampleDays: 30},
	}

	for i, snap := range snapshots {
		for j, base := range baselines {
			out, err := ScoreWorkload(ScoreWorkloadInput{Snapshot: snap, Baseline: base})
			if snap.ActiveTasks == 0 && snap.OverdueTasks == 0 && base == (burnout.Baseline{}) {
				if !errors.Is(err, burnout.ErrDataUnavailable) {
					t.Fatalf("taskless snapshot without baseline should be unavailable at [%d,%d], got %v", i, j, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("ScoreWorkload[%d,%d]: %v", i, j, err)
			}
			for name, v := range map[string]float64{"task": out.Task, "time": out.Time, "meeting": out.Meeting, "total": out.Total} {
				if v < 0 || v > 100 {
					t.Fatalf("component %s out of range at [%d,%d]: %.4f", name, i, j, v)
				}
			}
		}
	}
}

func TestScoreWorkload_Deterministic(t *testing.T) {
	in := ScoreWorkloadInput{
		Snapshot: &types.MetricSnapshot{ActiveTasks: 17, OverdueTasks: 3, WorkHours: 9.5, MeetingHours: 4, BackToBackCount: 2},
		Baseline: burnout.Baseline{AvgActiveTasks: 11, AvgWorkHours: 7.5, AvgMeetings: 3, SampleDays: 9},
	}

	first, err := ScoreWorkload(in)
	if err != nil {
		t.Fatalf("ScoreWorkload: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ScoreWorkload(in)
		if err != nil {
			t.Fatalf("ScoreWorkload repeat %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("non-deterministic output: first=%+v repeat=%+v", first, again)
		}
	}
}

func TestScoreWorkload_ZeroBaselineUsesDefaults(t *testing.T) {
	snap := &types.MetricSnapshot{ActiveTasks: 10, WorkHours: 8, MeetingHours: 3}

	fromZero, err := ScoreWorkload(ScoreWorkloadInput{Snapshot: snap})
	if err != nil {
		t.Fatalf("ScoreWorkload zero baseline: %v", err)
	}
	fromDefaults, err := ScoreWorkload(ScoreWorkloadInput{Snapshot: snap, Baseline: burnout.DefaultBaseline(0)})
	if err != nil {
		t.Fatalf("ScoreWorkload default baseline: %v", err)
	}
	if fromZero != fromDefaults {
		t.Fatalf("zero baseline should behave like defaults: zero=%+v defaults=%+v", fromZero, fromDefaults)
	}
	// 10 tasks, 8 hours, 3 meeting-hours are exactly the default day.
	if fromZero.Task != 50 || fromZero.Time != 50 || fromZero.Meeting != 50 || fromZero.Total != 50 {
		t.Fatalf("default-shaped day should score 50 across the board: %+v", fromZero)
	}
}

func TestScoreWorkload_BackToBackInflatesMeetingComposite(t *testing.T) {
	base := burnout.Baseline{AvgActiveTasks: 10, AvgWorkHours: 8, AvgMeetings: 3, SampleDays: 10}
	quiet := &types.MetricSnapshot{ActiveTasks: 5, WorkHours: 6, MeetingHours: 2.4}
	packed := &types.MetricSnapshot{ActiveTasks: 5, WorkHours: 6, MeetingHours: 2.4, BackToBackCount: 4}
	saturated := &types.MetricSnapshot{ActiveTasks: 5, WorkHours: 6, MeetingHours: 2.4, BackToBackCount: 40}
	capped := &types.MetricSnapshot{ActiveTasks: 5, WorkHours: 6, MeetingHours: 2.4, BackToBackCount: 5}

	quietOut, _ := ScoreWorkload(ScoreWorkloadInput{Snapshot: quiet, Baseline: base})
	packedOut, _ := ScoreWorkload(ScoreWorkloadInput{Snapshot: packed, Baseline: base})
	saturatedOut, _ := ScoreWorkload(ScoreWorkloadInput{Snapshot: saturated, Baseline: base})
	cappedOut, _ := ScoreWorkload(ScoreWorkloadInput{Snapshot: capped, Baseline: base})

	if packedOut.Meeting <= quietOut.Meeting {
		t.Fatalf("back-to-back pairs should raise the meeting component: quiet=%.4f packed=%.4f", quietOut.Meeting, packedOut.Meeting)
	}
	if saturatedOut.Meeting != cappedOut.Meeting {
		t.Fatalf("back-to-back influence should cap at 5 pairs: capped=%.4f saturated=%.4f", cappedOut.Meeting, saturatedOut.Meeting)
	}
}

func TestScoreWorkload_NilSnapshot(t *testing.T) {
	_, err := ScoreWorkload(ScoreWorkloadInput{Baseline: burnout.DefaultBaseline(0)})
	if !errors.Is(err, burnout.ErrDataUnavailable) {
		t.Fatalf("want ErrDataUnavailable, got %v", err)
	}
}

func TestScoreWorkload_NoTaskDataAndNoBaseline(t *testing.T) {
	_, err := ScoreWorkload(ScoreWorkloadInput{Snapshot: &types.MetricSnapshot{WorkHours: 0}})
	if !errors.Is(err, burnout.ErrDataUnavailable) {
		t.Fatalf("want ErrDataUnavailable, got %v", err)
	}

	// Either side present is enough to score.
	if _, err := ScoreWorkload(ScoreWorkloadInput{Snapshot: &types.MetricSnapshot{ActiveTasks: 1}}); err != nil {
		t.Fatalf("task data without baseline should score: %v", err)
	}
	if _, err := ScoreWorkload(ScoreWorkloadInput{Snapshot: &types.MetricSnapshot{}, Baseline: burnout.DefaultBaseline(9)}); err != nil {
		t.Fatalf("baseline without task data should score: %v", err)
	}
}

func TestScoreRatio_CurveAnchors(t *testing.T) {
	anchors := []struct {
		r    float64
		want float64
	}{
		{-1, 20},
		{0, 20},
		{0.4, 30},
		{0.8, 40},
		{1.0, 50},
		{1.2, 60},
		{1.35, 70},
		{1.5, 80},
		{1.75, 90},
		{2.0, 100},
		{50, 100},
	}
	for _, a := range anchors {
		if got := scoreRatio(a.r); !withinDelta(got, a.want, 0.0001) {
			t.Fatalf("scoreRatio(%.2f): want=%.2f got=%.4f", a.r, a.want, got)
		}
	}
}
