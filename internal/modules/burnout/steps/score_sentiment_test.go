package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

func journalEntry(daysAgo int, source, content string) *types.JournalEntry {
	return &types.JournalEntry{
		ID:         uuid.New(),
		Source:     source,
		Content:    content,
		RecordedAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
	}
}

func TestScoreSentiment_ClassifiesJournalText(t *testing.T) {
	ai := &fakeAI{responses: []fakeGenResponse{
		{obj: map[string]any{"polarity": -0.6, "intensity": 1.0, "dominant_emotion": "exhaustion"}},
	}}
	deps := ScoreSentimentDeps{Log: logger.NewNop(), AI: ai}

	out, err := ScoreSentiment(context.Background(), deps, ScoreSentimentInput{
		UserID:  uuid.New(),
		Entries: []*types.JournalEntry{journalEntry(0, types.JournalSourceDiary, "Another 11pm finish. I cannot keep doing this.")},
	})
	if err != nil {
		t.Fatalf("ScoreSentiment: %v", err)
	}
	r := out.Result
	if r.Polarity != -0.6 || r.Intensity != burnout.IntensityHigh || r.DominantEmotion != "exhaustion" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.Degraded {
		t.Fatalf("clean classification must not be degraded")
	}
	if ai.genCalls != 1 {
		t.Fatalf("call count: want=1 got=%d", ai.genCalls)
	}
}

func TestScoreSentiment_EmptyTextShortCircuits(t *testing.T) {
	ai := &fakeAI{}
	deps := ScoreSentimentDeps{Log: logger.NewNop(), AI: ai}

	out, err := ScoreSentiment(context.Background(), deps, ScoreSentimentInput{
		UserID:  uuid.New(),
		Entries: []*types.JournalEntry{journalEntry(1, types.JournalSourceCheckin, "   ")},
	})
	if err != nil {
		t.Fatalf("ScoreSentiment: %v", err)
	}
	if out.Result != burnout.NeutralSentiment(true) {
		t.Fatalf("want neutral degraded default, got %+v", out.Result)
	}
	if ai.genCalls != 0 {
		t.Fatalf("empty text must not call the model: %d calls", ai.genCalls)
	}
}

func TestScoreSentiment_RetriesOnceOnInvalidOutput(t *testing.T) {
	ai := &fakeAI{responses: []fakeGenResponse{
		{obj: map[string]any{"polarity": -0.4, "intensity": 0.5, "dominant_emotion": "worry"}},
		{obj: map[string]any{"polarity": -0.4, "intensity": 0.6, "dominant_emotion": "worry"}},
	}}
	deps := ScoreSentimentDeps{Log: logger.NewNop(), AI: ai}

	out, err := ScoreSentiment(context.Background(), deps, ScoreSentimentInput{
		UserID:  uuid.New(),
		Entries: []*types.JournalEntry{journalEntry(0, types.JournalSourceDiary, "worried about the deadline")},
	})
	if err != nil {
		t.Fatalf("ScoreSentiment: %v", err)
	}
	if ai.genCalls != 2 {
		t.Fatalf("call count: want=2 got=%d", ai.genCalls)
	}
	if out.Result.Degraded {
		t.Fatalf("second attempt succeeded, result must not be degraded")
	}
	if out.Result.Intensity != burnout.IntensityMedium {
		t.Fatalf("intensity: want=0.6 got=%v", out.Result.Intensity)
	}
}

func TestScoreSentiment_TwiceInvalidFallsBackToNeutral(t *testing.T) {
	ai := &fakeAI{responses: []fakeGenResponse{
		{obj: map[string]any{"polarity": -3.0, "intensity": 0.6, "dominant_emotion": "worry"}},
		{obj: map[string]any{"polarity": -0.4, "intensity": 0.6, "dominant_emotion": "melancholy"}},
	}}
	deps := ScoreSentimentDeps{Log: logger.NewNop(), AI: ai}

	out, err := ScoreSentiment(context.Background(), deps, ScoreSentimentInput{
		UserID:  uuid.New(),
		Entries: []*types.JournalEntry{journalEntry(0, types.JournalSourceDiary, "long week")},
	})
	if err != nil {
		t.Fatalf("ScoreSentiment: %v", err)
	}
	if ai.genCalls != 2 {
		t.Fatalf("call count: want=2 got=%d", ai.genCalls)
	}
	if out.Result != burnout.NeutralSentiment(true) {
		t.Fatalf("want neutral degraded default, got %+v", out.Result)
	}
}

func TestScoreSentiment_ExternalFailureDegradesWithoutRetry(t *testing.T) {
	ai := &fakeAI{responses: []fakeGenResponse{
		{err: fmt.Errorf("503 from provider")},
	}}
	deps := ScoreSentimentDeps{Log: logger.NewNop(), AI: ai}

	out, err := ScoreSentiment(context.Background(), deps, ScoreSentimentInput{
		UserID:  uuid.New(),
		Entries: []*types.JournalEntry{journalEntry(0, types.JournalSourceDiary, "fine I guess")},
	})
	if err != nil {
		t.Fatalf("ScoreSentiment: %v", err)
	}
	// The client retries transient failures itself; the stage degrades at once.
	if ai.genCalls != 1 {
		t.Fatalf("call count: want=1 got=%d", ai.genCalls)
	}
	if out.Result != burnout.NeutralSentiment(true) {
		t.Fatalf("want neutral degraded default, got %+v", out.Result)
	}
}

func TestScoreSentiment_CancellationPropagates(t *testing.T) {
	ai := &fakeAI{responses: []fakeGenResponse{
		{err: context.Canceled},
	}}
	deps := ScoreSentimentDeps{Log: logger.NewNop(), AI: ai}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScoreSentiment(ctx, deps, ScoreSentimentInput{
		UserID:  uuid.New(),
		Entries: []*types.JournalEntry{journalEntry(0, types.JournalSourceDiary, "text")},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestJournalText_NewestFirstWithDates(t *testing.T) {
	entries := []*types.JournalEntry{
		journalEntry(0, types.JournalSourceDiary, "today was rough"),
		journalEntry(2, types.JournalSourceCheckin, "feeling ok"),
	}

	text := journalText(entries)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("line count: want=2 got=%d (%q)", len(lines), text)
	}
	if !strings.HasPrefix(lines[0], "2025-06-10 (diary): today was rough") {
		t.Fatalf("first line: got=%q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2025-06-08 (checkin): feeling ok") {
		t.Fatalf("second line: got=%q", lines[1])
	}
}

func TestJournalText_BoundedToRuneBudget(t *testing.T) {
	long := strings.Repeat("а", 3000) // two-byte runes; the bound counts runes
	entries := []*types.JournalEntry{
		journalEntry(0, types.JournalSourceDiary, long),
		journalEntry(1, types.JournalSourceDiary, long),
		journalEntry(2, types.JournalSourceDiary, long),
		journalEntry(3, types.JournalSourceDiary, long),
	}

	text := journalText(entries)
	if n := len([]rune(text)); n > 8100 {
		t.Fatalf("rune budget exceeded: %d runes", n)
	}
	// Newest entry survives intact; the oldest is what gets cut.
	if !strings.Contains(text, "2025-06-10") {
		t.Fatalf("newest entry missing from bounded text")
	}
	if strings.Contains(text, "2025-06-07") {
		t.Fatalf("oldest entry should have been cut by the budget")
	}
}
