package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, canDelegate, managesTeam bool) *types.UserProfile {
	tb.Helper()
	p := &types.UserProfile{
		ID:          uuid.New(),
		UserID:      userID,
		Role:        "engineer",
		Seniority:   "senior",
		CanDelegate: canDelegate,
		ManagesTeam: managesTeam,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedSnapshot(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, periodStart time.Time) *types.MetricSnapshot {
	tb.Helper()
	s := &types.MetricSnapshot{
		ID:           uuid.New(),
		UserID:       userID,
		PeriodStart:  periodStart,
		PeriodEnd:    periodStart.Add(24 * time.Hour),
		ActiveTasks:  8,
		WorkHours:    7.5,
		MeetingCount: 3,
		MeetingHours: 2.5,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed snapshot: %v", err)
	}
	return s
}

func SeedStrategy(tb testing.TB, ctx context.Context, tx *gorm.DB, category string, difficulty int) *types.Strategy {
	tb.Helper()
	s := &types.Strategy{
		ID:            uuid.New(),
		Category:      category,
		Title:         "strategy",
		Description:   "desc",
		ActionSteps:   types.EncodeStringList([]string{"step one"}),
		Prerequisites: types.EncodePrerequisites(types.StrategyPrerequisites{}),
		Difficulty:    difficulty,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed strategy: %v", err)
	}
	return s
}

func SeedAnalysis(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, snapshotID uuid.UUID) *types.BurnoutAnalysis {
	tb.Helper()
	a := &types.BurnoutAnalysis{
		ID:              uuid.New(),
		UserID:          userID,
		SnapshotID:      snapshotID,
		FinalScore:      55,
		Level:           types.RiskLevelYellow,
		WorkloadScore:   60,
		TaskScore:       50,
		TimeScore:       70,
		MeetingScore:    55,
		SentimentScore:  45,
		DominantEmotion: "neutral",
		PrimaryIssues:   types.EncodeStringList([]string{"time_overload"}),
		DegradedReasons: types.EncodeStringList(nil),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed analysis: %v", err)
	}
	return a
}
