package burnout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/pulsecheck-backend/internal/data/repos/testutil"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
)

func TestRecommendationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRecommendationRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "recommendationrepo@example.com")
	snap := testutil.SeedSnapshot(t, ctx, tx, u.ID, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	analysis := testutil.SeedAnalysis(t, ctx, tx, u.ID, snap.ID)
	strat := testutil.SeedStrategy(t, ctx, tx, types.CategoryRecovery, 1)

	first := &types.Recommendation{
		ID:             uuid.New(),
		UserID:         u.ID,
		AnalysisID:     analysis.ID,
		StrategyID:     strat.ID,
		Title:          "protect your evenings",
		Description:    "d",
		Rationale:      "time pressure dominates this week",
		ActionSteps:    types.EncodeStringList([]string{"block 6pm onward"}),
		RelevanceScore: 0.9,
		Status:         types.RecommendationStatusPending,
	}
	second := &types.Recommendation{
		ID:             uuid.New(),
		UserID:         u.ID,
		AnalysisID:     analysis.ID,
		StrategyID:     strat.ID,
		Title:          "one meeting-free morning",
		Description:    "d",
		ActionSteps:    types.EncodeStringList([]string{"decline recurring syncs"}),
		RelevanceScore: 0.7,
		Status:         types.RecommendationStatusPending,
	}
	if _, err := repo.CreateBatch(ctx, tx, []*types.Recommendation{second, first}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	rows, err := repo.ListByAnalysis(ctx, tx, u.ID, analysis.ID)
	if err != nil {
		t.Fatalf("ListByAnalysis: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != first.ID {
		t.Fatalf("ListByAnalysis: expected relevance DESC, got %d rows", len(rows))
	}

	got, err := repo.GetForUser(ctx, tx, u.ID, first.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if steps := got.ActionStepList(); len(steps) != 1 || steps[0] != "block 6pm onward" {
		t.Fatalf("GetForUser: action steps = %v", steps)
	}

	// Only a pending row can transition, and only once.
	resolvedAt := time.Now().UTC()
	affected, err := repo.UpdateStatus(ctx, tx, first.ID, types.RecommendationStatusApplied, resolvedAt)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if affected != 1 {
		t.Fatalf("UpdateStatus: expected 1 affected, got %d", affected)
	}
	affected, err = repo.UpdateStatus(ctx, tx, first.ID, types.RecommendationStatusSkipped, resolvedAt)
	if err != nil {
		t.Fatalf("UpdateStatus repeat: %v", err)
	}
	if affected != 0 {
		t.Fatalf("UpdateStatus repeat: expected 0 affected, got %d", affected)
	}

	applied, err := repo.GetForUser(ctx, tx, u.ID, first.ID)
	if err != nil {
		t.Fatalf("GetForUser applied: %v", err)
	}
	if applied.Status != types.RecommendationStatusApplied || applied.ResolvedAt == nil {
		t.Fatalf("GetForUser applied: status=%s resolved_at=%v", applied.Status, applied.ResolvedAt)
	}

	// Regeneration clears pending rows but keeps resolved history.
	if err := repo.DeletePendingByAnalysis(ctx, tx, analysis.ID); err != nil {
		t.Fatalf("DeletePendingByAnalysis: %v", err)
	}
	remaining, err := repo.ListByAnalysis(ctx, tx, u.ID, analysis.ID)
	if err != nil {
		t.Fatalf("ListByAnalysis after delete: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != first.ID {
		t.Fatalf("ListByAnalysis after delete: expected only the applied row, got %d", len(remaining))
	}
}
