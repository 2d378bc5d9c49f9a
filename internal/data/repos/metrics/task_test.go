package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/pulsecheck-backend/internal/data/repos/testutil"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
)

func TestTaskRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewTaskRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "taskrepo@example.com")
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	dueSoon := &types.Task{
		ID:               uuid.New(),
		UserID:           u.ID,
		Title:            "review design doc",
		Status:           types.TaskStatusOpen,
		EstimatedMinutes: 45,
		DueAt:            ptrTime(now.Add(2 * time.Hour)),
	}
	noDue := &types.Task{
		ID:     uuid.New(),
		UserID: u.ID,
		Title:  "refactor importer",
		Status: types.TaskStatusInProgress,
	}
	done := &types.Task{
		ID:          uuid.New(),
		UserID:      u.ID,
		Title:       "ship release",
		Status:      types.TaskStatusDone,
		CompletedAt: ptrTime(now.Add(-1 * time.Hour)),
	}
	optional := &types.Task{
		ID:         uuid.New(),
		UserID:     u.ID,
		Title:      "read newsletter",
		Status:     types.TaskStatusOpen,
		IsOptional: true,
		DueAt:      ptrTime(now.Add(6 * time.Hour)),
	}

	created, err := repo.Create(ctx, tx, []*types.Task{dueSoon, noDue, done, optional})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("Create: expected 4, got %d", len(created))
	}

	// ListActive keeps optional rows; only terminal statuses drop out.
	active, err := repo.ListActive(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("ListActive: expected 3, got %d", len(active))
	}
	if active[0].ID != dueSoon.ID || active[1].ID != optional.ID || active[2].ID != noDue.ID {
		t.Fatalf("ListActive: expected due_at ASC with nulls last, got %v, %v, %v",
			active[0].Title, active[1].Title, active[2].Title)
	}

	due, err := repo.ListDueBetween(ctx, tx, u.ID, now, now.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("ListDueBetween: %v", err)
	}
	if len(due) != 1 || due[0].ID != dueSoon.ID {
		t.Fatalf("ListDueBetween: expected only the 2h task, got %d rows", len(due))
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
