package burnout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/pulsecheck-backend/internal/data/repos/testutil"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
)

func TestStrategyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewStrategyRepo(db, testutil.Logger(t))

	hard := &types.Strategy{
		ID:          uuid.New(),
		Category:    types.CategoryDelegation,
		Title:       "restructure team ownership",
		Description: "d",
		ActionSteps: types.EncodeStringList([]string{"s"}),
		Prerequisites: types.EncodePrerequisites(types.StrategyPrerequisites{
			RequiresDelegation: true,
			RequiresTeam:       true,
		}),
		Difficulty: 5,
	}
	easy := &types.Strategy{
		ID:            uuid.New(),
		Category:      types.CategoryDelegation,
		Title:         "hand off one recurring task",
		Description:   "d",
		ActionSteps:   types.EncodeStringList([]string{"s"}),
		Prerequisites: types.EncodePrerequisites(types.StrategyPrerequisites{RequiresDelegation: true}),
		Difficulty:    2,
	}
	other := &types.Strategy{
		ID:            uuid.New(),
		Category:      types.CategoryRecovery,
		Title:         "micro-breaks",
		Description:   "d",
		ActionSteps:   types.EncodeStringList([]string{"s"}),
		Prerequisites: types.EncodePrerequisites(types.StrategyPrerequisites{}),
		Difficulty:    1,
	}

	created, err := repo.Create(ctx, tx, []*types.Strategy{hard, easy, other})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("Create: expected 3, got %d", len(created))
	}

	byID, err := repo.GetByIDs(ctx, tx, []uuid.UUID{easy.ID, other.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(byID) != 2 {
		t.Fatalf("GetByIDs: expected 2, got %d", len(byID))
	}

	delegation, err := repo.ListByCategories(ctx, tx, []string{types.CategoryDelegation}, 20)
	if err != nil {
		t.Fatalf("ListByCategories: %v", err)
	}
	if len(delegation) != 2 || delegation[0].ID != easy.ID {
		t.Fatalf("ListByCategories: expected difficulty ASC, got %d rows", len(delegation))
	}
	if !delegation[1].PrerequisiteFlags().RequiresTeam {
		t.Fatalf("ListByCategories: prerequisites did not round-trip")
	}

	both, err := repo.ListByCategories(ctx, tx, []string{types.CategoryDelegation, types.CategoryRecovery}, 2)
	if err != nil {
		t.Fatalf("ListByCategories limit: %v", err)
	}
	if len(both) != 2 {
		t.Fatalf("ListByCategories limit: expected 2, got %d", len(both))
	}
}
