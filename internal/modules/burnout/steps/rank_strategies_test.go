package steps

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
)

func strategyWith(id string, category string, difficulty int, prereq types.StrategyPrerequisites) *types.Strategy {
	return &types.Strategy{
		ID:            uuid.MustParse(id),
		Category:      category,
		Title:         category + " strategy",
		Description:   "a " + category + " technique",
		Difficulty:    difficulty,
		Prerequisites: types.EncodePrerequisites(prereq),
	}
}

func TestRankStrategies_DropsUnsatisfiedPrerequisites(t *testing.T) {
	delegation := strategyWith("11111111-1111-1111-1111-111111111111", types.CategoryDelegation, 2, types.StrategyPrerequisites{RequiresDelegation: true})
	team := strategyWith("22222222-2222-2222-2222-222222222222", types.CategoryMeetingManagement, 2, types.StrategyPrerequisites{RequiresTeam: true})
	open := strategyWith("33333333-3333-3333-3333-333333333333", types.CategoryRecovery, 2, types.StrategyPrerequisites{})

	out := RankStrategies(RankStrategiesInput{
		Candidates: []burnout.StrategyCandidate{
			{Strategy: delegation, Distance: 0.1},
			{Strategy: team, Distance: 0.1},
			{Strategy: open, Distance: 0.4},
		},
		Level:       types.RiskLevelYellow,
		CanDelegate: false,
		ManagesTeam: false,
	})

	if len(out.Ranked) != 1 {
		t.Fatalf("ranked count: want=1 got=%d", len(out.Ranked))
	}
	if out.Ranked[0].Strategy.ID != open.ID {
		t.Fatalf("survivor: want=%s got=%s", open.ID, out.Ranked[0].Strategy.ID)
	}
}

func TestRankStrategies_CapabilitiesUnlockPrerequisites(t *testing.T) {
	delegation := strategyWith("11111111-1111-1111-1111-111111111111", types.CategoryDelegation, 2, types.StrategyPrerequisites{RequiresDelegation: true})
	team := strategyWith("22222222-2222-2222-2222-222222222222", types.CategoryMeetingManagement, 2, types.StrategyPrerequisites{RequiresTeam: true})

	out := RankStrategies(RankStrategiesInput{
		Candidates: []burnout.StrategyCandidate{
			{Strategy: delegation, Distance: 0.2},
			{Strategy: team, Distance: 0.2},
		},
		Level:       types.RiskLevelYellow,
		CanDelegate: true,
		ManagesTeam: true,
	})

	if len(out.Ranked) != 2 {
		t.Fatalf("ranked count: want=2 got=%d", len(out.Ranked))
	}
}

func TestRankStrategies_CategoryBoostBreaksEqualDistance(t *testing.T) {
	meeting := strategyWith("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", types.CategoryMeetingManagement, 3, types.StrategyPrerequisites{})
	timeMgmt := strategyWith("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", types.CategoryTimeManagement, 3, types.StrategyPrerequisites{})

	out := RankStrategies(RankStrategiesInput{
		Candidates: []burnout.StrategyCandidate{
			{Strategy: timeMgmt, Distance: 0.3},
			{Strategy: meeting, Distance: 0.3},
		},
		Level:  types.RiskLevelYellow,
		Issues: []burnout.Issue{{Label: burnout.IssueMeetingOverload, Deviation: 30}},
	})

	if len(out.Ranked) != 2 {
		t.Fatalf("ranked count: want=2 got=%d", len(out.Ranked))
	}
	if out.Ranked[0].Strategy.ID != meeting.ID {
		t.Fatalf("boosted category should rank first: got=%s", out.Ranked[0].Strategy.Category)
	}
	if out.Ranked[0].Relevance <= out.Ranked[1].Relevance {
		t.Fatalf("boost should separate scores: first=%.4f second=%.4f", out.Ranked[0].Relevance, out.Ranked[1].Relevance)
	}
}

func TestRankStrategies_RedLevelFavorsQuickWins(t *testing.T) {
	easy := strategyWith("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", types.CategoryRecovery, 1, types.StrategyPrerequisites{})
	hard := strategyWith("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", types.CategoryRecovery, 5, types.StrategyPrerequisites{})

	out := RankStrategies(RankStrategiesInput{
		Candidates: []burnout.StrategyCandidate{
			{Strategy: hard, Distance: 0.2},
			{Strategy: easy, Distance: 0.2},
		},
		Level: types.RiskLevelRed,
	})

	if out.Ranked[0].Strategy.ID != easy.ID {
		t.Fatalf("red level should prefer difficulty 1: got difficulty %d", out.Ranked[0].Strategy.Difficulty)
	}
	// 0.8 similarity scaled by 1.2 and 0.75 respectively.
	if !withinDelta(out.Ranked[0].Relevance, 0.96, 0.0001) {
		t.Fatalf("easy relevance: want=0.96 got=%.4f", out.Ranked[0].Relevance)
	}
	if !withinDelta(out.Ranked[1].Relevance, 0.6, 0.0001) {
		t.Fatalf("hard relevance: want=0.6 got=%.4f", out.Ranked[1].Relevance)
	}
}

func TestRankStrategies_GreenLevelIgnoresDifficulty(t *testing.T) {
	easy := strategyWith("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", types.CategoryRecovery, 1, types.StrategyPrerequisites{})
	hard := strategyWith("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", types.CategoryRecovery, 5, types.StrategyPrerequisites{})

	out := RankStrategies(RankStrategiesInput{
		Candidates: []burnout.StrategyCandidate{
			{Strategy: hard, Distance: 0.2},
			{Strategy: easy, Distance: 0.2},
		},
		Level: types.RiskLevelGreen,
	})

	if !withinDelta(out.Ranked[0].Relevance, out.Ranked[1].Relevance, 0.0001) {
		t.Fatalf("green level should not scale by difficulty: %.4f vs %.4f", out.Ranked[0].Relevance, out.Ranked[1].Relevance)
	}
	// Equal relevance falls back to lower difficulty first.
	if out.Ranked[0].Strategy.ID != easy.ID {
		t.Fatalf("tie should break toward lower difficulty: got difficulty %d", out.Ranked[0].Strategy.Difficulty)
	}
}

func TestRankStrategies_TopFiveDeterministicTies(t *testing.T) {
	ids := []string{
		"66666666-6666-6666-6666-666666666666",
		"11111111-1111-1111-1111-111111111111",
		"44444444-4444-4444-4444-444444444444",
		"22222222-2222-2222-2222-222222222222",
		"55555555-5555-5555-5555-555555555555",
		"33333333-3333-3333-3333-333333333333",
		"77777777-7777-7777-7777-777777777777",
	}
	candidates := make([]burnout.StrategyCandidate, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, burnout.StrategyCandidate{
			Strategy: strategyWith(id, types.CategoryRecovery, 3, types.StrategyPrerequisites{}),
			Distance: 0.25,
		})
	}

	in := RankStrategiesInput{Candidates: candidates, Level: types.RiskLevelGreen}
	first := RankStrategies(in)
	if len(first.Ranked) != 5 {
		t.Fatalf("ranked count: want=5 got=%d", len(first.Ranked))
	}
	for i := 0; i < len(first.Ranked)-1; i++ {
		if first.Ranked[i].Strategy.ID.String() >= first.Ranked[i+1].Strategy.ID.String() {
			t.Fatalf("tie order not lexicographic at %d: %s then %s", i, first.Ranked[i].Strategy.ID, first.Ranked[i+1].Strategy.ID)
		}
	}

	again := RankStrategies(in)
	for i := range first.Ranked {
		if first.Ranked[i].Strategy.ID != again.Ranked[i].Strategy.ID {
			t.Fatalf("ordering not deterministic at %d: %s vs %s", i, first.Ranked[i].Strategy.ID, again.Ranked[i].Strategy.ID)
		}
	}
}

func TestRankStrategies_RelevanceClampedToOne(t *testing.T) {
	strat := strategyWith("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", types.CategoryMeetingManagement, 1, types.StrategyPrerequisites{})

	out := RankStrategies(RankStrategiesInput{
		Candidates: []burnout.StrategyCandidate{{Strategy: strat, Distance: 0}},
		Level:      types.RiskLevelRed,
		Issues:     []burnout.Issue{{Label: burnout.IssueMeetingOverload, Deviation: 40}},
	})

	// similarity 1.0 times boost 1.25 times difficulty 1.2 clamps to 1.
	if out.Ranked[0].Relevance != 1 {
		t.Fatalf("relevance clamp: want=1 got=%.4f", out.Ranked[0].Relevance)
	}
}
