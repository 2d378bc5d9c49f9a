package steps

import (
	"sort"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
)

// maxRankedStrategies is how many strategies go on to generation.
const maxRankedStrategies = 5

// difficultyMatch weighs strategy difficulty against the risk level: a RED
// user needs quick wins, not a five-step program; GREEN has no preference.
var difficultyMatch = map[string]map[int]float64{
	types.RiskLevelRed:    {1: 1.2, 2: 1.15, 3: 1.0, 4: 0.85, 5: 0.75},
	types.RiskLevelYellow: {1: 1.1, 2: 1.05, 3: 1.0, 4: 0.95, 5: 0.9},
}

const categoryBoost = 1.25

type RankStrategiesInput struct {
	Candidates []burnout.StrategyCandidate
	Level      string
	Issues     []burnout.Issue

	// Capabilities resolved from the profile; absent profile means neither.
	CanDelegate bool
	ManagesTeam bool
}

type RankStrategiesOutput struct {
	Ranked []burnout.RankedStrategy `json:"ranked"`
}

// RankStrategies filters out strategies the user cannot execute, then orders
// the rest by similarity boosted for issue-matched categories and
// level-appropriate difficulty. Pure function; fully deterministic including
// tie order.
func RankStrategies(in RankStrategiesInput) RankStrategiesOutput {
	ranked := make([]burnout.RankedStrategy, 0, len(in.Candidates))
	for _, cand := range in.Candidates {
		if cand.Strategy == nil {
			continue
		}
		prereq := cand.Strategy.PrerequisiteFlags()
		if prereq.RequiresDelegation && !in.CanDelegate {
			continue
		}
		if prereq.RequiresTeam && !in.ManagesTeam {
			continue
		}

		similarity := clamp01(1 - cand.Distance)
		boost := 1.0
		if burnout.CategoryMatchesIssues(cand.Strategy.Category, in.Issues) {
			boost = categoryBoost
		}
		ranked = append(ranked, burnout.RankedStrategy{
			Strategy:  cand.Strategy,
			Relevance: clamp01(similarity * boost * difficultyFactor(in.Level, cand.Strategy.Difficulty)),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Relevance != ranked[j].Relevance {
			return ranked[i].Relevance > ranked[j].Relevance
		}
		if ranked[i].Strategy.Difficulty != ranked[j].Strategy.Difficulty {
			return ranked[i].Strategy.Difficulty < ranked[j].Strategy.Difficulty
		}
		return ranked[i].Strategy.ID.String() < ranked[j].Strategy.ID.String()
	})

	if len(ranked) > maxRankedStrategies {
		ranked = ranked[:maxRankedStrategies]
	}
	return RankStrategiesOutput{Ranked: ranked}
}

func difficultyFactor(level string, difficulty int) float64 {
	byLevel, ok := difficultyMatch[level]
	if !ok {
		return 1.0
	}
	factor, ok := byLevel[difficulty]
	if !ok {
		return 1.0
	}
	return factor
}
