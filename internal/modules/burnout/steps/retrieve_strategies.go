package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/pulsecheck-backend/internal/data/repos"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/openai"
	pc "github.com/yungbote/pulsecheck-backend/internal/platform/pinecone"
)

const (
	// StrategyNamespace is the vector-store namespace the offline ingestion
	// writes strategy embeddings into (prefix-qualified by the store).
	StrategyNamespace = "strategy"

	retrieveTopK = 20

	// fallbackDistance is the flat synthetic distance assigned to
	// keyword-matched candidates; vector distances carry no meaning there.
	fallbackDistance = 0.5
)

type RetrieveStrategiesDeps struct {
	Log        *logger.Logger
	AI         openai.Client
	Vec        pc.VectorStore
	Strategies repos.StrategyRepo
}

type RetrieveStrategiesInput struct {
	UserID  uuid.UUID
	Issues  []burnout.Issue
	Profile *types.UserProfile
}

type RetrieveStrategiesOutput struct {
	Candidates []burnout.StrategyCandidate `json:"candidates"`

	// Degraded marks the keyword fallback; the analysis records
	// retrieval_fallback.
	Degraded bool `json:"degraded"`
}

// RetrieveStrategies embeds a one-sentence description of the user's
// situation and nearest-neighbor searches the strategy knowledge base. When
// embedding or search fails it degrades to a category keyword match rather
// than failing the run.
func RetrieveStrategies(ctx context.Context, deps RetrieveStrategiesDeps, in RetrieveStrategiesInput) (RetrieveStrategiesOutput, error) {
	out := RetrieveStrategiesOutput{}
	if deps.Log == nil || deps.AI == nil || deps.Vec == nil || deps.Strategies == nil {
		return out, fmt.Errorf("retrieve_strategies: missing deps")
	}
	if in.UserID == uuid.Nil {
		return out, fmt.Errorf("retrieve_strategies: missing user_id")
	}

	query := retrievalQuery(in.Issues, in.Profile)

	vecs, err := deps.AI.Embed(ctx, []string{query})
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		return retrieveFallback(ctx, deps, in, &burnout.ExternalServiceError{Service: "openai", Op: "query embedding", Cause: err})
	}
	if len(vecs) != 1 {
		return retrieveFallback(ctx, deps, in, &burnout.ExternalServiceError{
			Service: "openai",
			Op:      "query embedding",
			Cause:   fmt.Errorf("expected 1 vector, got %d", len(vecs)),
		})
	}

	matches, err := deps.Vec.QueryMatches(ctx, StrategyNamespace, vecs[0], retrieveTopK, nil)
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		return retrieveFallback(ctx, deps, in, &burnout.ExternalServiceError{Service: "vector store", Op: "similarity search", Cause: err})
	}

	candidates, err := hydrateMatches(ctx, deps, matches)
	if err != nil {
		return out, err
	}
	out.Candidates = candidates
	return out, nil
}

// retrievalQuery builds the natural-language needle, ordered dominant issue
// first, with the capability facts that gate strategy prerequisites.
func retrievalQuery(issues []burnout.Issue, profile *types.UserProfile) string {
	phrases := make([]string, 0, 8)
	for _, issue := range issues {
		switch issue.Label {
		case burnout.IssueTaskOverload:
			phrases = append(phrases, "high task overload")
		case burnout.IssueTimeOverload:
			phrases = append(phrases, "working long hours")
		case burnout.IssueMeetingOverload:
			phrases = append(phrases, "high meeting overload")
		case burnout.IssueNegativeSentiment:
			phrases = append(phrases, "negative emotional state")
		}
	}
	if len(phrases) == 0 {
		phrases = append(phrases, "general burnout prevention")
	}

	if profile != nil {
		if profile.CanDelegate {
			phrases = append(phrases, "can delegate")
		} else {
			phrases = append(phrases, "cannot delegate")
		}
		if profile.ManagesTeam {
			phrases = append(phrases, "manages a team")
		}
		if role := strings.TrimSpace(profile.Role); role != "" {
			phrases = append(phrases, "role: "+role)
		}
	} else {
		phrases = append(phrases, "cannot delegate")
	}

	return strings.Join(phrases, "; ")
}

// hydrateMatches resolves vector hits back to strategy rows, preserving
// ascending-distance order. Hits with no surviving row are dropped.
func hydrateMatches(ctx context.Context, deps RetrieveStrategiesDeps, matches []pc.VectorMatch) ([]burnout.StrategyCandidate, error) {
	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		id, err := uuid.Parse(strings.TrimSpace(m.ID))
		if err != nil || id == uuid.Nil {
			deps.Log.Warn("retrieve_strategies: skipping malformed vector id", "vector_id", m.ID)
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []burnout.StrategyCandidate{}, nil
	}

	rows, err := deps.Strategies.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("retrieve_strategies: hydrate strategies: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Strategy, len(rows))
	for _, s := range rows {
		if s != nil {
			byID[s.ID] = s
		}
	}

	out := make([]burnout.StrategyCandidate, 0, len(matches))
	for _, m := range matches {
		id, err := uuid.Parse(strings.TrimSpace(m.ID))
		if err != nil {
			continue
		}
		strat, ok := byID[id]
		if !ok {
			deps.Log.Warn("retrieve_strategies: vector hit without strategy row", "strategy_id", id)
			continue
		}
		out = append(out, burnout.StrategyCandidate{
			Strategy: strat,
			Distance: 1 - m.Score,
		})
	}
	return out, nil
}

// retrieveFallback is the degraded path: category keyword match ordered by
// difficulty then id, flat synthetic distance.
func retrieveFallback(ctx context.Context, deps RetrieveStrategiesDeps, in RetrieveStrategiesInput, cause *burnout.ExternalServiceError) (RetrieveStrategiesOutput, error) {
	out := RetrieveStrategiesOutput{Degraded: true}

	deps.Log.Warn("retrieve_strategies: degrading to category keyword match",
		"user_id", in.UserID,
		"error", cause.Error(),
	)

	categories := burnout.CategoriesForIssues(in.Issues)
	if len(categories) == 0 {
		categories = types.Categories()
	}

	rows, err := deps.Strategies.ListByCategories(ctx, nil, categories, retrieveTopK)
	if err != nil {
		return out, fmt.Errorf("retrieve_strategies: keyword fallback: %w", err)
	}
	out.Candidates = make([]burnout.StrategyCandidate, 0, len(rows))
	for _, s := range rows {
		if s == nil {
			continue
		}
		out.Candidates = append(out.Candidates, burnout.StrategyCandidate{
			Strategy: s,
			Distance: fallbackDistance,
		})
	}
	return out, nil
}
