package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout/prompts"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/openai"
)

// generateConcurrency bounds parallel generation calls; the per-strategy
// calls are independent but share one provider rate limit.
const generateConcurrency = 3

type GenerateRecommendationsDeps struct {
	Log *logger.Logger
	AI  openai.Client
}

type GenerateRecommendationsInput struct {
	UserID uuid.UUID
	Ranked []burnout.RankedStrategy

	Level         string
	FinalScore    float64
	PrimaryIssues []burnout.Issue

	Profile *types.UserProfile

	// The user's concrete day, for grounding. The prompt instructs the model
	// to reference nothing outside these.
	TasksToday  []*types.Task
	EventsToday []*types.CalendarEvent
}

type GenerateRecommendationsOutput struct {
	// Recommendations carry strategy, content, relevance, and status pending;
	// the caller stamps user and analysis ids at persistence time. Order
	// follows the ranking, with dropped strategies omitted.
	Recommendations []*types.Recommendation `json:"recommendations"`
}

// GenerateRecommendations grounds each ranked strategy in the user's actual
// day. Each strategy succeeds, degrades to the strategy's generic content, or
// is dropped, independently of its siblings.
func GenerateRecommendations(ctx context.Context, deps GenerateRecommendationsDeps, in GenerateRecommendationsInput) (GenerateRecommendationsOutput, error) {
	out := GenerateRecommendationsOutput{Recommendations: []*types.Recommendation{}}
	if deps.Log == nil || deps.AI == nil {
		return out, fmt.Errorf("generate_recommendations: missing deps")
	}
	if in.UserID == uuid.Nil {
		return out, fmt.Errorf("generate_recommendations: missing user_id")
	}
	if len(in.Ranked) == 0 {
		return out, nil
	}

	shared := prompts.Input{
		ScheduleToday:   formatEvents(in.EventsToday),
		TasksToday:      formatTasks(in.TasksToday),
		ProfileSummary:  profileSummary(in.Profile),
		AnalysisSummary: analysisSummary(in.Level, in.FinalScore, in.PrimaryIssues),
	}

	results := make([]*types.Recommendation, len(in.Ranked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generateConcurrency)
	for i, ranked := range in.Ranked {
		i, ranked := i, ranked
		g.Go(func() error {
			rec, err := generateOne(gctx, deps, in.UserID, ranked, shared)
			if err != nil {
				return err
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	for _, rec := range results {
		if rec != nil {
			out.Recommendations = append(out.Recommendations, rec)
		}
	}
	return out, nil
}

// generateOne runs the grounding call for a single strategy. A nil result
// with nil error means the strategy was dropped after an external failure.
func generateOne(ctx context.Context, deps GenerateRecommendationsDeps, userID uuid.UUID, ranked burnout.RankedStrategy, shared prompts.Input) (*types.Recommendation, error) {
	strat := ranked.Strategy
	if strat == nil {
		return nil, nil
	}

	in := shared
	in.StrategyTitle = strat.Title
	in.StrategyDescription = strat.Description
	in.StrategySteps = formatSteps(strat.ActionStepList())

	prompt, err := prompts.Build(prompts.PromptRecommendationGeneration, in)
	if err != nil {
		return nil, fmt.Errorf("generate_recommendations: build prompt: %w", err)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		obj, genErr := deps.AI.GenerateJSON(ctx, prompt.System, prompt.User, prompt.SchemaName, prompt.Schema)
		if genErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			esErr := &burnout.ExternalServiceError{Service: "openai", Op: "recommendation generation", Cause: genErr}
			deps.Log.Warn("generate_recommendations: dropping strategy after generation failure",
				"user_id", userID,
				"strategy_id", strat.ID,
				"prompt_fingerprint", prompt.Fingerprint(),
				"error", esErr.Error(),
			)
			return nil, nil
		}

		parsed, decErr := prompts.DecodeRecommendation(obj)
		if decErr == nil {
			return &types.Recommendation{
				StrategyID:     strat.ID,
				Title:          parsed.Title,
				Description:    parsed.Description,
				Rationale:      parsed.Rationale,
				ActionSteps:    types.EncodeStringList(parsed.ActionSteps),
				RelevanceScore: ranked.Relevance,
				Status:         types.RecommendationStatusPending,
			}, nil
		}

		var vErr *burnout.ValidationError
		if !errors.As(decErr, &vErr) {
			return nil, fmt.Errorf("generate_recommendations: decode: %w", decErr)
		}
		deps.Log.Warn("generate_recommendations: invalid generator output",
			"user_id", userID,
			"strategy_id", strat.ID,
			"attempt", attempt,
			"prompt_fingerprint", prompt.Fingerprint(),
			"error", vErr.Error(),
		)
	}

	// Twice-invalid output: fall back to the strategy's generic content.
	return &types.Recommendation{
		StrategyID:     strat.ID,
		Title:          strat.Title,
		Description:    strat.Description,
		Rationale:      "General guidance for " + strings.ReplaceAll(strat.Category, "_", " ") + "; not personalized to today's schedule.",
		ActionSteps:    types.EncodeStringList(strat.ActionStepList()),
		RelevanceScore: ranked.Relevance,
		Status:         types.RecommendationStatusPending,
		Degraded:       true,
	}, nil
}

func formatSteps(steps []string) string {
	if len(steps) == 0 {
		return "- (none listed)"
	}
	var b strings.Builder
	for _, s := range steps {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatEvents(events []*types.CalendarEvent) string {
	if len(events) == 0 {
		return "(no events today)"
	}
	var b strings.Builder
	for _, e := range events {
		if e == nil {
			continue
		}
		b.WriteString("- ")
		b.WriteString(e.Title)
		b.WriteString(" (")
		b.WriteString(e.StartsAt.Format("15:04"))
		b.WriteString("-")
		b.WriteString(e.EndsAt.Format("15:04"))
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTasks(tasks []*types.Task) string {
	if len(tasks) == 0 {
		return "(no tasks due today)"
	}
	var b strings.Builder
	for _, t := range tasks {
		if t == nil {
			continue
		}
		b.WriteString("- ")
		b.WriteString(t.Title)
		if t.DueAt != nil {
			b.WriteString(" (due ")
			b.WriteString(t.DueAt.Format("15:04"))
			b.WriteString(")")
		}
		fmt.Fprintf(&b, " priority %d\n", t.Priority)
	}
	return strings.TrimRight(b.String(), "\n")
}

func profileSummary(profile *types.UserProfile) string {
	if profile == nil {
		return "No profile on record; assume they cannot delegate and do not manage a team."
	}
	parts := make([]string, 0, 4)
	if role := strings.TrimSpace(profile.Role); role != "" {
		parts = append(parts, "Role: "+role)
	}
	if s := strings.TrimSpace(profile.Seniority); s != "" {
		parts = append(parts, "Seniority: "+s)
	}
	if profile.CanDelegate {
		parts = append(parts, "Can delegate tasks.")
	} else {
		parts = append(parts, "Cannot delegate tasks.")
	}
	if profile.ManagesTeam {
		parts = append(parts, "Manages a team.")
	}
	constraints := types.DecodeProfileConstraints(profile.Constraints)
	if constraints.MaxDailyMeetingHours > 0 {
		parts = append(parts, fmt.Sprintf("Caps meetings at %.1f hours per day.", constraints.MaxDailyMeetingHours))
	}
	if len(constraints.ProtectedHours) > 0 {
		parts = append(parts, "Protected hours: "+strings.Join(constraints.ProtectedHours, ", ")+".")
	}
	return strings.Join(parts, " ")
}

func analysisSummary(level string, finalScore float64, issues []burnout.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Burnout risk level %s (score %.0f of 100).", level, finalScore)
	if len(issues) > 0 {
		labels := make([]string, 0, len(issues))
		for _, issue := range issues {
			labels = append(labels, strings.ReplaceAll(issue.Label, "_", " "))
		}
		b.WriteString(" Primary issues: ")
		b.WriteString(strings.Join(labels, ", "))
		b.WriteString(".")
	}
	return b.String()
}
