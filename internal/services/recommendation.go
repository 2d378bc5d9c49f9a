package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/data/repos"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout/steps"
	"github.com/yungbote/pulsecheck-backend/internal/observability"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/openai"
	"github.com/yungbote/pulsecheck-backend/internal/platform/pinecone"
)

type RecommendationService interface {
	// Generate regenerates recommendations for an existing analysis without
	// re-scoring. Pending rows from the previous generation are replaced;
	// applied and skipped rows stay on record.
	Generate(ctx context.Context, userID, analysisID uuid.UUID) ([]*types.Recommendation, error)
	ListByAnalysis(ctx context.Context, userID, analysisID uuid.UUID) ([]*types.Recommendation, error)
	// UpdateStatus transitions one pending recommendation to applied or
	// skipped and stamps resolved_at.
	UpdateStatus(ctx context.Context, userID, recommendationID uuid.UUID, status string) (*types.Recommendation, error)
}

type recommendationService struct {
	db  *gorm.DB
	log *logger.Logger

	ai  openai.Client
	vec pinecone.VectorStore

	profiles   repos.UserProfileRepo
	tasks      repos.TaskRepo
	events     repos.CalendarEventRepo
	analyses   repos.AnalysisRepo
	recs       repos.RecommendationRepo
	strategies repos.StrategyRepo
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ai openai.Client,
	vec pinecone.VectorStore,
	profiles repos.UserProfileRepo,
	tasks repos.TaskRepo,
	events repos.CalendarEventRepo,
	analyses repos.AnalysisRepo,
	recs repos.RecommendationRepo,
	strategies repos.StrategyRepo,
) RecommendationService {
	return &recommendationService{
		db:         db,
		log:        baseLog.With("service", "RecommendationService"),
		ai:         ai,
		vec:        vec,
		profiles:   profiles,
		tasks:      tasks,
		events:     events,
		analyses:   analyses,
		recs:       recs,
		strategies: strategies,
	}
}

func (s *recommendationService) Generate(ctx context.Context, userID, analysisID uuid.UUID) ([]*types.Recommendation, error) {
	if userID == uuid.Nil || analysisID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	analysis, err := s.analyses.GetForUser(ctx, nil, userID, analysisID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("generate: load profile: %w", err)
	}

	// The stored analysis supplies level, score and issues; the user's
	// current day supplies the grounding context, so a regenerated set
	// reflects today's schedule rather than the one at scoring time.
	issues := issuesFromLabels(analysis.PrimaryIssueLabels())
	tasksToday, eventsToday, err := s.loadDayContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	retrieved, err := s.runRetrieve(ctx, userID, issues, profile)
	if err != nil {
		return nil, err
	}

	canDelegate, managesTeam := false, false
	if profile != nil {
		canDelegate = profile.CanDelegate
		managesTeam = profile.ManagesTeam
	}
	ranked := steps.RankStrategies(steps.RankStrategiesInput{
		Candidates:  retrieved.Candidates,
		Level:       analysis.Level,
		Issues:      issues,
		CanDelegate: canDelegate,
		ManagesTeam: managesTeam,
	})

	generated, err := s.runGenerate(ctx, steps.GenerateRecommendationsInput{
		UserID:        userID,
		Ranked:        ranked.Ranked,
		Level:         analysis.Level,
		FinalScore:    analysis.FinalScore,
		PrimaryIssues: issues,
		Profile:       profile,
		TasksToday:    tasksToday,
		EventsToday:   eventsToday,
	})
	if err != nil {
		return nil, err
	}

	var created []*types.Recommendation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recs.DeletePendingByAnalysis(ctx, tx, analysis.ID); err != nil {
			return fmt.Errorf("replace pending: %w", err)
		}
		for _, rec := range generated.Recommendations {
			rec.UserID = userID
			rec.AnalysisID = analysis.ID
		}
		var err error
		created, err = s.recs.CreateBatch(ctx, tx, generated.Recommendations)
		if err != nil {
			return fmt.Errorf("create recommendations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate: persist: %w", err)
	}

	if retrieved.Degraded {
		observability.Current().IncDegraded(types.DegradedReasonRetrievalFallback)
	}
	s.log.Info("recommendations regenerated",
		"user_id", userID,
		"analysis_id", analysis.ID,
		"count", len(created),
		"retrieval_degraded", retrieved.Degraded,
	)
	return created, nil
}

func (s *recommendationService) ListByAnalysis(ctx context.Context, userID, analysisID uuid.UUID) ([]*types.Recommendation, error) {
	if userID == uuid.Nil || analysisID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	// Existence check keeps an unknown analysis a 404 instead of an empty
	// list.
	if _, err := s.analyses.GetForUser(ctx, nil, userID, analysisID); err != nil {
		return nil, err
	}
	return s.recs.ListByAnalysis(ctx, nil, userID, analysisID)
}

func (s *recommendationService) UpdateStatus(ctx context.Context, userID, recommendationID uuid.UUID, status string) (*types.Recommendation, error) {
	if userID == uuid.Nil || recommendationID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	if status != types.RecommendationStatusApplied && status != types.RecommendationStatusSkipped {
		return nil, &burnout.ValidationError{Field: "status", Msg: fmt.Sprintf("must be %q or %q", types.RecommendationStatusApplied, types.RecommendationStatusSkipped)}
	}

	rec, err := s.recs.GetForUser(ctx, nil, userID, recommendationID)
	if err != nil {
		return nil, err
	}
	if !types.ValidStatusTransition(rec.Status, status) {
		return nil, &burnout.ConsistencyError{Reason: fmt.Sprintf("recommendation is %s, only pending rows can transition", rec.Status)}
	}

	resolvedAt := time.Now().UTC()
	affected, err := s.recs.UpdateStatus(ctx, nil, recommendationID, status, resolvedAt)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		// Lost the race with a concurrent transition.
		return nil, &burnout.ConsistencyError{Reason: "recommendation already resolved"}
	}

	rec.Status = status
	rec.ResolvedAt = &resolvedAt
	s.log.Info("recommendation resolved", "user_id", userID, "recommendation_id", recommendationID, "status", status)
	return rec, nil
}

func (s *recommendationService) loadDayContext(ctx context.Context, userID uuid.UUID) ([]*types.Task, []*types.CalendarEvent, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	tasks, err := s.tasks.ListDueBetween(ctx, nil, userID, dayStart, dayEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("generate: list due tasks: %w", err)
	}
	events, err := s.events.ListBetween(ctx, nil, userID, dayStart, dayEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("generate: list events: %w", err)
	}
	return tasks, events, nil
}

func (s *recommendationService) runRetrieve(ctx context.Context, userID uuid.UUID, issues []burnout.Issue, profile *types.UserProfile) (steps.RetrieveStrategiesOutput, error) {
	stageStart := time.Now()
	out, err := steps.RetrieveStrategies(ctx, steps.RetrieveStrategiesDeps{
		Log:        s.log,
		AI:         s.ai,
		Vec:        s.vec,
		Strategies: s.strategies,
	}, steps.RetrieveStrategiesInput{UserID: userID, Issues: issues, Profile: profile})
	observability.Current().ObserveStage("retrieve_strategies", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("generate: retrieve strategies: %w", err)
	}
	return out, nil
}

func (s *recommendationService) runGenerate(ctx context.Context, in steps.GenerateRecommendationsInput) (steps.GenerateRecommendationsOutput, error) {
	stageStart := time.Now()
	out, err := steps.GenerateRecommendations(ctx, steps.GenerateRecommendationsDeps{Log: s.log, AI: s.ai}, in)
	observability.Current().ObserveStage("generate_recommendations", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("generate: generate recommendations: %w", err)
	}
	return out, nil
}

// issuesFromLabels rebuilds issue values from the stored labels. Deviations
// are not persisted; stored order already encodes their ranking.
func issuesFromLabels(labels []string) []burnout.Issue {
	issues := make([]burnout.Issue, 0, len(labels))
	for _, label := range labels {
		issues = append(issues, burnout.Issue{Label: label})
	}
	return issues
}
