package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/data/repos"
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout/steps"
	"github.com/yungbote/pulsecheck-backend/internal/observability"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/openai"
	"github.com/yungbote/pulsecheck-backend/internal/platform/pinecone"
	"github.com/yungbote/pulsecheck-backend/internal/platform/redis"
)

type AnalysisService interface {
	// Analyze runs the full pipeline for the user and returns the persisted
	// analysis with its recommendations attached.
	Analyze(ctx context.Context, userID uuid.UUID) (*types.BurnoutAnalysis, error)
	GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*types.BurnoutAnalysis, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.BurnoutAnalysis, error)
}

type analysisService struct {
	db  *gorm.DB
	log *logger.Logger

	ai    openai.Client
	vec   pinecone.VectorStore
	cache redis.Cache

	users      repos.UserRepo
	profiles   repos.UserProfileRepo
	tasks      repos.TaskRepo
	events     repos.CalendarEventRepo
	journals   repos.JournalEntryRepo
	snapshots  repos.MetricSnapshotRepo
	analyses   repos.AnalysisRepo
	recs       repos.RecommendationRepo
	strategies repos.StrategyRepo
}

func NewAnalysisService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ai openai.Client,
	vec pinecone.VectorStore,
	cache redis.Cache,
	users repos.UserRepo,
	profiles repos.UserProfileRepo,
	tasks repos.TaskRepo,
	events repos.CalendarEventRepo,
	journals repos.JournalEntryRepo,
	snapshots repos.MetricSnapshotRepo,
	analyses repos.AnalysisRepo,
	recs repos.RecommendationRepo,
	strategies repos.StrategyRepo,
) AnalysisService {
	return &analysisService{
		db:         db,
		log:        baseLog.With("service", "AnalysisService"),
		ai:         ai,
		vec:        vec,
		cache:      cache,
		users:      users,
		profiles:   profiles,
		tasks:      tasks,
		events:     events,
		journals:   journals,
		snapshots:  snapshots,
		analyses:   analyses,
		recs:       recs,
		strategies: strategies,
	}
}

func (s *analysisService) Analyze(ctx context.Context, userID uuid.UUID) (*types.BurnoutAnalysis, error) {
	if userID == uuid.Nil {
		return nil, &burnout.ValidationError{Field: "user_id", Msg: "missing"}
	}
	ok, err := s.users.Exists(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("analyze: check user: %w", err)
	}
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	started := time.Now()

	collected, err := s.runCollect(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("analyze: load profile: %w", err)
	}

	baselineOut, err := s.runBaseline(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Workload and sentiment have disjoint inputs; run them side by side
	// and join before aggregation.
	var (
		workload  steps.ScoreWorkloadOutput
		sentiment steps.ScoreSentimentOutput
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		workload, err = s.runWorkload(collected.Snapshot, baselineOut.Baseline)
		return err
	})
	g.Go(func() error {
		var err error
		sentiment, err = s.runSentiment(gctx, userID, collected.Journals)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg, err := s.runAggregate(workload, sentiment.Result, collected.Snapshot)
	if err != nil {
		return nil, err
	}

	retrieved, err := s.runRetrieve(ctx, userID, agg.PrimaryIssues, profile)
	if err != nil {
		return nil, err
	}

	ranked := s.runRank(agg, retrieved, profile)

	generated, err := s.runGenerate(ctx, steps.GenerateRecommendationsInput{
		UserID:        userID,
		Ranked:        ranked.Ranked,
		Level:         agg.Level,
		FinalScore:    agg.FinalScore,
		PrimaryIssues: agg.PrimaryIssues,
		Profile:       profile,
		TasksToday:    collected.TasksDueToday,
		EventsToday:   collected.EventsToday,
	})
	if err != nil {
		return nil, err
	}

	analysis := buildAnalysis(userID, collected.Snapshot, workload, sentiment.Result, agg, retrieved.Degraded)

	if err := s.persist(ctx, analysis, generated.Recommendations); err != nil {
		return nil, fmt.Errorf("analyze: persist: %w", err)
	}

	observability.Current().IncAnalysis(analysis.Level)
	for _, reason := range analysis.DegradedReasonList() {
		observability.Current().IncDegraded(reason)
	}

	s.log.Info("analysis complete",
		"user_id", userID,
		"analysis_id", analysis.ID,
		"level", analysis.Level,
		"final_score", analysis.FinalScore,
		"recommendations", len(analysis.Recommendations),
		"degraded", analysis.Degraded,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return analysis, nil
}

func (s *analysisService) GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*types.BurnoutAnalysis, error) {
	if userID == uuid.Nil || analysisID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.analyses.GetForUser(ctx, nil, userID, analysisID)
}

func (s *analysisService) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.BurnoutAnalysis, error) {
	if userID == uuid.Nil {
		return nil, &burnout.ValidationError{Field: "user_id", Msg: "missing"}
	}
	return s.analyses.ListRecent(ctx, nil, userID, limit)
}

func (s *analysisService) runCollect(ctx context.Context, userID uuid.UUID) (steps.CollectMetricsOutput, error) {
	stageStart := time.Now()
	out, err := steps.CollectMetrics(ctx, steps.CollectMetricsDeps{
		Log:       s.log,
		Tasks:     s.tasks,
		Events:    s.events,
		Journals:  s.journals,
		Snapshots: s.snapshots,
	}, steps.CollectMetricsInput{UserID: userID})
	observability.Current().ObserveStage("collect_metrics", stageStatus(err), time.Since(stageStart))
	if err != nil {
		if errors.Is(err, burnout.ErrDataUnavailable) {
			return out, err
		}
		return out, fmt.Errorf("analyze: collect metrics: %w", err)
	}
	return out, nil
}

func (s *analysisService) runBaseline(ctx context.Context, userID uuid.UUID) (steps.LearnBaselineOutput, error) {
	stageStart := time.Now()
	out, err := steps.LearnBaseline(ctx, steps.LearnBaselineDeps{
		Log:       s.log,
		Snapshots: s.snapshots,
		Cache:     s.cache,
	}, steps.LearnBaselineInput{UserID: userID})
	observability.Current().ObserveStage("learn_baseline", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("analyze: learn baseline: %w", err)
	}
	return out, nil
}

func (s *analysisService) runWorkload(snapshot *types.MetricSnapshot, baseline burnout.Baseline) (steps.ScoreWorkloadOutput, error) {
	stageStart := time.Now()
	out, err := steps.ScoreWorkload(steps.ScoreWorkloadInput{Snapshot: snapshot, Baseline: baseline})
	observability.Current().ObserveStage("score_workload", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("analyze: score workload: %w", err)
	}
	return out, nil
}

func (s *analysisService) runSentiment(ctx context.Context, userID uuid.UUID, entries []*types.JournalEntry) (steps.ScoreSentimentOutput, error) {
	stageStart := time.Now()
	out, err := steps.ScoreSentiment(ctx, steps.ScoreSentimentDeps{Log: s.log, AI: s.ai},
		steps.ScoreSentimentInput{UserID: userID, Entries: entries})
	observability.Current().ObserveStage("score_sentiment", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("analyze: score sentiment: %w", err)
	}
	return out, nil
}

func (s *analysisService) runAggregate(workload steps.ScoreWorkloadOutput, sentiment burnout.SentimentResult, snapshot *types.MetricSnapshot) (steps.AggregateOutput, error) {
	stageStart := time.Now()
	out, err := steps.Aggregate(steps.AggregateInput{
		Workload:  workload,
		Sentiment: sentiment,
		Snapshot:  snapshot,
	})
	observability.Current().ObserveStage("aggregate", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("analyze: aggregate: %w", err)
	}
	return out, nil
}

func (s *analysisService) runRetrieve(ctx context.Context, userID uuid.UUID, issues []burnout.Issue, profile *types.UserProfile) (steps.RetrieveStrategiesOutput, error) {
	stageStart := time.Now()
	out, err := steps.RetrieveStrategies(ctx, steps.RetrieveStrategiesDeps{
		Log:        s.log,
		AI:         s.ai,
		Vec:        s.vec,
		Strategies: s.strategies,
	}, steps.RetrieveStrategiesInput{UserID: userID, Issues: issues, Profile: profile})
	observability.Current().ObserveStage("retrieve_strategies", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("analyze: retrieve strategies: %w", err)
	}
	return out, nil
}

func (s *analysisService) runRank(agg steps.AggregateOutput, retrieved steps.RetrieveStrategiesOutput, profile *types.UserProfile) steps.RankStrategiesOutput {
	canDelegate, managesTeam := false, false
	if profile != nil {
		canDelegate = profile.CanDelegate
		managesTeam = profile.ManagesTeam
	}
	stageStart := time.Now()
	out := steps.RankStrategies(steps.RankStrategiesInput{
		Candidates:  retrieved.Candidates,
		Level:       agg.Level,
		Issues:      agg.PrimaryIssues,
		CanDelegate: canDelegate,
		ManagesTeam: managesTeam,
	})
	observability.Current().ObserveStage("rank_strategies", "ok", time.Since(stageStart))
	return out
}

func (s *analysisService) runGenerate(ctx context.Context, in steps.GenerateRecommendationsInput) (steps.GenerateRecommendationsOutput, error) {
	stageStart := time.Now()
	out, err := steps.GenerateRecommendations(ctx, steps.GenerateRecommendationsDeps{Log: s.log, AI: s.ai}, in)
	observability.Current().ObserveStage("generate_recommendations", stageStatus(err), time.Since(stageStart))
	if err != nil {
		return out, fmt.Errorf("analyze: generate recommendations: %w", err)
	}
	return out, nil
}

// persist commits the analysis row and its recommendations in one
// transaction; either both land or neither does.
func (s *analysisService) persist(ctx context.Context, analysis *types.BurnoutAnalysis, recs []*types.Recommendation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.analyses.Create(ctx, tx, analysis); err != nil {
			return fmt.Errorf("create analysis: %w", err)
		}
		for _, rec := range recs {
			rec.UserID = analysis.UserID
			rec.AnalysisID = analysis.ID
		}
		created, err := s.recs.CreateBatch(ctx, tx, recs)
		if err != nil {
			return fmt.Errorf("create recommendations: %w", err)
		}
		analysis.Recommendations = make([]types.Recommendation, 0, len(created))
		for _, rec := range created {
			analysis.Recommendations = append(analysis.Recommendations, *rec)
		}
		return nil
	})
}

func buildAnalysis(
	userID uuid.UUID,
	snapshot *types.MetricSnapshot,
	workload steps.ScoreWorkloadOutput,
	sentiment burnout.SentimentResult,
	agg steps.AggregateOutput,
	retrievalDegraded bool,
) *types.BurnoutAnalysis {
	reasons := []string{}
	if sentiment.Degraded {
		reasons = append(reasons, types.DegradedReasonSentimentFallback)
	}
	if retrievalDegraded {
		reasons = append(reasons, types.DegradedReasonRetrievalFallback)
	}
	return &types.BurnoutAnalysis{
		UserID:             userID,
		SnapshotID:         snapshot.ID,
		FinalScore:         agg.FinalScore,
		Level:              agg.Level,
		WorkloadScore:      workload.Total,
		TaskScore:          workload.Task,
		TimeScore:          workload.Time,
		MeetingScore:       workload.Meeting,
		SentimentScore:     agg.SentimentScore,
		SentimentPolarity:  sentiment.Polarity,
		SentimentIntensity: sentiment.Intensity,
		DominantEmotion:    sentiment.DominantEmotion,
		PrimaryIssues:      types.EncodeStringList(burnout.IssueLabels(agg.PrimaryIssues)),
		Degraded:           len(reasons) > 0,
		DegradedReasons:    types.EncodeStringList(reasons),
	}
}

func stageStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
