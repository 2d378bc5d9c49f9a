package burnout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

type RecommendationRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Recommendation, error)
	ListByAnalysis(ctx context.Context, tx *gorm.DB, userID, analysisID uuid.UUID) ([]*types.Recommendation, error)
	// DeletePendingByAnalysis soft-deletes an analysis's pending rows so a
	// regeneration can replace them while resolved rows stay on record.
	DeletePendingByAnalysis(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) error
	// UpdateStatus transitions one pending row; returns the affected count so
	// callers can distinguish a lost race from success.
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, resolvedAt time.Time) (int64, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	repoLog := baseLog.With("repo", "RecommendationRepo")
	return &recommendationRepo{db: db, log: repoLog}
}

func (rr *recommendationRepo) CreateBatch(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(recs) == 0 {
		return []*types.Recommendation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (rr *recommendationRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *recommendationRepo) ListByAnalysis(ctx context.Context, tx *gorm.DB, userID, analysisID uuid.UUID) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("analysis_id = ? AND user_id = ?", analysisID, userID).
		Order("relevance_score DESC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) DeletePendingByAnalysis(ctx context.Context, tx *gorm.DB, analysisID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Where("analysis_id = ? AND status = ?", analysisID, types.RecommendationStatusPending).
		Delete(&types.Recommendation{}).Error
}

func (rr *recommendationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, resolvedAt time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Recommendation{}).
		Where("id = ? AND status = ?", id, types.RecommendationStatusPending).
		Updates(map[string]any{
			"status":      status,
			"resolved_at": resolvedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
