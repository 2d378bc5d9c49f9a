package burnout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

type AnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, analysis *types.BurnoutAnalysis) error
	// GetForUser scopes by owner so a foreign id behaves like a missing one.
	GetForUser(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.BurnoutAnalysis, error)
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.BurnoutAnalysis, error)
}

type analysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
	repoLog := baseLog.With("repo", "AnalysisRepo")
	return &analysisRepo{db: db, log: repoLog}
}

func (ar *analysisRepo) Create(ctx context.Context, tx *gorm.DB, analysis *types.BurnoutAnalysis) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Create(analysis).Error
}

func (ar *analysisRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.BurnoutAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.BurnoutAnalysis
	if err := transaction.WithContext(ctx).
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB {
			return db.Order("relevance_score DESC, created_at ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *analysisRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.BurnoutAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if limit <= 0 {
		limit = 20
	}

	var results []*types.BurnoutAnalysis
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
