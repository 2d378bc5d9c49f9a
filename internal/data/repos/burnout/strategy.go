package burnout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

// StrategyRepo reads the knowledge base; rows are written offline.
type StrategyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, strategies []*types.Strategy) ([]*types.Strategy, error)
	// GetByIDs returns the found subset in no particular order; callers
	// re-impose the retrieval order.
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Strategy, error)
	// ListByCategories is the keyword fallback path: deterministic ordering by
	// difficulty, then id.
	ListByCategories(ctx context.Context, tx *gorm.DB, categories []string, limit int) ([]*types.Strategy, error)
}

type strategyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStrategyRepo(db *gorm.DB, baseLog *logger.Logger) StrategyRepo {
	repoLog := baseLog.With("repo", "StrategyRepo")
	return &strategyRepo{db: db, log: repoLog}
}

func (sr *strategyRepo) Create(ctx context.Context, tx *gorm.DB, strategies []*types.Strategy) ([]*types.Strategy, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(strategies) == 0 {
		return []*types.Strategy{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (sr *strategyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Strategy, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Strategy
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *strategyRepo) ListByCategories(ctx context.Context, tx *gorm.DB, categories []string, limit int) ([]*types.Strategy, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if limit <= 0 {
		limit = 20
	}

	var results []*types.Strategy
	if len(categories) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("category IN ?", categories).
		Order("difficulty ASC, id ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
