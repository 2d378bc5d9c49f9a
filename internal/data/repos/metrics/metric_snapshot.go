package metrics

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

type MetricSnapshotRepo interface {
	// Upsert writes the run's snapshot. A re-run over the same period replaces
	// the earlier observation instead of violating the (user_id, period_start)
	// uniqueness; history keeps one row per period.
	Upsert(ctx context.Context, tx *gorm.DB, snapshot *types.MetricSnapshot) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MetricSnapshot, error)
	// ListRecent returns up to limit snapshots, newest period first.
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MetricSnapshot, error)
}

type metricSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMetricSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) MetricSnapshotRepo {
	repoLog := baseLog.With("repo", "MetricSnapshotRepo")
	return &metricSnapshotRepo{db: db, log: repoLog}
}

func (sr *metricSnapshotRepo) Upsert(ctx context.Context, tx *gorm.DB, snapshot *types.MetricSnapshot) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "period_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"period_end",
				"active_tasks",
				"overdue_tasks",
				"work_hours",
				"meeting_count",
				"meeting_hours",
				"back_to_back_count",
				"first_activity_minutes",
				"updated_at",
			}),
		}).
		Create(snapshot).Error
}

func (sr *metricSnapshotRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MetricSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.MetricSnapshot
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *metricSnapshotRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MetricSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if limit <= 0 {
		limit = 30
	}

	var results []*types.MetricSnapshot
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period_start DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
