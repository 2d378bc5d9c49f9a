package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/data/repos/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/data/repos/metrics"
	"github.com/yungbote/pulsecheck-backend/internal/data/repos/user"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserProfileRepo = user.UserProfileRepo

type TaskRepo = metrics.TaskRepo
type CalendarEventRepo = metrics.CalendarEventRepo
type JournalEntryRepo = metrics.JournalEntryRepo
type MetricSnapshotRepo = metrics.MetricSnapshotRepo

type AnalysisRepo = burnout.AnalysisRepo
type RecommendationRepo = burnout.RecommendationRepo
type StrategyRepo = burnout.StrategyRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return user.NewUserProfileRepo(db, baseLog)
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return metrics.NewTaskRepo(db, baseLog)
}
func NewCalendarEventRepo(db *gorm.DB, baseLog *logger.Logger) CalendarEventRepo {
	return metrics.NewCalendarEventRepo(db, baseLog)
}
func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	return metrics.NewJournalEntryRepo(db, baseLog)
}
func NewMetricSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) MetricSnapshotRepo {
	return metrics.NewMetricSnapshotRepo(db, baseLog)
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
	return burnout.NewAnalysisRepo(db, baseLog)
}
func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return burnout.NewRecommendationRepo(db, baseLog)
}
func NewStrategyRepo(db *gorm.DB, baseLog *logger.Logger) StrategyRepo {
	return burnout.NewStrategyRepo(db, baseLog)
}
