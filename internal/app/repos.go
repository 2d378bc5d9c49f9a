package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/data/repos"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

type Repos struct {
	User           repos.UserRepo
	UserProfile    repos.UserProfileRepo
	Task           repos.TaskRepo
	CalendarEvent  repos.CalendarEventRepo
	JournalEntry   repos.JournalEntryRepo
	MetricSnapshot repos.MetricSnapshotRepo
	Analysis       repos.AnalysisRepo
	Recommendation repos.RecommendationRepo
	Strategy       repos.StrategyRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserProfile:    repos.NewUserProfileRepo(db, log),
		Task:           repos.NewTaskRepo(db, log),
		CalendarEvent:  repos.NewCalendarEventRepo(db, log),
		JournalEntry:   repos.NewJournalEntryRepo(db, log),
		MetricSnapshot: repos.NewMetricSnapshotRepo(db, log),
		Analysis:       repos.NewAnalysisRepo(db, log),
		Recommendation: repos.NewRecommendationRepo(db, log),
		Strategy:       repos.NewStrategyRepo(db, log),
	}
}
