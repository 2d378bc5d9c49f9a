package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/services"
)

type Services struct {
	Analysis       services.AnalysisService
	Recommendation services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Analysis: services.NewAnalysisService(
			db,
			log,
			clients.AI,
			clients.Vector,
			clients.Cache,
			reposet.User,
			reposet.UserProfile,
			reposet.Task,
			reposet.CalendarEvent,
			reposet.JournalEntry,
			reposet.MetricSnapshot,
			reposet.Analysis,
			reposet.Recommendation,
			reposet.Strategy,
		),
		Recommendation: services.NewRecommendationService(
			db,
			log,
			clients.AI,
			clients.Vector,
			reposet.UserProfile,
			reposet.Task,
			reposet.CalendarEvent,
			reposet.Analysis,
			reposet.Recommendation,
			reposet.Strategy,
		),
	}
}
