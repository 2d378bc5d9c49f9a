package app

import (
	"github.com/gin-gonic/gin"

	pchttp "github.com/yungbote/pulsecheck-backend/internal/http"
	httpH "github.com/yungbote/pulsecheck-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pulsecheck-backend/internal/http/middleware"
	"github.com/yungbote/pulsecheck-backend/internal/observability"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

type Middleware struct {
	UserContext *httpMW.UserContextMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Analysis       *httpH.AnalysisHandler
	Recommendation *httpH.RecommendationHandler
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		UserContext: httpMW.NewUserContextMiddleware(log),
	}
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(),
		Analysis:       httpH.NewAnalysisHandler(log, services.Analysis),
		Recommendation: httpH.NewRecommendationHandler(log, services.Recommendation),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return pchttp.NewRouter(pchttp.RouterConfig{
		Log:         log,
		Metrics:     observability.Current(),
		ServiceName: cfg.ServiceName,

		UserContext: middleware.UserContext,

		HealthHandler:         handlers.Health,
		AnalysisHandler:       handlers.Analysis,
		RecommendationHandler: handlers.Recommendation,
	})
}
