package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/pulsecheck-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pulsecheck-backend/internal/http/middleware"
	"github.com/yungbote/pulsecheck-backend/internal/observability"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string

	UserContext *httpMW.UserContextMiddleware

	HealthHandler         *httpH.HealthHandler
	AnalysisHandler       *httpH.AnalysisHandler
	RecommendationHandler *httpH.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	protected := api.Group("/")
	{
		// Middleware
		if cfg.UserContext != nil {
			protected.Use(cfg.UserContext.Require())
		}

		// Analyses
		if cfg.AnalysisHandler != nil {
			protected.POST("/analyses", cfg.AnalysisHandler.Create)
			protected.GET("/analyses", cfg.AnalysisHandler.List)
			protected.GET("/analyses/:id", cfg.AnalysisHandler.Get)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			protected.POST("/analyses/:id/recommendations", cfg.RecommendationHandler.Regenerate)
			protected.GET("/analyses/:id/recommendations", cfg.RecommendationHandler.ListByAnalysis)
			protected.PATCH("/recommendations/:id/status", cfg.RecommendationHandler.UpdateStatus)
		}
	}

	return r
}
