package app

import (
	"github.com/yungbote/pulsecheck-backend/internal/platform/envutil"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

// Config is the startup surface resolved once in New. Connection-level
// settings (Postgres, Redis, OpenAI, vector store credentials) stay inside
// the clients that own them; this carries only what wiring needs.
type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	MetricsAddr string

	VectorProvider string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.Str("HTTP_PORT", "8080"),
		ServiceName:    envutil.Str("SERVICE_NAME", "pulsecheck-backend"),
		Environment:    envutil.Str("ENVIRONMENT", "development"),
		Version:        envutil.Str("SERVICE_VERSION", "dev"),
		MetricsAddr:    envutil.Str("METRICS_ADDR", ":9091"),
		VectorProvider: envutil.Str("VECTOR_PROVIDER", "pinecone"),
	}
	log.Info("Config loaded",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"vector_provider", cfg.VectorProvider,
	)
	return cfg
}
