package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/openai"
	"github.com/yungbote/pulsecheck-backend/internal/platform/pinecone"
	"github.com/yungbote/pulsecheck-backend/internal/platform/redis"
)

type Clients struct {
	AI       openai.Client
	Cache    redis.Cache
	Pinecone pinecone.Client
	Vector   pinecone.VectorStore
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// OpenAI
	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	// Redis (optional; the baseline learner recomputes without it)
	var cache redis.Cache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redis.NewCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		cache = c
	}

	// Vector store (pinecone or qdrant; nil when disabled)
	pc, vs, err := resolveVectorStoreProvider(log, cfg)
	if err != nil {
		return Clients{}, fmt.Errorf("init vector store: %w", err)
	}

	return Clients{
		AI:       ai,
		Cache:    cache,
		Pinecone: pc,
		Vector:   vs,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
