package qdrant

import (
	"testing"
	"time"
)

func TestResolveConfigFromEnvValid(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "pulsecheck")
	t.Setenv("QDRANT_NAMESPACE_PREFIX", "pulse")
	t.Setenv("QDRANT_VECTOR_DIM", "1536")
	t.Setenv("QDRANT_TIMEOUT", "15s")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.URL != "http://qdrant:6333" {
		t.Fatalf("URL: want=%q got=%q", "http://qdrant:6333", cfg.URL)
	}
	if cfg.Collection != "pulsecheck" {
		t.Fatalf("Collection: want=%q got=%q", "pulsecheck", cfg.Collection)
	}
	if cfg.NamespacePrefix != "pulse" {
		t.Fatalf("NamespacePrefix: want=%q got=%q", "pulse", cfg.NamespacePrefix)
	}
	if cfg.VectorDim != 1536 {
		t.Fatalf("VectorDim: want=%d got=%d", 1536, cfg.VectorDim)
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("Timeout: want=%v got=%v", 15*time.Second, cfg.Timeout)
	}
}

func TestResolveConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "pulsecheck")
	t.Setenv("QDRANT_NAMESPACE_PREFIX", "")
	t.Setenv("QDRANT_VECTOR_DIM", "1536")
	t.Setenv("QDRANT_TIMEOUT", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.NamespacePrefix != "pulse" {
		t.Fatalf("NamespacePrefix default: want=%q got=%q", "pulse", cfg.NamespacePrefix)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("Timeout default: want=%v got=%v", 10*time.Second, cfg.Timeout)
	}
}

func TestResolveConfigFromEnvMissingURL(t *testing.T) {
	t.Setenv("QDRANT_URL", "")
	t.Setenv("QDRANT_COLLECTION", "pulsecheck")
	t.Setenv("QDRANT_VECTOR_DIM", "1536")

	assertConfigErrorCode(t, ConfigErrorMissingURL)
}

func TestResolveConfigFromEnvInvalidURL(t *testing.T) {
	t.Setenv("QDRANT_URL", "qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "pulsecheck")
	t.Setenv("QDRANT_VECTOR_DIM", "1536")

	assertConfigErrorCode(t, ConfigErrorInvalidURL)
}

func TestResolveConfigFromEnvMissingCollection(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "")
	t.Setenv("QDRANT_VECTOR_DIM", "1536")

	assertConfigErrorCode(t, ConfigErrorMissingCollection)
}

func TestResolveConfigFromEnvMissingVectorDim(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "pulsecheck")
	t.Setenv("QDRANT_VECTOR_DIM", "")

	assertConfigErrorCode(t, ConfigErrorMissingVectorDim)
}

func TestResolveConfigFromEnvInvalidVectorDim(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "pulsecheck")
	t.Setenv("QDRANT_VECTOR_DIM", "0")

	assertConfigErrorCode(t, ConfigErrorInvalidVectorDim)
}

func assertConfigErrorCode(t *testing.T, want ConfigErrorCode) {
	t.Helper()
	_, err := ResolveConfigFromEnv()
	if err == nil {
		t.Fatalf("ResolveConfigFromEnv: expected error, got nil")
	}
	cfgErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("expected *ConfigError, got=%T", err)
	}
	if cfgErr.Code != want {
		t.Fatalf("code: want=%q got=%q", want, cfgErr.Code)
	}
}
