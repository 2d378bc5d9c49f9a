package app

import (
	"errors"
	"fmt"
	"net"
	neturl "net/url"
	"strings"
	"time"

	"github.com/yungbote/pulsecheck-backend/internal/observability"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/pinecone"
	"github.com/yungbote/pulsecheck-backend/internal/platform/qdrant"
)

// Constructor seams so provider selection is testable without real backends.
var (
	newPineconeClient      = pinecone.New
	newPineconeVectorStore = pinecone.NewVectorStore
	newQdrantVectorStore   = qdrant.NewVectorStore
)

type VectorProvider string

const (
	VectorProviderPinecone VectorProvider = "pinecone"
	VectorProviderQdrant   VectorProvider = "qdrant"
)

type VectorProviderBootstrapErrorCode string

const (
	VectorProviderBootstrapErrorInvalidProvider      VectorProviderBootstrapErrorCode = "invalid_provider"
	VectorProviderBootstrapErrorMissingQdrantURL     VectorProviderBootstrapErrorCode = "missing_qdrant_url"
	VectorProviderBootstrapErrorInvalidQdrantURL     VectorProviderBootstrapErrorCode = "invalid_qdrant_url"
	VectorProviderBootstrapErrorMissingQdrantColl    VectorProviderBootstrapErrorCode = "missing_qdrant_collection"
	VectorProviderBootstrapErrorMissingQdrantVector  VectorProviderBootstrapErrorCode = "missing_qdrant_vector_dim"
	VectorProviderBootstrapErrorInvalidQdrantVector  VectorProviderBootstrapErrorCode = "invalid_qdrant_vector_dim"
	VectorProviderBootstrapErrorQdrantConfigFailed   VectorProviderBootstrapErrorCode = "qdrant_config_failed"
	VectorProviderBootstrapErrorConnectFailed        VectorProviderBootstrapErrorCode = "connect_failed"
	VectorProviderBootstrapErrorProviderInitFailed   VectorProviderBootstrapErrorCode = "provider_init_failed"
	VectorProviderBootstrapCodeDisabledMissingAPIKey VectorProviderBootstrapErrorCode = "disabled_missing_api_key"
)

type VectorProviderBootstrapError struct {
	Code     VectorProviderBootstrapErrorCode
	Provider string
	Cause    error
}

func (e *VectorProviderBootstrapError) Error() string {
	if e == nil {
		return "vector provider bootstrap failed"
	}
	return fmt.Sprintf(
		"vector provider bootstrap failed (code=%s provider=%q): %v",
		e.Code,
		e.Provider,
		e.Cause,
	)
}

func (e *VectorProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveVectorStoreProvider builds the retrieval vector store named by
// VECTOR_PROVIDER. The pinecone.Client return is non-nil only for the
// pinecone provider (qdrant has no control plane to expose). A pinecone
// selection without an API key disables vector search instead of failing
// startup; retrieval then runs on its keyword fallback.
func resolveVectorStoreProvider(
	log *logger.Logger,
	cfg Config,
) (pinecone.Client, pinecone.VectorStore, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.VectorProvider))
	start := time.Now()

	switch provider {
	case string(VectorProviderQdrant):
		qcfg, err := qdrant.ResolveConfigFromEnv()
		if err != nil {
			return nil, nil, failVectorBootstrap(log, provider, start, err)
		}
		log.Info(
			"Selecting vector store provider",
			"provider", provider,
			"qdrant_url", qcfg.URL,
			"qdrant_collection", qcfg.Collection,
			"qdrant_namespace_prefix", qcfg.NamespacePrefix,
			"qdrant_vector_dim", qcfg.VectorDim,
		)
		vs, err := newQdrantVectorStore(log, qcfg)
		if err != nil {
			return nil, nil, failVectorBootstrap(log, provider, start, err)
		}
		observability.Current().ObserveVectorRequest(provider, "bootstrap", time.Since(start), nil)
		return nil, vs, nil

	case string(VectorProviderPinecone):
		pcfg := pinecone.ConfigFromEnv()
		if strings.TrimSpace(pcfg.APIKey) == "" {
			log.Warn("PINECONE_API_KEY not set; vector search disabled",
				"provider", provider,
				"code", VectorProviderBootstrapCodeDisabledMissingAPIKey,
			)
			return nil, nil, nil
		}
		log.Info("Selecting vector store provider", "provider", provider)

		pc, err := newPineconeClient(log, pcfg)
		if err != nil {
			return nil, nil, failVectorBootstrap(log, provider, start, err)
		}
		vs, err := newPineconeVectorStore(log, pc)
		if err != nil {
			return nil, nil, failVectorBootstrap(log, provider, start, err)
		}
		observability.Current().ObserveVectorRequest(provider, "bootstrap", time.Since(start), nil)
		return pc, vs, nil

	default:
		err := &VectorProviderBootstrapError{
			Code:     VectorProviderBootstrapErrorInvalidProvider,
			Provider: provider,
			Cause:    fmt.Errorf("unsupported vector provider %q", provider),
		}
		observability.Current().ObserveVectorRequest(provider, "bootstrap", time.Since(start), err)
		log.Error(
			"Vector store provider selection failed",
			"provider", provider,
			"error_code", err.Code,
			"error", err,
		)
		return nil, nil, err
	}
}

func failVectorBootstrap(log *logger.Logger, provider string, start time.Time, err error) error {
	classified := classifyVectorProviderBootstrapError(provider, err)
	code := vectorProviderBootstrapErrorCode(classified)
	observability.Current().ObserveVectorRequest(provider, "bootstrap", time.Since(start), classified)
	log.Error(
		"Vector store provider bootstrap failed",
		"provider", provider,
		"error_code", code,
		"error", classified,
	)
	return classified
}

func classifyVectorProviderBootstrapError(provider string, err error) error {
	var urlErr *neturl.Error
	if errors.As(err, &urlErr) {
		return &VectorProviderBootstrapError{
			Code:     VectorProviderBootstrapErrorConnectFailed,
			Provider: provider,
			Cause:    err,
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &VectorProviderBootstrapError{
			Code:     VectorProviderBootstrapErrorConnectFailed,
			Provider: provider,
			Cause:    err,
		}
	}
	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "ready check failed") || strings.Contains(errLower, "connection refused") {
		return &VectorProviderBootstrapError{
			Code:     VectorProviderBootstrapErrorConnectFailed,
			Provider: provider,
			Cause:    err,
		}
	}

	var cfgErr *qdrant.ConfigError
	if errors.As(err, &cfgErr) {
		code := VectorProviderBootstrapErrorQdrantConfigFailed
		switch cfgErr.Code {
		case qdrant.ConfigErrorMissingURL:
			code = VectorProviderBootstrapErrorMissingQdrantURL
		case qdrant.ConfigErrorInvalidURL:
			code = VectorProviderBootstrapErrorInvalidQdrantURL
		case qdrant.ConfigErrorMissingCollection:
			code = VectorProviderBootstrapErrorMissingQdrantColl
		case qdrant.ConfigErrorMissingVectorDim:
			code = VectorProviderBootstrapErrorMissingQdrantVector
		case qdrant.ConfigErrorInvalidVectorDim:
			code = VectorProviderBootstrapErrorInvalidQdrantVector
		}
		return &VectorProviderBootstrapError{
			Code:     code,
			Provider: provider,
			Cause:    err,
		}
	}

	return &VectorProviderBootstrapError{
		Code:     VectorProviderBootstrapErrorProviderInitFailed,
		Provider: provider,
		Cause:    err,
	}
}

func vectorProviderBootstrapErrorCode(err error) VectorProviderBootstrapErrorCode {
	var bootstrapErr *VectorProviderBootstrapError
	if errors.As(err, &bootstrapErr) {
		if bootstrapErr.Code != "" {
			return bootstrapErr.Code
		}
	}
	return VectorProviderBootstrapErrorConnectFailed
}
