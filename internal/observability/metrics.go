package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/pulsecheck-backend/internal/platform/envutil"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

// Metrics is the process-wide instrument registry, exposed in Prometheus
// text format on its own listener. Gated by METRICS_ENABLED; every observe
// method is nil-safe so call sites never branch.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	llmRequests *CounterVec
	llmLatency  *HistogramVec
	llmTokens   *CounterVec

	vectorLatency *HistogramVec
	vectorErrors  *CounterVec

	stageLatency  *HistogramVec
	stageTotal    *CounterVec
	degradedTotal *CounterVec
	analysisLevel *CounterVec
	analysisTotal *Counter

	// Unlabeled feeds for the SLO evaluator; the labeled vecs above cannot
	// be summed cheaply at read time.
	apiReqTotal   *Counter
	apiReqError   *Counter
	apiReqGood    *Counter
	stageRunTotal *Counter
	stageRunError *Counter

	sloCompliance *GaugeVec
	sloBudget     *GaugeVec
	sloBurn       *GaugeVec

	sloLatencyThreshold float64
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

func InitMetrics(log *logger.Logger) *Metrics {
	initOnce.Do(func() {
		if !Enabled() {
			return
		}
		instance = &Metrics{
			apiRequests: NewCounterVec("pc_api_requests_total", "API requests by method, route and status.", []string{"method", "route", "status"}),
			apiLatency: NewHistogramVec("pc_api_request_duration_seconds", "API request duration in seconds.",
				[]string{"method", "route", "status"},
				[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}),
			apiInflight: NewGauge("pc_api_inflight_requests", "In-flight API requests."),
			llmRequests: NewCounterVec("pc_llm_requests_total", "LLM requests by model, endpoint and status.", []string{"model", "endpoint", "status"}),
			llmLatency: NewHistogramVec("pc_llm_request_duration_seconds", "LLM request duration in seconds.",
				[]string{"model", "endpoint"},
				[]float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120}),
			llmTokens: NewCounterVec("pc_llm_tokens_total", "LLM tokens by model and direction.", []string{"model", "direction"}),
			vectorLatency: NewHistogramVec("pc_vector_request_duration_seconds", "Vector store request duration in seconds.",
				[]string{"provider", "op"},
				[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}),
			vectorErrors: NewCounterVec("pc_vector_errors_total", "Vector store request failures.", []string{"provider", "op"}),
			stageLatency: NewHistogramVec("pc_pipeline_stage_duration_seconds", "Analysis pipeline stage duration in seconds.",
				[]string{"stage", "status"},
				[]float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60}),
			stageTotal:    NewCounterVec("pc_pipeline_stage_total", "Analysis pipeline stage executions.", []string{"stage", "status"}),
			degradedTotal: NewCounterVec("pc_pipeline_degraded_total", "Degraded pipeline results by reason.", []string{"reason"}),
			analysisLevel: NewCounterVec("pc_analyses_by_level_total", "Completed analyses by risk level.", []string{"level"}),
			analysisTotal: NewCounter("pc_analyses_total", "Completed analyses."),

			apiReqTotal:   NewCounter("pc_api_requests_total_all", "Total API requests (all)."),
			apiReqError:   NewCounter("pc_api_requests_error_total", "Total API requests with 5xx status."),
			apiReqGood:    NewCounter("pc_api_requests_good_latency_total", "Total API requests under SLO latency threshold."),
			stageRunTotal: NewCounter("pc_pipeline_stage_total_all", "Total pipeline stage executions (all)."),
			stageRunError: NewCounter("pc_pipeline_stage_error_total", "Total pipeline stage executions that errored."),

			sloCompliance: NewGaugeVec("pc_slo_compliance", "SLO compliance (SLI) over window.", []string{"slo", "window"}),
			sloBudget:     NewGaugeVec("pc_slo_error_budget_remaining", "Error budget remaining (0-1).", []string{"slo", "window"}),
			sloBurn:       NewGaugeVec("pc_slo_burn_rate", "Error budget burn rate.", []string{"slo", "window"}),

			sloLatencyThreshold: envutil.Float("SLO_API_LATENCY_THRESHOLD_SECONDS", 0.5),
		}
		if log != nil {
			log.Info("observability metrics enabled")
		}
	})
	return instance
}

func (m *Metrics) ObserveAPIRequest(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	method = orUnknown(method)
	route = orUnknown(route)
	status = orUnknown(status)
	m.apiRequests.Inc(method, route, status)
	if dur > 0 {
		m.apiLatency.Observe(dur.Seconds(), method, route, status)
	}
	m.apiReqTotal.Inc()
	if strings.HasPrefix(status, "5") {
		m.apiReqError.Inc()
	}
	if m.sloLatencyThreshold > 0 && dur.Seconds() <= m.sloLatencyThreshold {
		m.apiReqGood.Inc()
	}
}

func (m *Metrics) IncInflight() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) DecInflight() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(model, endpoint, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	model = orUnknown(model)
	endpoint = orUnknown(endpoint)
	m.llmRequests.Inc(model, endpoint, orUnknown(status))
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), model, endpoint)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), model, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), model, "output")
	}
}

func (m *Metrics) ObserveVectorRequest(provider, op string, dur time.Duration, err error) {
	if m == nil {
		return
	}
	provider = orUnknown(provider)
	op = orUnknown(op)
	if dur > 0 {
		m.vectorLatency.Observe(dur.Seconds(), provider, op)
	}
	if err != nil {
		m.vectorErrors.Inc(provider, op)
	}
}

func (m *Metrics) ObserveStage(stage, status string, dur time.Duration) {
	if m == nil {
		return
	}
	stage = orUnknown(stage)
	status = orUnknown(status)
	m.stageTotal.Inc(stage, status)
	if dur > 0 {
		m.stageLatency.Observe(dur.Seconds(), stage, status)
	}
	m.stageRunTotal.Inc()
	if status == "error" {
		m.stageRunError.Inc()
	}
}

func (m *Metrics) IncDegraded(reason string) {
	if m == nil {
		return
	}
	m.degradedTotal.Inc(orUnknown(reason))
}

func (m *Metrics) IncAnalysis(level string) {
	if m == nil {
		return
	}
	m.analysisTotal.Inc()
	m.analysisLevel.Inc(orUnknown(level))
}

// StartServer serves the registry on its own addr (METRICS_ADDR) so the
// scrape path stays off the API listener. Shuts down with ctx.
func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, wr := range []func() error{
		func() error { return m.apiRequests.WritePrometheus(w) },
		func() error { return m.apiLatency.WritePrometheus(w) },
		func() error { return m.apiInflight.WritePrometheus(w) },
		func() error { return m.llmRequests.WritePrometheus(w) },
		func() error { return m.llmLatency.WritePrometheus(w) },
		func() error { return m.llmTokens.WritePrometheus(w) },
		func() error { return m.vectorLatency.WritePrometheus(w) },
		func() error { return m.vectorErrors.WritePrometheus(w) },
		func() error { return m.stageLatency.WritePrometheus(w) },
		func() error { return m.stageTotal.WritePrometheus(w) },
		func() error { return m.degradedTotal.WritePrometheus(w) },
		func() error { return m.analysisLevel.WritePrometheus(w) },
		func() error { return m.analysisTotal.WritePrometheus(w) },
		func() error { return m.apiReqTotal.WritePrometheus(w) },
		func() error { return m.apiReqError.WritePrometheus(w) },
		func() error { return m.apiReqGood.WritePrometheus(w) },
		func() error { return m.stageRunTotal.WritePrometheus(w) },
		func() error { return m.stageRunError.WritePrometheus(w) },
		func() error { return m.sloCompliance.WritePrometheus(w) },
		func() error { return m.sloBudget.WritePrometheus(w) },
		func() error { return m.sloBurn.WritePrometheus(w) },
	} {
		if err := wr(); err != nil {
			return err
		}
	}
	return nil
}

func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	return v
}
