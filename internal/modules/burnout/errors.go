package burnout

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable is returned when the user has nothing to analyze: no
// tasks, no calendar events, no journal entries. No snapshot or analysis is
// written; callers surface it instead of degrading.
var ErrDataUnavailable = errors.New("no activity data available for analysis")

// ExternalServiceError wraps an embedding, vector-search, or language-model
// failure that survived the client's own retries. Stages catch it and take
// their documented fallback; it reaches the caller only when no fallback
// exists.
type ExternalServiceError struct {
	Service string
	Op      string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e == nil {
		return "external service error"
	}
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Op, e.Cause)
}

func (e *ExternalServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ValidationError marks structured model output that parsed but broke the
// contract (range, enum, length). One retry, then the generic fallback.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ConsistencyError marks corrupted baseline history. The baseline stage logs
// it and resolves to the global defaults; it never propagates.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string {
	if e == nil {
		return "consistency error"
	}
	return fmt.Sprintf("inconsistent history: %s", e.Reason)
}
