package domain

import "time"

// Status is the coarse health classification of a source.
type Status string

const (
	// StatusUnknown means no request has been recorded yet.
	StatusUnknown Status = "unknown"
	// StatusUnconfigured means the source needs an API key that is missing.
	StatusUnconfigured Status = "unconfigured"
	// StatusHealthy means the error rate is below the degraded threshold.
	StatusHealthy Status = "healthy"
	// StatusDegraded means the error rate is at or above the degraded threshold.
	StatusDegraded Status = "degraded"
	// StatusUnhealthy means a recent failure or an error rate at or above the unhealthy threshold.
	StatusUnhealthy Status = "unhealthy"
)

// Statuses lists every status in report order.
var Statuses = []Status{
	StatusHealthy,
	StatusDegraded,
	StatusUnhealthy,
	StatusUnconfigured,
	StatusUnknown,
}

const (
	// RecentFailureWindow is how long a single failure forces StatusUnhealthy.
	RecentFailureWindow = 5 * time.Minute

	// UnhealthyErrorRate is the error-rate percentage at which a source is unhealthy.
	UnhealthyErrorRate = 50.0

	// DegradedErrorRate is the error-rate percentage at which a source is degraded.
	DegradedErrorRate = 20.0
)

// SourceHealth is the aggregated request history of one source.
type SourceHealth struct {
	Name             string     `json:"name"`
	Status           Status     `json:"status"`
	LastCheck        *time.Time `json:"last_check"`
	LastSuccess      *time.Time `json:"last_success"`
	LastFailure      *time.Time `json:"last_failure"`
	SuccessCount     int64      `json:"success_count"`
	FailureCount     int64      `json:"failure_count"`
	TotalRequests    int64      `json:"total_requests"`
	AvgResponseTime  float64    `json:"avg_response_time"`
	ErrorRate        float64    `json:"error_rate"`
	LastError        *string    `json:"last_error"`
	RequiresAPIKey   bool       `json:"requires_api_key"`
	APIKeyConfigured bool       `json:"api_key_configured"`
}

// NewSourceHealth returns a fresh record for a newly registered source.
func NewSourceHealth(name string, requiresAPIKey, apiKeyConfigured bool) SourceHealth {
	h := SourceHealth{
		Name:             name,
		RequiresAPIKey:   requiresAPIKey,
		APIKeyConfigured: apiKeyConfigured,
	}
	h.Status = DeriveStatus(h, time.Time{})
	return h
}

// Record applies one request outcome observed at now.
// The running mean of latency only moves when responseTime > 0.
func (h *SourceHealth) Record(success bool, responseTime time.Duration, errMsg string, now time.Time) {
	h.LastCheck = &now
	h.TotalRequests++

	if success {
		h.SuccessCount++
		h.LastSuccess = &now
	} else {
		h.FailureCount++
		h.LastFailure = &now
		msg := truncate(errMsg, MaxErrorLength)
		h.LastError = &msg
	}

	if responseTime > 0 {
		total := h.AvgResponseTime * float64(h.TotalRequests-1)
		h.AvgResponseTime = (total + responseTime.Seconds()) / float64(h.TotalRequests)
	}

	h.ErrorRate = float64(h.FailureCount) / float64(h.TotalRequests) * 100
	h.Status = DeriveStatus(*h, now)
}

// Clone returns a deep copy so callers never share the optional fields.
func (h SourceHealth) Clone() SourceHealth {
	c := h
	c.LastCheck = cloneTime(h.LastCheck)
	c.LastSuccess = cloneTime(h.LastSuccess)
	c.LastFailure = cloneTime(h.LastFailure)
	if h.LastError != nil {
		msg := *h.LastError
		c.LastError = &msg
	}
	return c
}

// DeriveStatus classifies h at now. Rules are evaluated top to bottom and
// the first match wins; a recent failure outranks the aggregate error rate.
func DeriveStatus(h SourceHealth, now time.Time) Status {
	switch {
	case h.RequiresAPIKey && !h.APIKeyConfigured:
		return StatusUnconfigured
	case h.TotalRequests == 0:
		return StatusUnknown
	case h.LastFailure != nil && now.Sub(*h.LastFailure) < RecentFailureWindow:
		return StatusUnhealthy
	case h.ErrorRate >= UnhealthyErrorRate:
		return StatusUnhealthy
	case h.ErrorRate >= DegradedErrorRate:
		return StatusDegraded
	default:
		return StatusHealthy
	}
}

// CheckResult is the outcome of one health check.
type CheckResult struct {
	Success      bool          `json:"success"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Source is a registration triple supplied by the source configuration.
type Source struct {
	Name             string
	RequiresAPIKey   bool
	APIKeyConfigured bool
	// CheckURL is probed by the prober; sources without one are never probed.
	CheckURL string
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary.
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
