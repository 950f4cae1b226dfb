package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the document store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// DefaultTimeout bounds a single store ping.
const DefaultTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	timeout time.Duration
}

// New creates a Service. A non-positive timeout uses DefaultTimeout.
func New(db DBPinger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{db: db, timeout: timeout}
}

// Check pings the document store.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn("Store ping failed", zap.Error(err))
		return Report{Status: Unhealthy, Checks: map[string]CheckResult{"database": CheckError}}
	}
	return Report{Status: Healthy, Checks: map[string]CheckResult{"database": CheckOK}}
}
