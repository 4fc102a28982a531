package jobs

import (
	"context"
	"time"

	"github.com/pragyanai/demotrack/internal/domain"
	"go.uber.org/zap"
)

// ProjectRefreshJobName is the name of the project aggregation refresh job
const ProjectRefreshJobName = "project_refresh"

// ProjectAggregator re-reads every approved event's workbook and rebuilds
// the cross-event project cache. This interface lets the job call the
// service without importing the service package directly.
type ProjectAggregator interface {
	Refresh(ctx context.Context) ([]domain.Submission, error)
}

// ProjectRefreshJob keeps the cross-event project cache warm so that
// portal pages and the report QA pipeline read fresh rows without paying
// the aggregation latency on request.
type ProjectRefreshJob struct {
	aggregator ProjectAggregator
	logger     *zap.Logger
	timeout    time.Duration
}

// NewProjectRefreshJob creates a new project cache refresh job.
// The timeout bounds one full aggregation sweep across event workbooks.
func NewProjectRefreshJob(aggregator ProjectAggregator, logger *zap.Logger, timeout time.Duration) *ProjectRefreshJob {
	return &ProjectRefreshJob{
		aggregator: aggregator,
		logger:     logger,
		timeout:    timeout,
	}
}

// Run executes one refresh sweep. This is called by the scheduler
// according to the cron expression.
func (j *ProjectRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	subs, err := j.aggregator.Refresh(ctx)
	if err != nil {
		j.logger.Error("project cache refresh failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("project cache refreshed",
		zap.Int("projects", len(subs)),
		zap.Duration("duration", time.Since(start)))
}
