package jobs

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStatusDistributionSchedule refreshes the gauge every thirty seconds.
const DefaultStatusDistributionSchedule = "*/30 * * * * *"

type statusDistributionQueryHandler interface {
	Handle(
		ctx context.Context,
		query queries.GetStatusDistributionQuery,
	) (queries.GetStatusDistributionQueryResponse, error)
}

// StatusDistributionSink receives the per-status order counts.
type StatusDistributionSink interface {
	SetStatusDistribution(counts []queries.StatusCount)
}

// StatusDistributionJob periodically publishes the number of orders in each status.
type StatusDistributionJob struct {
	handler  statusDistributionQueryHandler
	sink     StatusDistributionSink
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusDistributionJob uses DefaultStatusDistributionSchedule when schedule is
// empty. Schedules use the six-field cron format with seconds.
func NewStatusDistributionJob(
	handler statusDistributionQueryHandler,
	sink StatusDistributionSink,
	schedule string,
	logger *slog.Logger,
) *StatusDistributionJob {
	if schedule == "" {
		schedule = DefaultStatusDistributionSchedule
	}
	return &StatusDistributionJob{
		handler:  handler,
		sink:     sink,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_distribution_job"),
	}
}

// Run refreshes the sink once.
func (j *StatusDistributionJob) Run(ctx context.Context) error {
	response, err := j.handler.Handle(ctx, queries.NewGetStatusDistributionQuery())
	if err != nil {
		return err
	}
	j.sink.SetStatusDistribution(response.Counts)
	return nil
}

func (j *StatusDistributionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Status distribution job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status distribution job started", "schedule", j.schedule)
	return nil
}

func (j *StatusDistributionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status distribution job stopped")
}
