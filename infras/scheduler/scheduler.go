package scheduler

import (
	"context"
	"fmt"
	"kost/infras/otel"
	"kost/shared/constant"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is a named unit of periodic work.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context)
}

type Scheduler struct {
	cron *cron.Cron
	otel otel.Otel
}

func New(otel otel.Otel) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		otel: otel,
	}
}

// Register adds job to the schedule. It does not start the scheduler.
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() {
		ctx, scope := s.otel.NewScope(context.Background(), constant.OtelSchedulerScope, constant.OtelSchedulerScope+"."+job.Name)
		defer scope.End()

		log.Debug().Str("job", job.Name).Msg("running scheduled job")

		job.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.Name, err)
	}

	log.Info().Str("job", job.Name).Str("spec", job.Spec).Msg("Scheduled job registered")

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop halts the schedule and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		log.Info().Msg("Scheduler stopped")
	case <-ctx.Done():
		log.Warn().Msg("Scheduler stop timed out while jobs were running")
	}
}
