package di

import (
	"context"
	"kost/config"
	"kost/infras/otel"
	"kost/infras/scheduler"
	reconService "kost/internal/domains/reconciliation/service"

	"github.com/rs/zerolog/log"
)

const jobSyncRooms = "sync-rooms"

// NewScheduler builds the cron scheduler with the availability sync registered when enabled.
func NewScheduler(cfg *config.Config, otel otel.Otel, reconciler reconService.Reconciler) *scheduler.Scheduler {
	sched := scheduler.New(otel)

	if !cfg.Sync.Enable {
		return sched
	}

	err := sched.Register(scheduler.Job{
		Name: jobSyncRooms,
		Spec: cfg.Sync.Cron,
		Run: func(ctx context.Context) {
			result := reconciler.SyncRooms(ctx)
			if result.Error != "" {
				log.Error().Str("error", result.Error).Msg("scheduled room sync failed")

				return
			}

			log.Info().Int("active_rooms", result.ActiveRooms).Int("updated", result.Updated).Msg("scheduled room sync completed")
		},
	})
	if err != nil {
		log.Error().Err(err).Str("spec", cfg.Sync.Cron).Msg("failed to schedule room sync")
	}

	return sched
}
