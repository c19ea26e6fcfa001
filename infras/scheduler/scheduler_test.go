package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kost/infras/otel/mocks"
	"kost/infras/scheduler"
)

func TestScheduler_Register(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())

	err := sched.Register(scheduler.Job{Name: "sync-rooms", Spec: "*/15 * * * *", Run: func(context.Context) {}})
	require.NoError(t, err)

	err = sched.Register(scheduler.Job{Name: "broken", Spec: "every now and then", Run: func(context.Context) {}})
	assert.Error(t, err)
}

func TestScheduler_RunsJobs(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())

	ran := make(chan struct{}, 1)

	err := sched.Register(scheduler.Job{
		Name: "tick",
		Spec: "@every 1s",
		Run: func(context.Context) {
			select {
			case ran <- struct{}{}:
			default:
			}
		},
	})
	require.NoError(t, err)

	sched.Start()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sched.Stop(ctx)
}
