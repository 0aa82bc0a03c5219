package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chargesphere/config"
	"chargesphere/services/tasks"
	"chargesphere/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const defaultSchedule = "@every 15m"

// Completer moves finished bookings to completed.
type Completer interface {
	CompletePastBookings(ctx context.Context, now time.Time) (int64, error)
}

func redisOpts(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// StartCompletionWorker runs the asynq worker and scheduler in the background
// and returns a function that stops both.
func StartCompletionWorker(cfg config.Config, svc Completer) (func(), error) {
	schedule := cfg.CompletionSchedule
	if schedule == "" {
		schedule = defaultSchedule
	}
	logger := utils.GetLogger().Sugar()

	srv := asynq.NewServer(
		redisOpts(cfg),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger,
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingComplete, HandleCompletionTask(svc, time.Now))

	scheduler := asynq.NewScheduler(redisOpts(cfg), &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   logger,
	})
	task, opts, err := tasks.NewCompletionTask("scheduler", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to build completion task: %w", err)
	}
	entryID, err := scheduler.Register(schedule, task, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to register completion schedule %q: %w", schedule, err)
	}

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start completion worker: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("failed to start completion scheduler: %w", err)
	}
	utils.GetLogger().Info("Completion worker started", zap.String("schedule", schedule), zap.String("entryID", entryID))

	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
		utils.GetLogger().Info("Completion worker stopped")
	}, nil
}

// HandleCompletionTask completes every confirmed booking whose slot has passed.
func HandleCompletionTask(svc Completer, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CompletionPayload
		if len(task.Payload()) > 0 {
			if err := json.Unmarshal(task.Payload(), &p); err != nil {
				utils.GetLogger().Error("Invalid completion payload", zap.Error(err))
				return fmt.Errorf("invalid payload: %w: %w", err, asynq.SkipRetry)
			}
		}

		n, err := svc.CompletePastBookings(ctx, now())
		if err != nil {
			utils.GetLogger().Error("Completion sweep failed", zap.String("source", p.Source), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("Completion sweep finished", zap.String("source", p.Source), zap.Int64("completed", n))
		return nil
	}
}
