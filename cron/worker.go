package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"stayflow/cache"
	"stayflow/config"
	"stayflow/services/booking"
)

const (
	// TypeHoldsSweep evicts every expired reservation hold.
	TypeHoldsSweep = "holds:sweep"
	// TypeHoldRefresh re-runs prebook for a hold approaching expiry.
	TypeHoldRefresh = "hold:refresh"
)

// RefreshPayload identifies the hold a refresh task should check.
type RefreshPayload struct {
	Code string `json:"code"`
}

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitHoldWorker runs the background worker: a periodic sweep of expired
// holds plus delayed refresh checks for holds nearing expiry.
func InitHoldWorker(holds cache.HoldStore, svc booking.Service) {
	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeHoldsSweep, handleSweepTask(holds))
	mux.HandleFunc(TypeHoldRefresh, handleRefreshTask(svc))

	// Periodic sweep, independent of read-triggered eviction.
	scheduler := asynq.NewScheduler(queueRedisOpt(), nil)
	if _, err := scheduler.Register("@every 5m", asynq.NewTask(TypeHoldsSweep, nil)); err != nil {
		log.Printf("[HoldWorker] failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[HoldWorker] scheduler stopped: %v", err)
		}
	}()

	// Start the worker with a backoff so a slow redis at boot is survivable.
	go func() {
		log.Println("[HoldWorker] starting background worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[HoldWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[HoldWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// EnqueueHoldRefresh schedules a refresh check shortly before a hold expires.
func EnqueueHoldRefresh(client *asynq.Client, code string, delay time.Duration) error {
	payload, err := json.Marshal(RefreshPayload{Code: code})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeHoldRefresh, payload)
	_, err = client.Enqueue(task, asynq.ProcessIn(delay))
	return err
}

func handleSweepTask(holds cache.HoldStore) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		evicted, err := holds.Sweep(ctx)
		if err != nil {
			log.Printf("[HoldWorker] sweep failed: %v", err)
			return err
		}
		if evicted > 0 {
			log.Printf("[HoldWorker] sweep evicted %d expired holds", evicted)
		}
		return nil
	}
}

func handleRefreshTask(svc booking.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[HoldWorker] invalid refresh payload: %v", err)
			return err
		}
		if err := svc.RefreshHoldIfNeeded(ctx, p.Code); err != nil {
			log.Printf("[HoldWorker] refresh failed for %s: %v", p.Code, err)
			return err
		}
		return nil
	}
}
