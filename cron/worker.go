package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"roomly/config"
	"roomly/services/reservation"

	"github.com/hibiken/asynq"
)

const TypeReservationExpire = "reservation:expire"

// expiryPayload is the task body for a scheduled hold release.
type expiryPayload struct {
	ReservationID string `json:"reservationId"`
}

// ExpiryEnqueuer schedules reservation-expiry tasks on the Redis-backed
// queue. It implements reservation.ExpiryEnqueuer.
type ExpiryEnqueuer struct {
	client *asynq.Client
}

// NewExpiryEnqueuer creates the task client for scheduling holds.
func NewExpiryEnqueuer() *ExpiryEnqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisExpiryJobDB,
	})
	return &ExpiryEnqueuer{client: client}
}

// EnqueueExpiry schedules the release of a pending reservation at `at`.
func (e *ExpiryEnqueuer) EnqueueExpiry(ctx context.Context, reservationID string, at time.Time) error {
	payload, err := json.Marshal(expiryPayload{ReservationID: reservationID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeReservationExpire, payload)
	_, err = e.client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.MaxRetry(3))
	return err
}

// InitExpiryWorker runs the async worker in background.
func InitExpiryWorker(svc reservation.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisExpiryJobDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationExpire, handleExpiryTask(svc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpiryTask(svc reservation.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p expiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryWorker] invalid payload: %v", err)
			return err
		}
		return svc.Expire(ctx, p.ReservationID, time.Now())
	}
}
