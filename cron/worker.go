package cron

import (
	"context"
	"encoding/json"
	"time"

	"horizon/config"
	"horizon/services/booking"
	"horizon/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReplay = "booking:replay"

type replayPayload struct {
	RecordID string `json:"recordId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReplayScheduler puts captured bookings onto the replay queue. It satisfies
// booking.PendingEnqueuer.
type ReplayScheduler struct {
	client *asynq.Client
}

func NewReplayScheduler() *ReplayScheduler {
	return &ReplayScheduler{client: asynq.NewClient(redisOpts())}
}

// EnqueueReplay schedules a reconciliation pass for the given pending record.
// The first attempt is delayed to let transient store pressure clear.
func (s *ReplayScheduler) EnqueueReplay(recordID string) error {
	payload, err := json.Marshal(replayPayload{RecordID: recordID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingReplay, payload)
	_, err = s.client.Enqueue(task,
		asynq.ProcessIn(30*time.Second),
		asynq.MaxRetry(10),
		asynq.Timeout(2*time.Minute),
	)
	return err
}

func (s *ReplayScheduler) Close() error {
	return s.client.Close()
}

// InitReplayWorker runs the reconciliation worker in background.
func InitReplayWorker(svc booking.BookingService) {
	logger := utils.GetLogger().With(zap.String("component", "replayWorker"))

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReplay, handleReplayTask(svc))

	go func() {
		logger.Info("starting replay worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("replay worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("replay worker gave up starting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReplayTask(svc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger().With(zap.String("component", "replayWorker"))

		var p replayPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid replay payload", zap.Error(err))
			return err
		}

		if err := svc.ReplayPending(ctx, p.RecordID); err != nil {
			logger.Warn("replay attempt failed, asynq will retry",
				zap.String("recordId", p.RecordID), zap.Error(err))
			return err
		}
		return nil
	}
}
