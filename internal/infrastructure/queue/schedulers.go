package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"comicvault-backend/internal/shared"
	"comicvault-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddress,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerPurgeScanArchiveJob()
}

// ================================================
// JOB: Purge Scan Archive (Daily at 3 AM)
// ================================================
func (s *Scheduler) registerPurgeScanArchiveJob() error {
	payload, err := json.Marshal(shared.PurgeScanArchivePayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeScanArchive, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PurgeScanArchive job", err)
		return err
	}

	logger.Info("✓ Registered PurgeScanArchive: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
