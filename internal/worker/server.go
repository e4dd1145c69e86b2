package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"payout-service/internal/consumers"
	"payout-service/internal/services"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.ReconcileProcessor
}

func NewWorker(processor *consumers.ReconcileProcessor) *Worker {
	return &Worker{Processor: processor}
}

func (w *Worker) HandleReconcile(ctx context.Context, t *asynq.Task) error {
	var scope services.ReconcileScope
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &scope); err != nil {
			return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
		}
	}
	return w.Processor.ProcessReconcile(ctx, scope)
}

func (w *Worker) HandleBankSync(ctx context.Context, t *asynq.Task) error {
	return w.Processor.ProcessBankSync(ctx)
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.ReconcileProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(services.TaskTypeReconcile, worker.HandleReconcile)
	mux.HandleFunc(services.TaskTypeBankSync, worker.HandleBankSync)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
