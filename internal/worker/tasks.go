package worker

import (
	"encoding/json"

	"payout-service/internal/services"

	"github.com/hibiken/asynq"
)

// NewReconcileTask builds a reconciliation task. An empty scope sweeps
// everything stale.
func NewReconcileTask(scope services.ReconcileScope) (*asynq.Task, error) {
	data, err := json.Marshal(scope)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(services.TaskTypeReconcile, data), nil
}

func NewBankSyncTask() *asynq.Task {
	return asynq.NewTask(services.TaskTypeBankSync, nil)
}
