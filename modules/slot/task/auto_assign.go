package task

import (
	"context"
	"fmt"

	"taruf-api/core/errors"
	"taruf-api/core/logger"
	"taruf-api/core/queue"
	"taruf-api/modules/slot/service"

	"github.com/hibiken/asynq"
)

// AutoAssignHandler runs queued auto-assignment jobs through the same
// service path as the synchronous endpoint.
type AutoAssignHandler struct {
	SlotService service.SlotServiceInterface
}

func NewAutoAssignHandler(svc service.SlotServiceInterface) *AutoAssignHandler {
	return &AutoAssignHandler{SlotService: svc}
}

func (h *AutoAssignHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := queue.ParseAutoAssignPayload(t)
	if err != nil {
		logger.Error("AutoAssignHandler:ProcessTask:Payload", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	result, appErr := h.SlotService.RunAutoAssignment(ctx, payload.TarufID)
	if appErr != nil {
		if appErr.Code == errors.ErrInvalidInput {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, appErr)
		}
		// conflicts included: a concurrent run holds the lock, retry later
		return appErr
	}

	logger.Info("AutoAssignHandler:ProcessTask:Done",
		"taruf_id", payload.TarufID,
		"run_id", result.RunID,
		"assigned_pairs", result.AssignedPairs,
	)
	return nil
}
