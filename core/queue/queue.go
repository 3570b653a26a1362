package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taruf-api/core/config"
	"taruf-api/core/constants"
	"taruf-api/core/logger"

	"github.com/hibiken/asynq"
)

// ErrAlreadyQueued means a run for the same taruf is already waiting.
var ErrAlreadyQueued = errors.New("task already queued")

type AutoAssignPayload struct {
	TarufID int64 `json:"taruf_id"`
}

// NewAutoAssignTask builds the queued run for one taruf.
func NewAutoAssignTask(tarufID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(AutoAssignPayload{TarufID: tarufID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskTypeAutoAssign, payload), nil
}

// autoAssignOptions leaves the task id to asynq. Duplicate runs are held
// off by the unique lock alone, since archived task ids are kept.
func autoAssignOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(constants.AutoAssignMaxRetry),
		asynq.Timeout(constants.AssignmentTimeout),
		asynq.Unique(constants.AutoAssignUniqueTTL),
	}
}

func ParseAutoAssignPayload(t *asynq.Task) (AutoAssignPayload, error) {
	var p AutoAssignPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode %s payload: %w", t.Type(), err)
	}
	if p.TarufID <= 0 {
		return p, fmt.Errorf("decode %s payload: taruf_id must be positive", t.Type())
	}
	return p, nil
}

// Enqueuer schedules background auto-assignment runs.
type Enqueuer interface {
	EnqueueAutoAssign(ctx context.Context, tarufID int64) (string, error)
}

// taskEnqueuer is the part of *asynq.Client the Client uses.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client enqueues background tasks.
type Client struct {
	client taskEnqueuer
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

// NewClient connects an asynq client to Redis.
func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(RedisOpt(cfg))}
}

func (c *Client) EnqueueAutoAssign(ctx context.Context, tarufID int64) (string, error) {
	task, err := NewAutoAssignTask(tarufID)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task, autoAssignOptions()...)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return "", ErrAlreadyQueued
		}
		return "", err
	}
	logger.Info("Queue:EnqueueAutoAssign:Enqueued", "taruf_id", tarufID, "task_id", info.ID)
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker runs queued tasks until Shutdown.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker creates a worker for the default queue.
func NewWorker(cfg config.RedisConfig, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = constants.QueueWorkerConcurrency
	}
	server := asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{constants.QueueDefault: 1},
		Logger:      logger.AsynqLogger(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "type", task.Type(), err)
		}),
	})
	return &Worker{server: server, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(pattern string, handler asynq.Handler) {
	w.mux.Handle(pattern, handler)
}

// Start begins processing in the background.
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
