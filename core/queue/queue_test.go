package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"taruf-api/core/constants"

	"github.com/hibiken/asynq"
)

func TestAutoAssignTaskRoundTrip(t *testing.T) {
	task, err := NewAutoAssignTask(12)
	if err != nil {
		t.Fatalf("NewAutoAssignTask() error = %v", err)
	}
	if task.Type() != constants.TaskTypeAutoAssign {
		t.Errorf("Type() = %q", task.Type())
	}

	p, err := ParseAutoAssignPayload(task)
	if err != nil {
		t.Fatalf("ParseAutoAssignPayload() error = %v", err)
	}
	if p.TarufID != 12 {
		t.Errorf("TarufID = %d, want 12", p.TarufID)
	}
}

func TestParseAutoAssignPayloadRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"not json", `{"taruf_id":0}`, `{}`} {
		if _, err := ParseAutoAssignPayload(asynq.NewTask(constants.TaskTypeAutoAssign, []byte(raw))); err == nil {
			t.Errorf("ParseAutoAssignPayload(%s) expected error", raw)
		}
	}
}

// fakeBackend mimics the asynq rules that matter here: task ids are kept
// after a task is archived, and a unique lock blocks identical tasks until
// it is released.
type fakeBackend struct {
	ids    map[string]bool
	locks  map[string]bool
	nextID int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{ids: map[string]bool{}, locks: map[string]bool{}}
}

func (f *fakeBackend) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	id := ""
	unique := false
	for _, opt := range opts {
		switch opt.Type() {
		case asynq.TaskIDOpt:
			id = opt.Value().(string)
		case asynq.UniqueOpt:
			unique = true
		}
	}
	if id == "" {
		f.nextID++
		id = fmt.Sprintf("task-%d", f.nextID)
	}
	if f.ids[id] {
		return nil, asynq.ErrTaskIDConflict
	}
	lockKey := task.Type() + ":" + string(task.Payload())
	if unique && f.locks[lockKey] {
		return nil, asynq.ErrDuplicateTask
	}
	f.ids[id] = true
	if unique {
		f.locks[lockKey] = true
	}
	return &asynq.TaskInfo{ID: id, Type: task.Type(), Payload: task.Payload()}, nil
}

func (f *fakeBackend) Close() error { return nil }

// archiveAll drops the unique locks the way a failed run plus lock expiry
// does, while keeping every task id.
func (f *fakeBackend) archiveAll() {
	f.locks = map[string]bool{}
}

func TestEnqueueAutoAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate while pending", func(t *testing.T) {
		c := &Client{client: newFakeBackend()}
		if _, err := c.EnqueueAutoAssign(ctx, 7); err != nil {
			t.Fatalf("first enqueue: %v", err)
		}
		if _, err := c.EnqueueAutoAssign(ctx, 7); !errors.Is(err, ErrAlreadyQueued) {
			t.Fatalf("second enqueue err = %v, want ErrAlreadyQueued", err)
		}
		if _, err := c.EnqueueAutoAssign(ctx, 8); err != nil {
			t.Fatalf("other taruf: %v", err)
		}
	})

	t.Run("archived run does not block the next one", func(t *testing.T) {
		backend := newFakeBackend()
		c := &Client{client: backend}
		first, err := c.EnqueueAutoAssign(ctx, 7)
		if err != nil {
			t.Fatalf("first enqueue: %v", err)
		}

		backend.archiveAll()

		second, err := c.EnqueueAutoAssign(ctx, 7)
		if err != nil {
			t.Fatalf("re-enqueue after archive: %v", err)
		}
		if first == second {
			t.Errorf("task id reused: %s", second)
		}
	})
}

func TestAutoAssignOptionsAreUniqueWithoutFixedID(t *testing.T) {
	var unique bool
	for _, opt := range autoAssignOptions() {
		switch opt.Type() {
		case asynq.TaskIDOpt:
			t.Errorf("unexpected fixed task id %v", opt.Value())
		case asynq.UniqueOpt:
			unique = true
		}
	}
	if !unique {
		t.Error("auto-assign tasks must carry a unique lock")
	}
}
