package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBookingComplete = "booking:complete"

// CompletionPayload is carried by every scheduled sweep.
type CompletionPayload struct {
	Source string `json:"source"`
}

// NewCompletionTask builds the sweep task. Unique keeps overlapping schedulers from enqueuing it twice.
func NewCompletionTask(source string, every time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(CompletionPayload{Source: source})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingComplete, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(time.Minute)}
	if every > 0 {
		opts = append(opts, asynq.Unique(every))
	}
	return task, opts, nil
}
