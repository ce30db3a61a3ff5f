package tasks

import (
	"context"

	"github.com/hibiken/asynq"
)

// Enqueuer submits mail tasks to the queue. It satisfies the notifier
// interfaces of the auth and applications services.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer constructs an Asynq-backed enqueuer.
func NewEnqueuer(redisOpts asynq.RedisClientOpt) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpts)}
}

// UserRegistered enqueues the welcome mail for a new account.
func (e *Enqueuer) UserRegistered(ctx context.Context, email, name string) error {
	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{To: email, Name: name})
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// ApplicationReceived enqueues the confirmation mail for a submitted application.
func (e *Enqueuer) ApplicationReceived(ctx context.Context, email, jobTitle string) error {
	task, err := NewApplicationEmailTask(ApplicationEmailPayload{To: email, JobTitle: jobTitle})
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
