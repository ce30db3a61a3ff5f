package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background tasks.
	QueueDefault = "default"
	// TaskTypeWelcomeEmail is the task type for the post-registration welcome mail.
	TaskTypeWelcomeEmail = "mail:welcome"
	// TaskTypeApplicationEmail is the task type for the application-received mail.
	TaskTypeApplicationEmail = "mail:application"
)

// WelcomeEmailPayload describes the welcome mail for a freshly registered user.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// ApplicationEmailPayload describes the confirmation mail for a submitted application.
type ApplicationEmailPayload struct {
	To       string `json:"to"`
	JobTitle string `json:"job_title"`
}

// NewWelcomeEmailTask constructs an Asynq task.
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWelcomeEmail, data), nil
}

// NewApplicationEmailTask constructs an Asynq task.
func NewApplicationEmailTask(payload ApplicationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeApplicationEmail, data), nil
}
