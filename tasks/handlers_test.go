package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleWelcomeEmail(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandlers(mailer, nil, testLogger())

	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{To: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, h.HandleWelcomeEmail(context.Background(), task))
	require.Equal(t, "ana@example.com", mailer.to)
	require.Equal(t, "Welcome to JobHive", mailer.subject)
	require.Contains(t, mailer.body, "Ana")
}

func TestHandleApplicationEmail(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandlers(mailer, nil, testLogger())

	task, err := NewApplicationEmailTask(ApplicationEmailPayload{To: "ana@example.com", JobTitle: "Go Developer"})
	require.NoError(t, err)

	require.NoError(t, h.HandleApplicationEmail(context.Background(), task))
	require.Equal(t, "Application received", mailer.subject)
	require.Contains(t, mailer.body, "Go Developer")
}

func TestHandleWelcomeEmailMalformedPayloadSkipsRetry(t *testing.T) {
	h := NewMailHandlers(&recordingMailer{}, nil, testLogger())
	err := h.HandleWelcomeEmail(context.Background(), asynq.NewTask(TaskTypeWelcomeEmail, []byte("{not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleApplicationEmailMailerFailureIsRetried(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	h := NewMailHandlers(mailer, nil, testLogger())

	task, err := NewApplicationEmailTask(ApplicationEmailPayload{To: "ana@example.com", JobTitle: "Go Developer"})
	require.NoError(t, err)

	err = h.HandleApplicationEmail(context.Background(), task)
	require.Error(t, err)
	require.NotErrorIs(t, err, asynq.SkipRetry)
}
