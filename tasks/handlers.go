package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// MailHandlers processes the mail task types using an injected Mailer.
type MailHandlers struct {
	mailer  Mailer
	metrics *Metrics
	logger  *slog.Logger
}

// NewMailHandlers constructs the mail task handlers. Metrics may be nil.
func NewMailHandlers(mailer Mailer, metrics *Metrics, logger *slog.Logger) *MailHandlers {
	return &MailHandlers{mailer: mailer, metrics: metrics, logger: logger}
}

// HandleWelcomeEmail processes TaskTypeWelcomeEmail tasks.
func (h *MailHandlers) HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	tracker := h.metrics.Track(TaskTypeWelcomeEmail)
	body := fmt.Sprintf("Hi %s,\n\nYour JobHive account is ready. Sign in to browse open positions.\n", payload.Name)
	if err := h.mailer.Send(payload.To, "Welcome to JobHive", body); err != nil {
		h.logger.Warn("welcome mail", slog.String("to", payload.To), slog.Any("error", err))
		return tracker.End(err)
	}
	return tracker.End(nil)
}

// HandleApplicationEmail processes TaskTypeApplicationEmail tasks.
func (h *MailHandlers) HandleApplicationEmail(ctx context.Context, t *asynq.Task) error {
	var payload ApplicationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	tracker := h.metrics.Track(TaskTypeApplicationEmail)
	body := fmt.Sprintf("We received your application for %q. The employer will review it shortly.\n", payload.JobTitle)
	if err := h.mailer.Send(payload.To, "Application received", body); err != nil {
		h.logger.Warn("application mail", slog.String("to", payload.To), slog.Any("error", err))
		return tracker.End(err)
	}
	return tracker.End(nil)
}
