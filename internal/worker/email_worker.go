package worker

// email_worker.go
// Processes email jobs from QueueEmail: verification links on sign-up and
// order confirmations after payment. Retries with backoff; jobs that keep
// failing land in the DLQ for manual inspection.

import (
	"context"
	"encoding/json"

	"github.com/HelloMeow10/project-root-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailWorker sends transactional mail via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process delivers one email job, retrying transient SMTP failures.
func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	err := withRetry(ctx, maxEmailAttempts, func(attempt int) error {
		if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("to", payload.ToEmail).
				Msg("email_worker: send failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		SendToDLQ(ctx, rdb, QueueEmail, "email", raw, err.Error(), maxEmailAttempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
}
