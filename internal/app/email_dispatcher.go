package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/mail"
)

type EmailJob struct {
	Reminder  *domain.Reminder
	Recipient *domain.UserProfile
}

// EmailDispatcher sends one mail per job. With workers <= 1 jobs go out
// sequentially; otherwise through a bounded pool. A failed send never
// stops the remaining jobs.
type EmailDispatcher struct {
	mailer  mail.Mailer
	workers int
}

func NewEmailDispatcher(mailer mail.Mailer, workers int) *EmailDispatcher {
	return &EmailDispatcher{
		mailer:  mailer,
		workers: workers,
	}
}

func (d *EmailDispatcher) Dispatch(ctx context.Context, jobs []EmailJob) []DeliveryResult {
	results := make([]DeliveryResult, len(jobs))

	if d.workers <= 1 {
		for i, job := range jobs {
			results[i] = d.send(ctx, job)
		}

		return results
	}

	var g errgroup.Group
	g.SetLimit(d.workers)

	for i, job := range jobs {
		g.Go(func() error {
			results[i] = d.send(ctx, job)

			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (d *EmailDispatcher) send(ctx context.Context, job EmailJob) DeliveryResult {
	r := job.Reminder
	to := job.Recipient.Email()

	err := d.mailer.Send(ctx, mail.Message{
		To:      to,
		ToName:  job.Recipient.Name(),
		Subject: emailSubject(r),
		Body:    r.Message(),
	})
	if err != nil {
		slog.WarnContext(ctx, "reminder email failed",
			slog.String("reminder_id", r.ID().String()),
			slog.String("error", err.Error()),
		)
	}

	return DeliveryResult{
		ReminderID: r.ID(),
		Channel:    domain.ChannelEmail,
		Payload:    emailPayload(r, to),
		Err:        err,
	}
}
