package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/pubsub"
)

const (
	defaultSweepBatchSize   = 200
	defaultSweepLease       = 5 * time.Minute
	defaultSweepConcurrency = 8
)

type sweepUseCaseImpl struct {
	uow       domain.UnitOfWork
	resolver  *domain.ReferenceResolver
	email     *EmailDispatcher
	push      *PushDispatcher
	publisher pubsub.Publisher
	recorder  *OutcomeRecorder
	cfg       SweepConfig
	now       Clock

	mu sync.Mutex
}

// NewSweepUseCase wires one sweep pipeline. publisher may be nil, in which
// case no reminder events are emitted.
func NewSweepUseCase(
	uow domain.UnitOfWork,
	resolver *domain.ReferenceResolver,
	email *EmailDispatcher,
	push *PushDispatcher,
	publisher pubsub.Publisher,
	cfg SweepConfig,
	clock Clock,
) SweepUseCase {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultSweepBatchSize
	}

	if cfg.Lease <= 0 {
		cfg.Lease = defaultSweepLease
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultSweepConcurrency
	}

	if resolver == nil {
		resolver = NewReferenceResolver(uow.Repositories())
	}

	return &sweepUseCaseImpl{
		uow:       uow,
		resolver:  resolver,
		email:     email,
		push:      push,
		publisher: publisher,
		recorder:  NewOutcomeRecorder(uow, clock),
		cfg:       cfg,
		now:       clock.orDefault(),
	}
}

func (uc *sweepUseCaseImpl) channels() []domain.Channel {
	var channels []domain.Channel

	if uc.cfg.EmailEnabled && uc.email != nil {
		channels = append(channels, domain.ChannelEmail)
	}

	if uc.cfg.PushEnabled && uc.push != nil {
		channels = append(channels, domain.ChannelPush)
	}

	return channels
}

func (uc *sweepUseCaseImpl) Sweep(ctx context.Context) (SweepOutput, error) {
	if !uc.mu.TryLock() {
		slog.Info("sweep already running, skipping tick")

		return SweepOutput{Skipped: true}, nil
	}
	defer uc.mu.Unlock()

	repos := uc.uow.Repositories()

	due, err := repos.Reminders.ClaimDue(ctx, uc.now(), uc.cfg.Lease, uc.cfg.BatchSize)
	if err != nil {
		slog.Error("failed to claim due reminders", "error", err)

		return SweepOutput{}, wrapStoreError(err)
	}

	if len(due) == 0 {
		slog.Debug("no due reminders")

		return SweepOutput{}, nil
	}

	channels := uc.channels()

	recipients, err := uc.loadRecipients(ctx, repos, due, channels)
	if err != nil {
		slog.Error("failed to load recipients, releasing claimed reminders",
			"error", err,
			"claimed", len(due),
		)

		uc.release(ctx, due)

		return SweepOutput{Claimed: len(due)}, wrapStoreError(err)
	}

	skips, emailJobs, pushJobs := uc.evaluate(ctx, due, recipients, channels)

	outcome := SweepOutcome{
		Due:      due,
		Channels: channels,
		Skips:    skips,
	}

	if len(emailJobs) > 0 {
		outcome.Deliveries = append(outcome.Deliveries, uc.email.Dispatch(ctx, emailJobs)...)
	}

	if len(pushJobs) > 0 {
		report := uc.push.Dispatch(ctx, pushJobs)
		outcome.Deliveries = append(outcome.Deliveries, report.Results...)
		outcome.Unregistered = report.Unregistered
	}

	res, err := uc.recorder.Finalize(ctx, outcome)
	if err != nil {
		return SweepOutput{Claimed: len(due)}, err
	}

	out := SweepOutput{
		Claimed:     len(due),
		Sent:        len(res.Sent),
		Disabled:    len(res.Disabled),
		Released:    len(res.Released),
		HistoryRows: res.HistoryRows,
		Deactivated: res.Deactivated,
	}

	slog.Info("sweep finished",
		"claimed", out.Claimed,
		"sent", out.Sent,
		"disabled", out.Disabled,
		"released", out.Released,
		"history_rows", out.HistoryRows,
		"deactivated", out.Deactivated,
	)

	uc.publishEvents(ctx, due, res)

	return out, nil
}

func (uc *sweepUseCaseImpl) loadRecipients(
	ctx context.Context,
	repos domain.Repositories,
	due []*domain.Reminder,
	channels []domain.Channel,
) (map[domain.UserID]domain.Recipient, error) {
	seen := make(map[domain.UserID]struct{})
	userIDs := make([]domain.UserID, 0, len(due))

	for _, r := range due {
		if _, ok := seen[r.UserID()]; ok {
			continue
		}

		seen[r.UserID()] = struct{}{}
		userIDs = append(userIDs, r.UserID())
	}

	profiles, err := repos.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	var tokens map[domain.UserID]domain.DeviceTokens

	for _, ch := range channels {
		if ch != domain.ChannelPush {
			continue
		}

		tokens, err = repos.Devices.FindActiveByUsers(ctx, userIDs)
		if err != nil {
			return nil, err
		}
	}

	recipients := make(map[domain.UserID]domain.Recipient, len(userIDs))
	for _, id := range userIDs {
		recipients[id] = domain.Recipient{
			Profile: profiles[id],
			Tokens:  tokens[id],
		}
	}

	return recipients, nil
}

type evaluation struct {
	resolved bool
	skips    []ChannelSkip
	email    *EmailJob
	push     *PushJob
}

// evaluate runs the preference filter for every claimed reminder on a
// bounded pool. A reminder whose reference cannot be resolved is left
// without skips or deliveries, so it is released.
func (uc *sweepUseCaseImpl) evaluate(
	ctx context.Context,
	due []*domain.Reminder,
	recipients map[domain.UserID]domain.Recipient,
	channels []domain.Channel,
) ([]ChannelSkip, []EmailJob, []PushJob) {
	evaluations := make([]evaluation, len(due))

	var g errgroup.Group
	g.SetLimit(uc.cfg.Concurrency)

	for i, reminder := range due {
		g.Go(func() error {
			evaluations[i] = uc.evaluateOne(ctx, reminder, recipients[reminder.UserID()], channels)

			return nil
		})
	}

	_ = g.Wait()

	var (
		skips     []ChannelSkip
		emailJobs []EmailJob
		pushJobs  []PushJob
	)

	for _, e := range evaluations {
		if !e.resolved {
			continue
		}

		skips = append(skips, e.skips...)

		if e.email != nil {
			emailJobs = append(emailJobs, *e.email)
		}

		if e.push != nil {
			pushJobs = append(pushJobs, *e.push)
		}
	}

	return skips, emailJobs, pushJobs
}

func (uc *sweepUseCaseImpl) evaluateOne(
	ctx context.Context,
	reminder *domain.Reminder,
	recipient domain.Recipient,
	channels []domain.Channel,
) evaluation {
	var e evaluation

	if len(channels) == 0 {
		e.resolved = true

		return e
	}

	var target domain.ReferenceTarget

	if recipient.Exists() {
		var err error

		target, err = uc.resolver.Resolve(ctx, reminder.UserID(), reminder.Reference())
		if err != nil {
			slog.WarnContext(ctx, "failed to resolve reminder reference",
				slog.String("reminder_id", reminder.ID().String()),
				slog.String("reference", reminder.Reference().String()),
				slog.String("error", err.Error()),
			)

			return e
		}
	}

	e.resolved = true

	for _, ch := range channels {
		verdict := domain.IsEligible(reminder, recipient, ch, target)
		if !verdict.Eligible {
			e.skips = append(e.skips, ChannelSkip{
				ReminderID: reminder.ID(),
				Channel:    ch,
				Reason:     verdict.Reason,
				Payload:    skipPayload(reminder, recipient, ch),
			})

			continue
		}

		switch ch {
		case domain.ChannelEmail:
			e.email = &EmailJob{Reminder: reminder, Recipient: recipient.Profile}
		case domain.ChannelPush:
			e.push = &PushJob{Reminder: reminder, Tokens: recipient.Tokens.Deliverable()}
		}
	}

	return e
}

func skipPayload(r *domain.Reminder, recipient domain.Recipient, ch domain.Channel) map[string]any {
	if ch == domain.ChannelPush {
		return pushPayload(r, recipient.Tokens.Deliverable().Count())
	}

	to := ""
	if recipient.Exists() {
		to = recipient.Profile.Email()
	}

	return emailPayload(r, to)
}

func (uc *sweepUseCaseImpl) release(ctx context.Context, due []*domain.Reminder) {
	ids := make([]domain.ReminderID, len(due))
	for i, r := range due {
		ids[i] = r.ID()
	}

	if _, err := uc.uow.Repositories().Reminders.Release(ctx, ids, uc.now()); err != nil {
		slog.Error("failed to release claimed reminders", "error", err)
	}
}

func (uc *sweepUseCaseImpl) publishEvents(ctx context.Context, due []*domain.Reminder, res FinalizeResult) {
	if uc.publisher == nil {
		return
	}

	now := uc.now()

	for _, r := range due {
		event := pubsub.ReminderEvent{
			ReminderID:    r.ID().String(),
			UserID:        r.UserID().String(),
			ReferenceKind: string(r.Reference().Kind()),
			OccurredAt:    now,
		}

		if !r.Reference().IsZero() {
			event.ReferenceID = r.Reference().ID().String()
		}

		if reason, ok := res.Disabled[r.ID()]; ok {
			event.Status = string(domain.StatusDisabled)
			event.Reason = reason
		} else if containsID(res.Sent, r.ID()) {
			event.Status = string(domain.StatusSent)
		} else {
			continue
		}

		if err := uc.publisher.PublishReminderEvent(ctx, event); err != nil {
			slog.ErrorContext(ctx, "failed to publish reminder event",
				slog.String("reminder_id", event.ReminderID),
				slog.String("status", event.Status),
				slog.String("error", err.Error()),
			)
		}
	}
}
