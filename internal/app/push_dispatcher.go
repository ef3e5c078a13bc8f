package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/push"
)

var (
	ErrNoPushTransport = errors.New("no push transport for platform")
	errMissingOutcome  = errors.New("transport returned no outcome for token")
)

type PushJob struct {
	Reminder *domain.Reminder
	Tokens   domain.DeviceTokens
}

type PushReport struct {
	Results      []DeliveryResult
	Unregistered []string
}

// PushDispatcher buckets tokens by platform and sends each bucket through
// that platform's transport in chunks of its batch limit. Platforms run
// concurrently; chunks of one platform run in order.
type PushDispatcher struct {
	senders map[domain.Platform]push.Sender
}

func NewPushDispatcher(senders map[domain.Platform]push.Sender) *PushDispatcher {
	return &PushDispatcher{senders: senders}
}

type pushItem struct {
	job int
	msg push.Message
}

type jobTally struct {
	delivered int
	failed    int
	firstErr  error
}

func (d *PushDispatcher) Dispatch(ctx context.Context, jobs []PushJob) PushReport {
	buckets := make(map[domain.Platform][]pushItem)
	tallies := make([]jobTally, len(jobs))

	for i, job := range jobs {
		data := reminderData(job.Reminder)

		for _, tok := range job.Tokens.Deliverable() {
			if _, ok := d.senders[tok.Platform()]; !ok {
				tallies[i].failed++
				if tallies[i].firstErr == nil {
					tallies[i].firstErr = fmt.Errorf("%w: %s", ErrNoPushTransport, tok.Platform())
				}

				continue
			}

			buckets[tok.Platform()] = append(buckets[tok.Platform()], pushItem{
				job: i,
				msg: push.Message{
					Token: tok.Token(),
					Title: job.Reminder.Title(),
					Body:  job.Reminder.Message(),
					Data:  data,
				},
			})
		}
	}

	var (
		mu           sync.Mutex
		unregistered []string
		g            errgroup.Group
	)

	for platform, items := range buckets {
		sender := d.senders[platform]

		g.Go(func() error {
			local := d.sendPlatform(ctx, platform, sender, items)

			mu.Lock()
			defer mu.Unlock()

			for _, item := range local.failures {
				tallies[item.job].failed++
				if tallies[item.job].firstErr == nil {
					tallies[item.job].firstErr = item.err
				}
			}

			for _, job := range local.delivered {
				tallies[job].delivered++
			}

			unregistered = append(unregistered, local.unregistered...)

			return nil
		})
	}

	_ = g.Wait()

	report := PushReport{
		Results:      make([]DeliveryResult, len(jobs)),
		Unregistered: unregistered,
	}

	for i, job := range jobs {
		res := DeliveryResult{
			ReminderID: job.Reminder.ID(),
			Channel:    domain.ChannelPush,
			Payload:    pushPayload(job.Reminder, job.Tokens.Deliverable().Count()),
		}

		t := tallies[i]
		if t.delivered == 0 {
			if t.firstErr == nil {
				t.firstErr = ErrNoPushTransport
			}

			res.Err = fmt.Errorf("push failed for %d token(s): %w", t.failed, t.firstErr)
		}

		report.Results[i] = res
	}

	return report
}

type platformFailure struct {
	job int
	err error
}

type platformResult struct {
	delivered    []int
	failures     []platformFailure
	unregistered []string
}

func (d *PushDispatcher) sendPlatform(ctx context.Context, platform domain.Platform, sender push.Sender, items []pushItem) platformResult {
	var res platformResult

	msgs := make([]push.Message, len(items))
	for i, item := range items {
		msgs[i] = item.msg
	}

	offset := 0

	for _, chunk := range push.Chunk(msgs, sender.BatchLimit()) {
		chunkItems := items[offset : offset+len(chunk)]
		offset += len(chunk)

		outcomes, err := sender.SendBatch(ctx, chunk)
		if err != nil {
			slog.ErrorContext(ctx, "push chunk failed",
				slog.String("platform", string(platform)),
				slog.Int("chunk_size", len(chunk)),
				slog.String("error", err.Error()),
			)

			for _, item := range chunkItems {
				res.failures = append(res.failures, platformFailure{job: item.job, err: err})
			}

			continue
		}

		for i, item := range chunkItems {
			if i >= len(outcomes) {
				res.failures = append(res.failures, platformFailure{job: item.job, err: errMissingOutcome})

				continue
			}

			o := outcomes[i]
			switch {
			case o.Delivered():
				res.delivered = append(res.delivered, item.job)
			case o.Unregistered:
				res.unregistered = append(res.unregistered, item.msg.Token)
				res.failures = append(res.failures, platformFailure{job: item.job, err: o.Err})
			default:
				res.failures = append(res.failures, platformFailure{job: item.job, err: o.Err})
			}
		}
	}

	return res
}
