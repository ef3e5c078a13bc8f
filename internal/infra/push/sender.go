package push

import (
	"context"
	"errors"
)

//go:generate mockgen -source=sender.go -destination=sender_mock.go -package=push

var ErrUnregistered = errors.New("device token is not registered")

type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Outcome is the per-token result of a batch. Unregistered tokens should
// be deactivated by the caller.
type Outcome struct {
	Token        string
	Err          error
	Unregistered bool
}

func (o Outcome) Delivered() bool {
	return o.Err == nil
}

// Sender delivers a batch of at most BatchLimit messages. A returned error
// means the whole batch failed; per-token failures are reported in the
// outcomes.
type Sender interface {
	SendBatch(ctx context.Context, msgs []Message) ([]Outcome, error)
	BatchLimit() int
}

func Chunk(msgs []Message, size int) [][]Message {
	if size <= 0 {
		size = len(msgs)
	}

	chunks := make([][]Message, 0, (len(msgs)+size-1)/max(size, 1))
	for start := 0; start < len(msgs); start += size {
		end := min(start+size, len(msgs))
		chunks = append(chunks, msgs[start:end])
	}

	return chunks
}
