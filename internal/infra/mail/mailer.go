package mail

import (
	"context"
	"errors"
)

//go:generate mockgen -source=mailer.go -destination=mailer_mock.go -package=mail

var ErrRejected = errors.New("mail rejected by provider")

type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
