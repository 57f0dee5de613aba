package notify

import (
	"context"
	"errors"
)

type Channel interface {
	Send(ctx context.Context, userID, title, body string) error
}

// Multi fans a notification out to every channel. One channel failing never
// keeps the others from being tried; the joined error is for logging only.
type Multi struct {
	channels []Channel
}

func NewMulti(channels ...Channel) *Multi {
	return &Multi{channels: channels}
}

func (m *Multi) Send(ctx context.Context, userID, title, body string) error {
	var errs []error
	for _, channel := range m.channels {
		if err := channel.Send(ctx, userID, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
