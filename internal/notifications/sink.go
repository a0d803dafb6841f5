package notifications

import (
	"context"
	"errors"

	"github.com/alumnihub/alumnihub-api/internal/models"
)

// Sink accepts a notification record. Implementations may deliver asynchronously.
type Sink interface {
	Send(ctx context.Context, n *models.Notification) error
}

// Fanout delivers to every sink and joins their errors; one failing sink does not stop the others
type Fanout struct {
	sinks []Sink
}

// NewFanout drops nil sinks
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Send(ctx context.Context, n *models.Notification) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len reports how many sinks are attached
func (f *Fanout) Len() int {
	return len(f.sinks)
}
