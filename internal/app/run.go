package app

import (
	"context"
	"errors"
	"fmt"
)

// ErrSourceClosed is returned by Run when the event source stops before an
// end action.
var ErrSourceClosed = errors.New("event source closed")

// Source delivers display events and flushes pending output.
type Source interface {
	Events() <-chan Event
	// Flush blocks until every request sent so far has reached the
	// display server.
	Flush() error
}

// Run handles events from src until an end action runs, a fatal error
// occurs, or ctx is cancelled. After an end action, events already queued
// are handled once more and src is flushed, so output such as a drag
// release still reaches the server.
func Run(ctx context.Context, src Source, ctrl *Controller) error {
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ErrSourceClosed
			}
			status, err := ctrl.Handle(ev)
			if err != nil {
				return err
			}
			if status == StatusEnd {
				return finish(events, src, ctrl)
			}
		}
	}
}

func finish(events <-chan Event, src Source, ctrl *Controller) error {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return flush(src)
			}
			if _, err := ctrl.Handle(ev); err != nil {
				return err
			}
		default:
			return flush(src)
		}
	}
}

func flush(src Source) error {
	if err := src.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
