package pubsub

import (
	"context"
	"log"
	"sync"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

// Subscription delivers the latest result of a query. Slow consumers only see
// the newest value; intermediate ones are dropped.
type Subscription[T any] struct {
	updates chan T
	errs    chan error
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Watch runs fetch immediately and again after every Publish touching one of
// tables, until Stop is called or ctx ends.
func Watch[T any](ctx context.Context, hub *Hub, fetch FetchFunc[T], tables ...string) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		updates: make(chan T, 1),
		errs:    make(chan error, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	l, unlisten := hub.listen(tables)

	go func() {
		defer close(sub.done)
		defer close(sub.updates)
		defer unlisten()

		sub.refresh(ctx, fetch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-l.notify:
				sub.refresh(ctx, fetch)
			}
		}
	}()

	return sub
}

func (s *Subscription[T]) refresh(ctx context.Context, fetch FetchFunc[T]) {
	value, err := fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("Subscription.refresh: query failed: %v", err)
		select {
		case s.errs <- err:
		default:
		}
		return
	}

	select {
	case s.updates <- value:
		return
	default:
	}
	// Replace the unread value; this goroutine is the only sender.
	select {
	case <-s.updates:
	default:
	}
	s.updates <- value
}

// Updates is closed after Stop.
func (s *Subscription[T]) Updates() <-chan T { return s.updates }

func (s *Subscription[T]) Errors() <-chan error { return s.errs }

// Stop ends the subscription and waits for its goroutine. Safe to call twice.
func (s *Subscription[T]) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}
