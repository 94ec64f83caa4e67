package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// #region buffered-sink
// BufferedSink decouples the gate's synchronous decision path from sink
// latency: Emit enqueues, a background writer delivers with retry. Delivery
// is at-least-once; a record is only given up on at shutdown, after the
// final bounded retry pass, and that failure is surfaced from Close.
type BufferedSink struct {
	inner     Sink
	ch        chan Record
	group     *errgroup.Group
	cancel    context.CancelFunc
	retryBase time.Duration
	retryCap  time.Duration
}

// NewBufferedSink starts the background writer. capacity bounds the queue;
// when it is full, Emit blocks rather than dropping.
func NewBufferedSink(inner Sink, capacity int) *BufferedSink {
	if capacity <= 0 {
		capacity = 256
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	s := &BufferedSink{
		inner:     inner,
		ch:        make(chan Record, capacity),
		group:     group,
		cancel:    cancel,
		retryBase: 100 * time.Millisecond,
		retryCap:  5 * time.Second,
	}
	group.Go(func() error { return s.run(gctx) })
	return s
}

// Emit implements Sink. It never reports inner-sink failures; those are
// retried in the background.
func (s *BufferedSink) Emit(ctx context.Context, rec Record) error {
	select {
	case s.ch <- rec:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: enqueue: %v", ErrSinkUnavailable, ctx.Err())
	}
}

// Close drains the queue, delivers what it can, and reports any record that
// could not be delivered after the final retry pass. Emit must not be
// called after Close.
func (s *BufferedSink) Close() error {
	s.cancel()
	close(s.ch)
	return s.group.Wait()
}

// #endregion buffered-sink

// #region writer-loop
func (s *BufferedSink) run(ctx context.Context) error {
	var lastErr error
	for rec := range s.ch {
		if err := s.deliver(ctx, rec); err != nil {
			lastErr = err
			log.Printf("audit: record %s lost after retries: %v", rec.RecordID, err)
		}
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, lastErr)
	}
	return nil
}

// deliver retries until the record lands. While running, it retries without
// bound; once shutdown begins it makes a final bounded pass so Close cannot
// hang on a dead sink.
func (s *BufferedSink) deliver(ctx context.Context, rec Record) error {
	backoff := s.retryBase
	for {
		err := s.inner.Emit(context.WithoutCancel(ctx), rec)
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return s.finalAttempts(rec)
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > s.retryCap {
			backoff = s.retryCap
		}
	}
}

func (s *BufferedSink) finalAttempts(rec Record) error {
	var err error
	for i := 0; i < 3; i++ {
		if err = s.inner.Emit(context.Background(), rec); err == nil {
			return nil
		}
		time.Sleep(s.retryBase)
	}
	return err
}

// #endregion writer-loop
