// Package stream turns a push-style producer into a cancellable pull-style io.ReadCloser.
//
// A producer runs in its own goroutine and hands chunks over a channel of capacity one,
// so it never runs more than one chunk ahead of the consumer.
package stream

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// ErrCanceled is returned by every read after Cancel or Close.
var ErrCanceled = errors.New("stream canceled")

// Error wraps a producer failure.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "stream: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Writer is the producer's side of a Stream.
type Writer struct {
	chunks chan<- []byte
	done   <-chan struct{}
}

// Write copies p into a new chunk and blocks until the consumer takes it or the stream is canceled.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	chunk := make([]byte, len(p))
	copy(chunk, p)

	select {
	case <-w.done:
		return 0, ErrCanceled
	default:
	}

	select {
	case w.chunks <- chunk:
		return len(p), nil
	case <-w.done:
		return 0, ErrCanceled
	}
}

// Stream is a lazily produced byte sequence.
type Stream struct {
	chunks   chan []byte
	done     chan struct{}
	err      error
	canceled atomic.Bool
	once     sync.Once
	teardown func() error
	pending  []byte
}

// New starts producer in its own goroutine. teardown runs once on the first Cancel; it may be nil.
func New(producer func(w *Writer) error, teardown func() error) *Stream {
	s := &Stream{
		chunks:   make(chan []byte, 1),
		done:     make(chan struct{}),
		teardown: teardown,
	}

	go func() {
		defer close(s.chunks)
		s.err = producer(&Writer{chunks: s.chunks, done: s.done})
	}()

	return s
}

// Next returns the next chunk, io.EOF at the end, a *Error when the producer failed,
// ErrCanceled after Cancel, or the context error.
func (s *Stream) Next(ctx context.Context) ([]byte, error) {
	if s.canceled.Load() {
		return nil, ErrCanceled
	}

	select {
	case chunk, ok := <-s.chunks:
		if s.canceled.Load() {
			return nil, ErrCanceled
		}
		if ok {
			return chunk, nil
		}
		if s.err != nil {
			if errors.Is(s.err, ErrCanceled) {
				return nil, ErrCanceled
			}
			return nil, &Error{Err: s.err}
		}
		return nil, io.EOF
	case <-s.done:
		return nil, ErrCanceled
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel tears the producer down. Only the first call has an effect.
func (s *Stream) Cancel() {
	s.once.Do(func() {
		s.canceled.Store(true)
		close(s.done)
		if s.teardown != nil {
			_ = s.teardown()
		}
	})
}

// Canceled reports whether Cancel has been called.
func (s *Stream) Canceled() bool {
	return s.canceled.Load()
}

func (s *Stream) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		chunk, err := s.Next(context.Background())
		if err != nil {
			return 0, err
		}
		s.pending = chunk
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// Close cancels the stream.
func (s *Stream) Close() error {
	s.Cancel()
	return nil
}
