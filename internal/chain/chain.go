// Package chain runs ordered fallback tiers and keeps the first success.
package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Step is one tier of a fallback chain.
type Step[I, O any] func(ctx context.Context, in I) (O, error)

// ExhaustedError reports that every step of a chain failed.
type ExhaustedError struct {
	Errors []error
}

func (e *ExhaustedError) Error() string {
	if len(e.Errors) == 0 {
		return "no steps to try"
	}

	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = fmt.Sprintf("#%d: %v", i+1, err)
	}
	return fmt.Sprintf("all %d steps failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes every step error to errors.Is and errors.As.
func (e *ExhaustedError) Unwrap() []error {
	return e.Errors
}

// Last returns the error of the final step that ran.
func (e *ExhaustedError) Last() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}

// FirstSuccess runs steps in order and returns the first successful output with its index.
// A canceled context stops the chain before the next step starts.
func FirstSuccess[I, O any](ctx context.Context, in I, steps ...Step[I, O]) (O, int, error) {
	var zero O
	errs := make([]error, 0, len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		out, err := step(ctx, in)
		if err == nil {
			return out, i, nil
		}
		errs = append(errs, err)
	}

	return zero, -1, &ExhaustedError{Errors: errs}
}

// IsExhausted reports whether err is an ExhaustedError.
func IsExhausted(err error) bool {
	var target *ExhaustedError
	return errors.As(err, &target)
}
