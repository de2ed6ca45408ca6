// Package panicerr converts panics in remote calls into ordinary errors.
package panicerr

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/panics"
)

// ErrPanic is wrapped by every error produced from a recovered panic.
var ErrPanic = fmt.Errorf("recovered panic")

func recovered(c *panics.Catcher) error {
	if r := c.Recovered(); r != nil {
		return fmt.Errorf("%w: %w", ErrPanic, r.AsError())
	}
	return nil
}

// SafeContext wraps fn so that a panic is returned as an error wrapping ErrPanic.
func SafeContext(fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		var (
			catcher panics.Catcher
			err     error
		)
		catcher.Try(func() {
			err = fn(ctx)
		})
		if perr := recovered(&catcher); perr != nil {
			return perr
		}
		return err
	}
}

// SafeValue is SafeContext for calls that also produce a value. The zero
// value of T is returned alongside a recovered panic.
func SafeValue[T any](fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var (
			catcher panics.Catcher
			v       T
			err     error
		)
		catcher.Try(func() {
			v, err = fn(ctx)
		})
		if perr := recovered(&catcher); perr != nil {
			var zero T
			return zero, perr
		}
		return v, err
	}
}
