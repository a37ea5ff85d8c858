// Package lifecycle provides explicit per-entity hook lists run
// synchronously after the commit of the triggering operation. Automatic
// side effects (profile creation on user creation, stored image cleanup on
// pin deletion) register here instead of hiding inside ambient signal
// dispatch.
package lifecycle

import (
	"context"
	"log/slog"
)

// Hook is invoked with the committed entity. A failing hook is logged and
// does not roll back the triggering operation; hooks that must be atomic
// with the operation belong in its transaction instead.
type Hook[T any] func(ctx context.Context, entity T) error

// Hooks holds ordered post-create and post-delete callback lists for one
// entity type.
type Hooks[T any] struct {
	logger     *slog.Logger
	postCreate []Hook[T]
	postDelete []Hook[T]
}

// New returns an empty hook registry for one entity type.
func New[T any](logger *slog.Logger) *Hooks[T] {
	return &Hooks[T]{logger: logger}
}

// OnCreate appends a post-create hook.
func (h *Hooks[T]) OnCreate(fn Hook[T]) {
	h.postCreate = append(h.postCreate, fn)
}

// OnDelete appends a post-delete hook.
func (h *Hooks[T]) OnDelete(fn Hook[T]) {
	h.postDelete = append(h.postDelete, fn)
}

// RanCreate runs all post-create hooks in registration order and returns
// the first error after running every hook.
func (h *Hooks[T]) RanCreate(ctx context.Context, entity T) error {
	return h.run(ctx, "post-create", h.postCreate, entity)
}

// RanDelete runs all post-delete hooks in registration order and returns
// the first error after running every hook.
func (h *Hooks[T]) RanDelete(ctx context.Context, entity T) error {
	return h.run(ctx, "post-delete", h.postDelete, entity)
}

func (h *Hooks[T]) run(ctx context.Context, phase string, hooks []Hook[T], entity T) error {
	var firstErr error
	for _, fn := range hooks {
		if err := fn(ctx, entity); err != nil {
			if h.logger != nil {
				h.logger.ErrorContext(ctx, "lifecycle hook failed",
					slog.String("phase", phase),
					slog.String("error", err.Error()),
				)
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
