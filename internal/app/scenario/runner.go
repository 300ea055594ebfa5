package scenario

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/purr/campband-sub002/internal/app/popup"
	"github.com/purr/campband-sub002/internal/app/queue"
)

// Runner executes a script against a coordinator and a queue engine.
type Runner struct {
	Coordinator *popup.Coordinator
	Queue       *queue.Engine
}

// NewRunner creates a runner bound to the given engines.
func NewRunner(c *popup.Coordinator, q *queue.Engine) *Runner {
	return &Runner{
		Coordinator: c,
		Queue:       q,
	}
}

// Run validates every step up front, then applies them in order. A
// script with an unknown action or invalid settings fails before any
// step runs.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	actions := make([]Action, 0, len(s.Steps))
	for i, step := range s.Steps {
		factory, ok := registry[step.Action]
		if !ok {
			return errors.Newf("step %d: unknown action %q", i+1, step.Action)
		}
		a := factory()
		if err := a.ValidateSettings(step.Settings); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i+1, step.Action)
		}
		actions = append(actions, a)
	}

	for i, a := range actions {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		zlog.Debug().Msgf("scenario: step %d: %s", i+1, a.Name())
		if err := a.Apply(ctx, r); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i+1, a.Name())
		}
	}
	return nil
}
