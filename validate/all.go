package validate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/relcheck/diag"
	"github.com/syssam/relcheck/model"
)

// All validates the given models concurrently and returns the first
// error, if any. One Validator serves every run; since Validate keeps
// its working state on the run, not the Validator, no locking is
// needed. The sink must be safe for concurrent use when more than one
// model is passed.
func All(ctx context.Context, sink diag.Sink, models ...*model.Model) error {
	v := New()
	g, _ := errgroup.WithContext(ctx)
	for _, m := range models {
		g.Go(func() error {
			return v.Validate(m, sink)
		})
	}
	return g.Wait()
}
