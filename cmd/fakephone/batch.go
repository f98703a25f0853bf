package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-fakephone"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// batch generates count numbers across workers. Worker w owns every index
// i with i%workers == w and its own source, so a fixed seed gives a fixed
// output regardless of scheduling.
type batch struct {
	registry *fakephone.Registry
	options  []fakephone.Option
	seed     int64
	workers  int
	// limiter, when set, caps the combined output rate of all workers.
	limiter  *rate.Limiter
}

func (b batch) run(ctx context.Context, locale string, category fakephone.Category, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	workers := min(max(b.workers, 1), count)

	results := make([]string, count)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		opts := append([]fakephone.Option{fakephone.WithRegistry(b.registry)}, b.options...)
		if b.seed != 0 {
			opts = append(opts, fakephone.WithSeed(b.seed+int64(w)))
		}
		gen, err := fakephone.New(opts...)
		if err != nil {
			return nil, err
		}

		g.Go(func() error {
			for i := w; i < count; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if b.limiter != nil {
					if err := b.limiter.Wait(ctx); err != nil {
						return err
					}
				}
				out, err := gen.GenerateCategory(locale, category)
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				results[i] = out
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
