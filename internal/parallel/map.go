// Package parallel maps a function over an iterator with a bounded number of
// goroutines while keeping the input order on output.
package parallel

import (
	"context"
	"iter"

	"golang.org/x/sync/semaphore"
)

// Map runs f over the elements of an input sequence with at most limit calls
// in flight. Results come out in input order. Iteration stops once ctx is
// done; results finishing after that point are dropped, not yielded.
type Map[In, Out any] struct {
	ctx   context.Context
	limit int
	f     func(context.Context, In) (Out, error)
}

func NewMap[In, Out any](ctx context.Context, limit int, f func(context.Context, In) (Out, error)) *Map[In, Out] {
	if limit < 1 {
		limit = 1
	}
	return &Map[In, Out]{ctx: ctx, limit: limit, f: f}
}

type result[Out any] struct {
	out Out
	err error
}

// Iter consumes seq and returns the mapped sequence. Input elements carrying
// an error are passed through as errors without calling f. The returned
// sequence is single use and intended for a single consumer.
func (m *Map[In, Out]) Iter(seq iter.Seq2[In, error]) iter.Seq2[Out, error] {
	return func(yield func(Out, error) bool) {
		ctx, cancel := context.WithCancel(m.ctx)
		defer cancel()

		sem := semaphore.NewWeighted(int64(m.limit))
		pending := make(chan chan result[Out], m.limit)

		go func() {
			defer close(pending)
			for in, err := range seq {
				rch := make(chan result[Out], 1)
				if err != nil {
					var zero Out
					rch <- result[Out]{out: zero, err: err}
				} else {
					if err := sem.Acquire(ctx, 1); err != nil {
						return
					}
					go func(in In) {
						defer sem.Release(1)
						out, err := m.f(ctx, in)
						rch <- result[Out]{out: out, err: err}
					}(in)
				}
				select {
				case pending <- rch:
				case <-ctx.Done():
					return
				}
			}
		}()

		for rch := range pending {
			var res result[Out]
			select {
			case res = <-rch:
			case <-ctx.Done():
				return
			}
			if ctx.Err() != nil {
				return
			}
			if !yield(res.out, res.err) {
				return
			}
		}
	}
}
