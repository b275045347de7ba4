package codec

import (
	"context"
	"encoding/binary"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/ende/core/errors"
)

// EncodeBatch marshals each input independently using up to workers
// goroutines. Results are in input order. The first failure cancels the
// remaining work and is returned wrapped with the index of its input.
func EncodeBatch(ctx context.Context, enc Encoding, order binary.ByteOrder, inputs [][]uint32, workers int) ([][]byte, error) {
	return runBatch(ctx, inputs, workers, func(cps []uint32) ([]byte, error) {
		return enc.Marshal(cps, order)
	})
}

// DecodeBatch unmarshals each input independently; see EncodeBatch.
func DecodeBatch(ctx context.Context, enc Encoding, order binary.ByteOrder, inputs [][]byte, workers int) ([][]uint32, error) {
	return runBatch(ctx, inputs, workers, func(data []byte) ([]uint32, error) {
		return enc.Unmarshal(data, order)
	})
}

func runBatch[In, Out any](ctx context.Context, inputs []In, workers int, fn func(In) (Out, error)) ([]Out, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Out, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := fn(in)
			if err != nil {
				return errors.Wrapf(err, "batch item %d", i)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// cancelled before any item was scheduled
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
