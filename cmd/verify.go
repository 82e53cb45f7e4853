package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lanrat/shuffle/permute"
	"github.com/lanrat/shuffle/source"
)

// verifyJob is a single permutation to drain and check.
type verifyJob struct {
	run    int
	engine *permute.Engine
}

func newVerifyCmd(opts *options) *cobra.Command {
	var (
		maxValue uint32
		runs     int
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that generated permutations visit every value exactly once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 || workers < 1 {
				return fmt.Errorf("--runs and --workers must be positive")
			}
			l.Infof("verifying %d permutations of [0, %d] with %d workers", runs, maxValue, workers)
			err := verify(cmd.Context(), source.Locked(opts.src), maxValue, runs, workers)
			if err != nil {
				return err
			}
			l.Infof("All permutations verified")
			return nil
		},
	}
	cmd.Flags().Uint32Var(&maxValue, "max", 1<<20, "largest value of the permuted domain")
	cmd.Flags().IntVar(&runs, "runs", 16, "number of permutations to check")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent workers")
	return cmd
}

// verify drains runs engines of size max+1 on a pool of workers and checks
// that each one emits every value of [0, max] exactly once.
func verify(ctx context.Context, src permute.Source, max uint32, runs, workers int) error {
	var failed atomic.Uint64
	var verified atomic.Uint64

	group, grpCtx := errgroup.WithContext(ctx)
	inputChan := make(chan *verifyJob, workers)

	// start input
	group.Go(func() error {
		defer close(inputChan)
		for i := 0; i < runs; i++ {
			job := &verifyJob{run: i, engine: permute.New(max, src)}
			select {
			case <-grpCtx.Done():
				return grpCtx.Err()
			case inputChan <- job:
			}
		}
		return nil
	})

	// start workers
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for {
				select {
				case <-grpCtx.Done():
					return grpCtx.Err()
				case job, ok := <-inputChan:
					if !ok {
						// done
						return nil
					}
					if err := checkPermutation(grpCtx, job.engine); err != nil {
						l.Errorf("run %d failed: %v", job.run, err)
						failed.Add(1)
						continue
					}
					v("run %d verified (%d/%d)", job.run, verified.Add(1), runs)
				}
			}
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if failedCount := failed.Load(); failedCount > 0 {
		return fmt.Errorf("verify finished with %d/%d failures", failedCount, runs)
	}
	return nil
}

// checkPermutation drains e and reports the first repeated or out of range
// value, or a wrong number of values.
func checkPermutation(ctx context.Context, e *permute.Engine) error {
	size := e.Size()
	seen := bitset.New(uint(size))
	var n uint64
	for val := range e.All() {
		if n%(1<<16) == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if val > e.Max() {
			return fmt.Errorf("value %d out of range [0, %d]", val, e.Max())
		}
		if seen.Test(uint(val)) {
			return fmt.Errorf("value %d generated twice", val)
		}
		seen.Set(uint(val))
		n++
	}
	if n != size || seen.Count() != uint(size) {
		return fmt.Errorf("generated %d values, want %d", n, size)
	}
	return nil
}
