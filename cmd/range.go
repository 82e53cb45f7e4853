package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lanrat/shuffle"
	"github.com/lanrat/shuffle/permute"
)

func newRangeCmd(opts *options) *cobra.Command {
	var inclusive bool

	cmd := &cobra.Command{
		Use:   "range LOW HIGH",
		Short: "Print the integers of [LOW, HIGH) in random order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			low, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid LOW: %w", err)
			}
			high, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid HIGH: %w", err)
			}

			var iter *permute.RangeIter[int64]
			if inclusive {
				iter, err = permute.RangeInclusive(opts.src, low, high)
			} else {
				iter, err = permute.Range(opts.src, low, high)
			}
			if err != nil {
				return err
			}
			v("permuting %d integers from %d to %d", iter.Size(), iter.Low(), iter.High())

			next := func() (string, bool) {
				n, ok := iter.Next()
				return strconv.FormatInt(n, 10), ok
			}
			if opts.repeat {
				cycle, err := shuffle.NewCycle(opts.src, int(iter.Size()))
				if err != nil {
					return err
				}
				next = func() (string, bool) {
					return strconv.FormatInt(iter.Low()+int64(cycle.Next()), 10), true
				}
			}
			return emit(cmd.Context(), cmd.OutOrStdout(), opts.cfg.Count, next)
		},
	}
	cmd.Flags().BoolVar(&inclusive, "inclusive", false, "include HIGH in the range")
	return cmd
}
