package main

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanrat/shuffle"
	"github.com/lanrat/shuffle/permute"
)

// maxLineSize is the longest input line accepted by the lines command.
const maxLineSize = 1024 * 1024

func newLinesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lines [FILE]",
		Short: "Print the lines of FILE, or standard input, in random order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			lines, err := readLines(in)
			if err != nil {
				return err
			}
			v("read %d lines", len(lines))
			if len(lines) == 0 {
				return nil
			}

			if opts.repeat {
				cycle, err := shuffle.NewCycle(opts.src, len(lines))
				if err != nil {
					return err
				}
				return emit(cmd.Context(), cmd.OutOrStdout(), opts.cfg.Count, func() (string, bool) {
					return lines[cycle.Next()], true
				})
			}

			iter, err := permute.Slice(opts.src, lines)
			if err != nil {
				return err
			}
			return emit(cmd.Context(), cmd.OutOrStdout(), opts.cfg.Count, func() (string, bool) {
				line, ok := iter.Next()
				if !ok {
					return "", false
				}
				return *line, true
			})
		},
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
