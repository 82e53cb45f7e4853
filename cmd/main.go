// Package main implements shuffle, a command that prints integer ranges,
// lines of text or network subnets in random order without holding the
// permutation in memory.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lanrat/shuffle"
	"github.com/lanrat/shuffle/config"
	"github.com/lanrat/shuffle/permute"
)

// Global variables
var (
	// l is the logger instance used throughout the application
	l = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})
	// version is the application version string, set at build time
	version = "dev"
)

// options holds the persistent flags shared by all commands.
type options struct {
	configPath string
	source     string
	seed       uint64
	key        string
	count      uint64
	repeat     bool
	verbose    bool

	// resolved in the root command's PersistentPreRunE
	cfg *config.Config
	src permute.Source
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		l.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "shuffle",
		Short:         "Print ranges, lines or subnets in random order",
		Long:          `shuffle visits every element of a range, file or network exactly once in random order, using constant memory for ranges and subnets.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				l.SetLevel(log.DebugLevel)
				shuffle.Logger = v
			}
			return opts.resolve(cmd)
		},
	}

	root.SetVersionTemplate("shuffle {{.Version}}\n")
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "ini configuration file")
	flags.StringVar(&opts.source, "source", config.SourceCrypto, "randomness source: crypto, pcg or salsa20")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for the pcg source")
	flags.StringVar(&opts.key, "key", "", "hex encoded 32 byte key for the salsa20 source")
	flags.Uint64VarP(&opts.count, "count", "n", 0, "print at most this many values, 0 prints all")
	flags.BoolVar(&opts.repeat, "repeat", false, "reshuffle and start over after every pass, requires --count")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRangeCmd(opts))
	root.AddCommand(newLinesCmd(opts))
	root.AddCommand(newSubnetsCmd(opts))
	root.AddCommand(newVerifyCmd(opts))
	return root
}

// resolve merges the configuration file with the command line flags and
// builds the randomness source. Flags set explicitly win over the file.
func (o *options) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Parse(o.configPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", o.configPath, err)
		}
		v("loaded configuration from %s", o.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
		// a seed only makes sense for the pcg source
		if !flags.Changed("source") && o.configPath == "" {
			cfg.Source = config.SourcePCG
		}
	}
	if flags.Changed("key") {
		if err := cfg.SetKey(o.key); err != nil {
			return err
		}
		if !flags.Changed("source") && o.configPath == "" {
			cfg.Source = config.SourceSalsa20
		}
	}
	if flags.Changed("count") {
		cfg.Count = o.count
	}
	if o.repeat && cfg.Count == 0 {
		return errors.New("--repeat requires --count")
	}

	src, err := cfg.NewSource()
	if err != nil {
		return err
	}
	v("using %s source", cfg.Source)
	o.cfg = cfg
	o.src = src
	return nil
}

// emit writes the values returned by next, one per line, until next is
// exhausted, count values were written or ctx is cancelled.
func emit(ctx context.Context, w io.Writer, count uint64, next func() (string, bool)) error {
	bw := bufio.NewWriter(w)
	for n := uint64(0); count == 0 || n < count; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, ok := next()
		if !ok {
			break
		}
		if _, err := fmt.Fprintln(bw, s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// v logs a message if verbose logging is enabled.
func v(format string, a ...any) {
	l.Debugf(format, a...)
}
