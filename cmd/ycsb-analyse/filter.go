package main

import (
	"fmt"
	"log/slog"
	"os"

	bench "github.com/fjl/ycsb-bench"
	"github.com/spf13/cobra"
)

type filterArgs struct {
	input    string
	label    string
	clients  string
	pairs    []string
	progress string
}

func newFilterCmd(logger *slog.Logger, opts *options) *cobra.Command {
	var args filterArgs

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Extract matching result values into per-configuration records",
		Long: `Scan one YCSB result file produced with the given client count and
append the last field of every line matching a parameter pair to the records
of that pair. Running filter twice on the same input duplicates the records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd, logger, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&args.input, "input", "",
		"YCSB result file to scan")
	flags.StringVar(&args.label, "label", "",
		"Load/run label embedded in file names")
	flags.StringVar(&args.clients, "clients", "",
		"Client count of the run that produced the input")
	flags.StringSliceVar(&args.pairs, "pair", nil,
		"Parameter pairs A-B to extract (repeatable)")
	flags.StringVar(&args.progress, "progress", "",
		"Write JSON scan progress events to this file")

	return cmd
}

func runFilter(cmd *cobra.Command, logger *slog.Logger, opts *options, args filterArgs) (err error) {
	s, err := opts.resolve(cmd, args.label, args.pairs)
	if err != nil {
		return err
	}
	if args.input == "" {
		return fmt.Errorf("no input file, use --input")
	}
	clients := args.clients
	if clients == "" && len(s.Clients) == 1 {
		clients = s.Clients[0]
	}

	store, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); err == nil {
			err = cerr
		}
	}()

	cfg := bench.FilterConfig{
		Label:   s.Label,
		Clients: clients,
		Pairs:   s.pairs,
		Match:   s.match,
	}
	if args.progress != "" {
		var size uint64
		if fi, err := os.Stat(args.input); err == nil {
			size = uint64(fi.Size())
		}
		progress, err := os.Create(args.progress)
		if err != nil {
			return err
		}
		defer progress.Close()
		cfg.Scan = bench.NewScanEnv(progress, args.input, size, logger)
	}

	ctx := cmd.Context()
	logger.DebugContext(ctx, "filtering",
		slog.String("input", args.input),
		slog.String("label", s.Label),
		slog.String("clients", clients),
		slog.String("match", s.Match),
		slog.String("store", s.Store),
	)
	stats, err := bench.FilterFile(args.input, cfg, store)
	if err != nil {
		return err
	}

	for _, p := range s.pairs {
		n := stats.Matches[p]
		if n == 0 {
			logger.WarnContext(ctx, "no matching lines",
				slog.String("pair", p.String()),
				slog.String("input", args.input),
			)
			continue
		}
		logger.InfoContext(ctx, "filtered",
			slog.String("pair", p.String()),
			slog.Int("records", n),
		)
	}
	logger.InfoContext(ctx, "filter complete", slog.Int("lines", stats.Lines))
	return nil
}
