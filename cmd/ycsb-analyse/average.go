package main

import (
	"encoding/json"
	"io"
	"log/slog"

	bench "github.com/fjl/ycsb-bench"
	"github.com/spf13/cobra"
)

type averageArgs struct {
	label      string
	clients    string
	pairs      []string
	outputJSON bool
}

func newAverageCmd(logger *slog.Logger, opts *options) *cobra.Command {
	var args averageArgs

	cmd := &cobra.Command{
		Use:   "average",
		Short: "Average per-configuration records into one file per pair",
		Long: `For every client count (in the given order) and parameter pair, compute the
mean of the recorded values, write "<clients> <mean>" to the pair's averaged
file and delete the records. The first client count recreates the averaged
file, later ones append to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAverage(cmd, logger, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&args.label, "label", "",
		"Load/run label embedded in file names")
	flags.StringVar(&args.clients, "clients", "",
		`Client counts to average, e.g. "1 2 4"`)
	flags.StringSliceVar(&args.pairs, "pair", nil,
		"Parameter pairs A-B to average (repeatable)")
	flags.BoolVar(&args.outputJSON, "json", false,
		"Print the averaged series as JSON")

	return cmd
}

func runAverage(cmd *cobra.Command, logger *slog.Logger, opts *options, args averageArgs) (err error) {
	s, err := opts.resolve(cmd, args.label, args.pairs)
	if err != nil {
		return err
	}
	clients, err := bench.ParseClientCounts(s.clientList(args.clients))
	if err != nil {
		return err
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

	ctx := cmd.Context()
	logger.DebugContext(ctx, "averaging",
		slog.String("label", s.Label),
		slog.Any("clients", clients),
		slog.String("store", s.Store),
	)
	series, err := bench.Average(store, bench.AverageConfig{
		Label:   s.Label,
		Clients: clients,
		Pairs:   s.pairs,
	}, bench.DirAverageWriter{Dir: s.Dir})
	if err != nil {
		return err
	}

	for i, p := range s.pairs {
		logger.InfoContext(ctx, "averaged",
			slog.String("pair", p.String()),
			slog.String("file", bench.AverageFileName(s.Label, p)),
			slog.Int("points", len(series[i].Points)),
		)
	}
	if args.outputJSON {
		if err := printJSON(cmd.OutOrStdout(), series); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, series []bench.Series) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(series)
}
