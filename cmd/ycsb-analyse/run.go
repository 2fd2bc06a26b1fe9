package main

import (
	"fmt"
	"log/slog"
	"strings"

	bench "github.com/fjl/ycsb-bench"
	"github.com/spf13/cobra"
)

type runArgs struct {
	label      string
	inputs     []string
	pairs      []string
	outputJSON bool
}

func newRunCmd(logger *slog.Logger, opts *options) *cobra.Command {
	var args runArgs

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Filter and average several result files in one pass",
		Long: `Filter one result file per client count in memory and write the averaged
files directly, without intermediate record files.

Inputs are given as <clients>=<file>, e.g. --input 1=ycsb_1.txt --input 4=ycsb_4.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, logger, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&args.label, "label", "",
		"Load/run label embedded in file names")
	flags.StringArrayVar(&args.inputs, "input", nil,
		"Result file of a client count, as <clients>=<file> (repeatable)")
	flags.StringSliceVar(&args.pairs, "pair", nil,
		"Parameter pairs A-B (repeatable)")
	flags.BoolVar(&args.outputJSON, "json", false,
		"Print the averaged series as JSON")

	return cmd
}

func parseInputs(args []string) (map[string]string, error) {
	inputs := make(map[string]string, len(args))
	for _, arg := range args {
		clients, file, ok := strings.Cut(arg, "=")
		if !ok || file == "" {
			return nil, fmt.Errorf("invalid input %q (want <clients>=<file>)", arg)
		}
		if _, dup := inputs[clients]; dup {
			return nil, fmt.Errorf("client count %s given twice", clients)
		}
		inputs[clients] = file
	}
	return inputs, nil
}

func runRun(cmd *cobra.Command, logger *slog.Logger, opts *options, args runArgs) error {
	s, err := opts.resolve(cmd, args.label, args.pairs)
	if err != nil {
		return err
	}
	inputs := s.Inputs
	if len(args.inputs) > 0 {
		if inputs, err = parseInputs(args.inputs); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	logger.DebugContext(ctx, "running",
		slog.String("label", s.Label),
		slog.Int("inputs", len(inputs)),
	)
	series, err := bench.Run(ctx, bench.RunConfig{
		Label:  s.Label,
		Inputs: inputs,
		Pairs:  s.pairs,
		Match:  s.match,
		Output: bench.DirAverageWriter{Dir: s.Dir},
	})
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
		return printJSON(cmd.OutOrStdout(), series)
	}
	return nil
}
