// Command ycsb-analyse filters YCSB result files into per-configuration
// records and averages them per client count.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)
	root.SetArgs(positionalArgs(os.Args[1:]))
	if err := root.Execute(); err != nil {
		logger.Error("ycsb-analyse failed", "err", err)
		os.Exit(1)
	}
}

// options are the flags shared by all subcommands.
type options struct {
	configFile string
	dir        string
	store      string
	db         string
	match      string
	verbose    bool
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:   "ycsb-analyse <input> <avgflag> <label> <clients> <pair>...",
		Short: "Filter and average YCSB benchmark results",
		Long: `ycsb-analyse extracts the last field of YCSB result lines matching
parameter pairs "A-B" into per-client-count record files, and averages
those records into one file per pair.

Called with positional arguments it behaves like the classic analysis script:
avgflag "True" selects average mode (clients is a space-separated list),
anything else selects filter mode on the input file. The classic form takes
no flags; record and averaged files go to the working directory.`,
		Args:          cobra.MinimumNArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.verbose {
				level.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPositional(cmd, logger, opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "",
		"YAML run configuration file")
	flags.StringVar(&opts.dir, "dir", ".",
		"Directory of record and averaged files")
	flags.StringVar(&opts.store, "store", "files",
		"Record store: files, leveldb")
	flags.StringVar(&opts.db, "db", "",
		"Record database path for --store=leveldb (default: <dir>/ycsb-records.db)")
	flags.StringVar(&opts.match, "match", "substring",
		"Line matching policy: substring, ordered, field")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")

	root.AddCommand(
		newFilterCmd(logger, opts),
		newAverageCmd(logger, opts),
		newRunCmd(logger, opts),
		newDumpCmd(opts),
	)

	return root
}

// positionalArgs marks the classic argument form with a leading "--", so
// cobra neither routes an input file named like a subcommand nor parses a
// label starting with "-" as a flag. The classic form is at least five
// arguments, none of them a long flag among the first five.
func positionalArgs(args []string) []string {
	if len(args) < 5 {
		return args
	}
	for _, arg := range args[:5] {
		if strings.HasPrefix(arg, "--") {
			return args
		}
	}
	return append([]string{"--"}, args...)
}

// runPositional implements the classic argument form
// <input> <avgflag> <label> <clients> <pair>...
func runPositional(cmd *cobra.Command, logger *slog.Logger, opts *options, args []string) error {
	input, avg, label, clients, pairs := args[0], args[1], args[2], args[3], args[4:]
	if avg == "True" {
		return runAverage(cmd, logger, opts, averageArgs{
			label:   label,
			clients: clients,
			pairs:   pairs,
		})
	}
	return runFilter(cmd, logger, opts, filterArgs{
		input:   input,
		label:   label,
		clients: clients,
		pairs:   pairs,
	})
}
