package main

import (
	"strings"

	bench "github.com/fjl/ycsb-bench"
	"github.com/spf13/cobra"
)

// settings is the resolved configuration of one invocation: values given on
// the command line, then the config file, then flag defaults.
type settings struct {
	bench.Config
	pairs []bench.Pair
	match bench.Matcher
}

func (o *options) resolve(cmd *cobra.Command, label string, pairs []string) (settings, error) {
	var (
		s   settings
		err error
	)
	if o.configFile != "" {
		if s.Config, err = bench.LoadConfig(o.configFile); err != nil {
			return s, err
		}
	}

	flags := cmd.Flags()
	pick := func(name string, dst *string, v string) {
		if flags.Changed(name) || *dst == "" {
			*dst = v
		}
	}
	pick("dir", &s.Dir, o.dir)
	pick("store", &s.Store, o.store)
	pick("db", &s.DB, o.db)
	pick("match", &s.Match, o.match)
	if label != "" {
		s.Label = label
	}
	if len(pairs) > 0 {
		s.Pairs = pairs
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	s.pairs, _ = bench.ParsePairs(s.Pairs)
	s.match, _ = bench.ParseMatchPolicy(s.Match)
	return s, nil
}

// clientList returns the client counts given on the command line, or the
// ones from the config file.
func (s settings) clientList(arg string) string {
	if arg != "" {
		return arg
	}
	return strings.Join(s.Clients, " ")
}

func (s settings) openStore() (bench.Store, error) {
	return bench.OpenStore(s.Store, s.Dir, s.DB)
}
