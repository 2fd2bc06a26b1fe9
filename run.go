package bench

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RunConfig configures a combined filter and average pass over several
// result files, one per client count.
type RunConfig struct {
	Label  string
	Inputs map[string]string // client count -> result file
	Pairs  []Pair
	Match  Matcher
	Scan   *ScanEnv
	Output AverageWriter
}

// Run filters all inputs concurrently into memory and averages the records
// in ascending client count order. No intermediate files are written.
func Run(ctx context.Context, cfg RunConfig) ([]Series, error) {
	if len(cfg.Inputs) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	counts := make([]string, 0, len(cfg.Inputs))
	for clients := range cfg.Inputs {
		if _, err := ParseClientCount(clients); err != nil {
			return nil, err
		}
		counts = append(counts, clients)
	}
	SortClientCounts(counts)

	parts := make([]Results, len(counts))
	g, ctx := errgroup.WithContext(ctx)
	for i, clients := range counts {
		i, clients := i, clients
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = make(Results)
			fcfg := FilterConfig{
				Label:   cfg.Label,
				Clients: clients,
				Pairs:   cfg.Pairs,
				Match:   cfg.Match,
				Scan:    cfg.Scan,
			}
			if _, err := FilterFile(cfg.Inputs[clients], fcfg, parts[i]); err != nil {
				return fmt.Errorf("%s: %w", cfg.Inputs[clients], err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(Results)
	for _, res := range parts {
		merged.Merge(res)
	}
	return Average(merged, AverageConfig{Label: cfg.Label, Clients: counts, Pairs: cfg.Pairs}, cfg.Output)
}
