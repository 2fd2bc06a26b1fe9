package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FilterConfig selects the records extracted from a result file.
type FilterConfig struct {
	Label   string
	Clients string // client count of the run that produced the file
	Pairs   []Pair
	Match   Matcher  // nil selects DefaultMatch
	Scan    *ScanEnv // optional progress reporting
}

// FilterStats summarizes a filter pass.
type FilterStats struct {
	Lines   int
	Matches map[Pair]int
}

// Filter scans result lines from r. For every line and every parameter pair
// matching it, the last comma-separated field of the line is added to sink
// as a record of the pair's configuration.
func Filter(r io.Reader, cfg FilterConfig, sink Sink) (FilterStats, error) {
	stats := FilterStats{Matches: make(map[Pair]int)}
	clients, err := ParseClientCount(cfg.Clients)
	if err != nil {
		return stats, err
	}
	match := cfg.Match
	if match == nil {
		match = matchPolicies[DefaultMatch]
	}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			stats.Lines++
			for _, p := range cfg.Pairs {
				if !match(line, p) {
					continue
				}
				k := Key{Label: cfg.Label, Pair: p, Clients: clients}
				if err := sink.Add(k, Record{Clients: clients, Field: LastField(line)}); err != nil {
					return stats, fmt.Errorf("can't add record for %s: %w", k, err)
				}
				stats.Matches[p]++
			}
			if cfg.Scan != nil {
				cfg.Scan.Add(len(line))
			}
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return stats, err
		}
	}
	if cfg.Scan != nil {
		cfg.Scan.Finish()
	}
	return stats, nil
}

// FilterFile runs Filter on the given result file.
func FilterFile(file string, cfg FilterConfig, sink Sink) (FilterStats, error) {
	fd, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return FilterStats{}, fmt.Errorf("%w: %w", ErrMissingFile, err)
	} else if err != nil {
		return FilterStats{}, err
	}
	defer fd.Close()
	return Filter(fd, cfg, sink)
}
