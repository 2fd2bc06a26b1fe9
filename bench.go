// Package bench filters YCSB benchmark result files and averages the
// extracted values per workload parameter pair and client count.
package bench

import (
	"fmt"
	"strings"
)

const filePrefix = "YCSB"

// Pair is a workload parameter pair given on the command line as "A-B".
// Both components are used as line filters and as file name components.
type Pair struct {
	A, B string
}

// ParsePair parses a parameter pair token of the form "A-B".
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, fmt.Errorf("%w %q (want A-B)", ErrBadPair, s)
	}
	return Pair{A: parts[0], B: parts[1]}, nil
}

// ParsePairs parses all given parameter pair tokens.
func ParsePairs(tokens []string) ([]Pair, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: none given", ErrBadPair)
	}
	pairs := make([]Pair, 0, len(tokens))
	for _, tok := range tokens {
		p, err := ParsePair(tok)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func (p Pair) String() string {
	return p.A + "-" + p.B
}

// Key identifies the records of one configuration: a load/run label,
// a parameter pair and a client count.
type Key struct {
	Label   string
	Pair    Pair
	Clients string
}

// FileName returns the name of the per-configuration record file.
func (k Key) FileName() string {
	return fmt.Sprintf("%s_%s_%s_%s_%s_clients.txt", filePrefix, k.Label, k.Pair.A, k.Pair.B, k.Clients)
}

func (k Key) String() string {
	return k.Label + "/" + k.Pair.String() + "/" + k.Clients
}

// AverageFileName returns the name of the averaged file of a parameter pair.
func AverageFileName(label string, p Pair) string {
	return fmt.Sprintf("%s_%s_%s_%s.txt", filePrefix, label, p.A, p.B)
}
