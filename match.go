package bench

import (
	"fmt"
	"sort"
	"strings"
)

// Matcher reports whether a result line belongs to a parameter pair.
type Matcher func(line string, p Pair) bool

// DefaultMatch is the name of the default matching policy.
const DefaultMatch = "substring"

var matchPolicies = map[string]Matcher{
	// both components anywhere in the line, in any order
	"substring": func(line string, p Pair) bool {
		return strings.Contains(line, p.A) && strings.Contains(line, p.B)
	},
	// A anywhere, B somewhere after it
	"ordered": func(line string, p Pair) bool {
		i := strings.Index(line, p.A)
		return i >= 0 && strings.Contains(line[i+len(p.A):], p.B)
	},
	// A and B each equal to a whole comma-separated field
	"field": func(line string, p Pair) bool {
		var hasA, hasB bool
		for _, f := range strings.Split(strings.TrimRight(line, "\r\n"), ",") {
			f = strings.TrimSpace(f)
			hasA = hasA || f == p.A
			hasB = hasB || f == p.B
		}
		return hasA && hasB
	},
}

// ParseMatchPolicy returns the matcher of the named policy.
// The empty name selects DefaultMatch.
func ParseMatchPolicy(name string) (Matcher, error) {
	if name == "" {
		name = DefaultMatch
	}
	m, ok := matchPolicies[name]
	if !ok {
		return nil, fmt.Errorf("unknown match policy %q (want %s)", name, strings.Join(MatchPolicies(), ", "))
	}
	return m, nil
}

// MatchPolicies returns the names of all matching policies.
func MatchPolicies() (n []string) {
	for name := range matchPolicies {
		n = append(n, name)
	}
	sort.Strings(n)
	return n
}
