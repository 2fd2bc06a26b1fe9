package bench

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var clientsRE = regexp.MustCompile(`^[0-9]+$`)

// ParseClientCount validates a single client count.
func ParseClientCount(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !clientsRE.MatchString(s) {
		return "", fmt.Errorf("%w %q", ErrBadClients, s)
	}
	return s, nil
}

// ParseClientCounts parses a list of client counts separated by spaces or
// commas. The order of the list is preserved.
func ParseClientCounts(s string) ([]string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrBadClients)
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if _, err := ParseClientCount(f); err != nil {
			return nil, err
		}
		if seen[f] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrBadClients, f)
		}
		seen[f] = true
	}
	return fields, nil
}

// SortClientCounts sorts client counts in ascending numeric order.
func SortClientCounts(counts []string) {
	sort.Slice(counts, func(i, j int) bool {
		a, _ := strconv.Atoi(counts[i])
		b, _ := strconv.Atoi(counts[j])
		return a < b
	})
}
