package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchPolicies(t *testing.T) {
	p := Pair{A: "READ", B: "Average"}
	tests := []struct {
		line                      string
		substring, ordered, field bool
	}{
		{"[READ], AverageLatency(us), 310.5\n", true, true, false},
		{"Average, READ, 1\n", true, false, true},
		{"READ,Average,1\n", true, true, true},
		{"[UPDATE], AverageLatency(us), 401.2\n", false, false, false},
		// unrelated parts of the line still satisfy substring matching
		{"[OVERALL], READ_RUNTIME, AverageThroughput\n", true, true, false},
	}
	for _, test := range tests {
		for name, want := range map[string]bool{
			"substring": test.substring,
			"ordered":   test.ordered,
			"field":     test.field,
		} {
			m, err := ParseMatchPolicy(name)
			require.NoError(t, err)
			require.Equal(t, want, m(test.line, p), "%s: %q", name, test.line)
		}
	}
}

func TestParseMatchPolicy(t *testing.T) {
	m, err := ParseMatchPolicy("")
	require.NoError(t, err)
	require.True(t, m("a b", Pair{"b", "a"}))

	_, err = ParseMatchPolicy("regexp")
	require.Error(t, err)
	require.Equal(t, []string{"field", "ordered", "substring"}, MatchPolicies())
}
