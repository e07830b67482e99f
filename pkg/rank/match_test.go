package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCanonicalOrder(t *testing.T) {
	base := Match{QueryIndex: 1, Distance: 1, Attribute: 1, AttributeIndex: 1}

	cases := []struct {
		name   string
		before Match
		after  Match
	}{
		{
			name:   "query index first",
			before: Match{QueryIndex: 0, Distance: 9, Attribute: 9, AttributeIndex: 9},
			after:  base,
		},
		{
			name:   "then distance",
			before: Match{QueryIndex: 1, Distance: 0, Attribute: 9, AttributeIndex: 9},
			after:  base,
		},
		{
			name:   "then attribute",
			before: Match{QueryIndex: 1, Distance: 1, Attribute: 0, AttributeIndex: 9},
			after:  base,
		},
		{
			name:   "then attribute position",
			before: Match{QueryIndex: 1, Distance: 1, Attribute: 1, AttributeIndex: 0},
			after:  base,
		},
		{
			name:   "exact before inexact on full tie",
			before: Match{QueryIndex: 1, Distance: 1, Attribute: 1, AttributeIndex: 1, IsExact: true},
			after:  base,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.before.Less(tc.after))
			assert.False(t, tc.after.Less(tc.before))
		})
	}

	assert.False(t, base.Less(base), "irreflexive")
}

func TestSortMatches(t *testing.T) {
	matches := []Match{
		{QueryIndex: 2, Distance: 0, Attribute: 0, AttributeIndex: 4},
		{QueryIndex: 0, Distance: 1, Attribute: 1, AttributeIndex: 2},
		{QueryIndex: 0, Distance: 0, Attribute: 2, AttributeIndex: 0},
		{QueryIndex: 1, Distance: 0, Attribute: 0, AttributeIndex: 9},
	}
	SortMatches(matches)

	for i := 1; i < len(matches); i++ {
		assert.False(t, matches[i].Less(matches[i-1]),
			"matches[%d] sorts before matches[%d]", i, i-1)
	}
}

func TestDocumentFromUnsortedMatchesPanics(t *testing.T) {
	debugChecks = true
	defer func() { debugChecks = false }()

	assert.Panics(t, func() {
		documentFromSortedMatches(1, []Match{
			{QueryIndex: 2},
			{QueryIndex: 0},
		})
	})

	assert.NotPanics(t, func() {
		documentFromSortedMatches(1, []Match{
			{QueryIndex: 0},
			{QueryIndex: 2},
		})
	})
}
