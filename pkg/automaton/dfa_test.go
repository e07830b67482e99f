package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalDistances(t *testing.T) {
	dfa, err := New("hello", 2)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), dfa.Eval([]byte("hello")))
	assert.Equal(t, uint8(1), dfa.Eval([]byte("helo")), "one deletion")
	assert.Equal(t, uint8(1), dfa.Eval([]byte("hxllo")), "one substitution")
	assert.Equal(t, uint8(1), dfa.Eval([]byte("helllo")), "one insertion")
	assert.Equal(t, uint8(2), dfa.Eval([]byte("hxlxo")))
	assert.Equal(t, uint8(3), dfa.Eval([]byte("world")), "capped at budget+1")
	assert.Equal(t, uint8(3), dfa.Eval(nil), "empty word capped")
}

func TestEvalExactBudget(t *testing.T) {
	dfa, err := New("cat", 0)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), dfa.Eval([]byte("cat")))
	assert.Equal(t, uint8(1), dfa.Eval([]byte("car")))
	assert.Equal(t, uint8(1), dfa.Eval([]byte("category")))
}

func TestDistanceBudget(t *testing.T) {
	assert.Equal(t, uint8(0), DistanceBudget("cats"))
	assert.Equal(t, uint8(1), DistanceBudget("kitten"))
	assert.Equal(t, uint8(2), DistanceBudget("hitchhiker"))
	// Budgets go by runes, not bytes.
	assert.Equal(t, uint8(0), DistanceBudget("café"))
}

func TestFromTerm(t *testing.T) {
	dfa, err := FromTerm("kitten")
	require.NoError(t, err)

	assert.Equal(t, "kitten", dfa.Term())
	assert.Equal(t, uint8(1), dfa.MaxDistance())
	assert.Equal(t, len("kitten"), dfa.QueryLen())
}

func TestMatcherAcceptsFuzzyWord(t *testing.T) {
	dfa, err := New("hello", 1)
	require.NoError(t, err)

	matcher := dfa.Matcher()
	accepts := func(word string) bool {
		state := matcher.Start()
		for i := 0; i < len(word); i++ {
			if !matcher.CanMatch(state) {
				return false
			}
			state = matcher.Accept(state, word[i])
		}
		return matcher.IsMatch(state)
	}

	assert.True(t, accepts("hello"))
	assert.True(t, accepts("helo"))
	assert.False(t, accepts("help"))
}
