// Package automaton compiles query terms into fuzzy matchers. A DFA both
// reports the edit distance of a candidate word and drives FST range
// search through its vellum automaton.
package automaton

import (
	"fmt"
	"unicode/utf8"

	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"
)

// DFA is a compiled matcher for one query term with a fixed edit-distance
// budget. It is immutable and safe for concurrent use.
type DFA struct {
	term    string
	maxDist uint8
	matcher vellum.Automaton
}

// New compiles term with the given edit-distance budget.
func New(term string, maxDist uint8) (*DFA, error) {
	builder, err := levenshtein.NewLevenshteinAutomatonBuilder(maxDist, false)
	if err != nil {
		return nil, fmt.Errorf("levenshtein builder (distance %d): %w", maxDist, err)
	}
	dfa, err := builder.BuildDfa(term, maxDist)
	if err != nil {
		return nil, fmt.Errorf("build dfa for %q: %w", term, err)
	}
	return &DFA{term: term, maxDist: maxDist, matcher: dfa}, nil
}

// FromTerm compiles term with the standard length budget: short words
// must match exactly, medium words tolerate one typo, long words two.
func FromTerm(term string) (*DFA, error) {
	return New(term, DistanceBudget(term))
}

// DistanceBudget returns the edit-distance budget for a term by rune
// length: <5 runes 0, <9 runes 1, otherwise 2.
func DistanceBudget(term string) uint8 {
	switch n := utf8.RuneCountInString(term); {
	case n < 5:
		return 0
	case n < 9:
		return 1
	default:
		return 2
	}
}

// Term returns the query term this automaton was compiled from.
func (d *DFA) Term() string { return d.term }

// MaxDistance returns the edit-distance budget.
func (d *DFA) MaxDistance() uint8 { return d.maxDist }

// QueryLen returns the byte length of the query term.
func (d *DFA) QueryLen() int { return len(d.term) }

// Matcher exposes the vellum automaton for FST search.
func (d *DFA) Matcher() vellum.Automaton { return d.matcher }

// Eval returns the Levenshtein distance between the query term and word,
// capped at one past the budget. Words pulled from an FST search always
// land within the budget; the cap only shows on direct calls.
func (d *DFA) Eval(word []byte) uint8 {
	limit := int(d.maxDist) + 1

	prev := make([]int, len(word)+1)
	curr := make([]int, len(word)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(d.term); i++ {
		curr[0] = i
		best := curr[0]
		for j := 1; j <= len(word); j++ {
			cost := 1
			if d.term[i-1] == word[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < best {
				best = curr[j]
			}
		}
		// The whole row is past the cap: the final distance can only grow.
		if best >= limit {
			return uint8(limit)
		}
		prev, curr = curr, prev
	}

	distance := prev[len(word)]
	if distance > limit {
		distance = limit
	}
	return uint8(distance)
}
