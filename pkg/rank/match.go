// Package rank turns a stream of fuzzy word matches into a ranked,
// range-limited list of documents.
package rank

import "sort"

// DocumentID identifies one indexed document.
type DocumentID uint64

// Match is the evidence that one query term matched at one location.
type Match struct {
	// QueryIndex is the position of the originating automaton in the
	// query's automaton set.
	QueryIndex uint32
	// Distance is the automaton-reported edit distance (0 = exact token).
	Distance uint8
	// Attribute identifies the document field the word occurred in.
	Attribute uint16
	// AttributeIndex is the word position inside that attribute.
	AttributeIndex uint32
	// IsExact is true only when Distance is zero AND the matched word has
	// the same length as the query term. A zero distance alone is not
	// enough: transpositions can cancel out on words of different lengths.
	IsExact bool
}

// Less reports whether m sorts before other in the canonical match order:
// query index, then distance, then attribute, then attribute position,
// then exact before inexact. Criteria rely on this order to find the best
// match of each query term without rescanning.
func (m Match) Less(other Match) bool {
	if m.QueryIndex != other.QueryIndex {
		return m.QueryIndex < other.QueryIndex
	}
	if m.Distance != other.Distance {
		return m.Distance < other.Distance
	}
	if m.Attribute != other.Attribute {
		return m.Attribute < other.Attribute
	}
	if m.AttributeIndex != other.AttributeIndex {
		return m.AttributeIndex < other.AttributeIndex
	}
	return m.IsExact && !other.IsExact
}

// SortMatches sorts matches into the canonical match order.
func SortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Less(matches[j])
	})
}

// Document is the aggregated match evidence for one result candidate.
// Matches is always sorted in the canonical match order.
type Document struct {
	ID      DocumentID
	Matches []Match
}

// debugChecks enables the sorted-matches assertion. Tests flip it on; in
// normal use the constructor trusts its caller.
var debugChecks bool

// documentFromSortedMatches builds a Document from matches that are
// already in canonical order. Callers must sort first; the only valid
// call site is the collector, right after its own SortMatches call.
func documentFromSortedMatches(id DocumentID, matches []Match) Document {
	if debugChecks {
		if !sort.SliceIsSorted(matches, func(i, j int) bool {
			return matches[i].Less(matches[j])
		}) {
			panic("rank: document built from unsorted matches")
		}
	}
	return Document{ID: id, Matches: matches}
}
