// Package criteria provides the standard ranking criteria applied, in
// order, by the rank core: fewer typos, more query words, closer words,
// better attributes, earlier positions, more exact matches, then document
// id as the final deterministic tie-break.
package criteria

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/plumesearch/plume/pkg/rank"
)

// Default returns the standard criteria in priority order.
func Default() []rank.Criterion {
	return []rank.Criterion{
		SumOfTypos{},
		NumberOfWords{},
		WordsProximity{},
		SumOfWordsAttribute{},
		SumOfWordsPosition{},
		Exactness{},
		DocumentID{},
	}
}

// SumOfTypos ranks documents with fewer accumulated typos first. Per
// query term only the best (lowest) distance counts.
type SumOfTypos struct{}

func (SumOfTypos) Evaluate(a, b *rank.Document) int {
	return compare(sumOfTypos(a), sumOfTypos(b))
}

func (SumOfTypos) Eq(a, b *rank.Document) bool {
	return sumOfTypos(a) == sumOfTypos(b)
}

// sumOfTypos relies on the canonical match order: the first match of each
// query index carries that term's minimal distance.
func sumOfTypos(d *rank.Document) int {
	sum := 0
	last := -1
	for _, m := range d.Matches {
		if int(m.QueryIndex) != last {
			sum += int(m.Distance)
			last = int(m.QueryIndex)
		}
	}
	return sum
}

// NumberOfWords ranks documents matching more distinct query terms first.
type NumberOfWords struct{}

func (NumberOfWords) Evaluate(a, b *rank.Document) int {
	return compare(numberOfWords(b), numberOfWords(a))
}

func (NumberOfWords) Eq(a, b *rank.Document) bool {
	return numberOfWords(a) == numberOfWords(b)
}

func numberOfWords(d *rank.Document) int {
	seen := bitset.New(8)
	for _, m := range d.Matches {
		seen.Set(uint(m.QueryIndex))
	}
	return int(seen.Count())
}

// SumOfWordsAttribute ranks documents whose terms live in lower-numbered
// attributes first. Per query term only the best attribute counts.
type SumOfWordsAttribute struct{}

func (SumOfWordsAttribute) Evaluate(a, b *rank.Document) int {
	return compare(sumOfAttributes(a), sumOfAttributes(b))
}

func (SumOfWordsAttribute) Eq(a, b *rank.Document) bool {
	return sumOfAttributes(a) == sumOfAttributes(b)
}

func sumOfAttributes(d *rank.Document) int {
	sum := 0
	for _, group := range queryIndexGroups(d.Matches) {
		best := group[0].Attribute
		for _, m := range group[1:] {
			if m.Attribute < best {
				best = m.Attribute
			}
		}
		sum += int(best)
	}
	return sum
}

// SumOfWordsPosition ranks documents whose terms occur earlier inside
// their attributes first.
type SumOfWordsPosition struct{}

func (SumOfWordsPosition) Evaluate(a, b *rank.Document) int {
	return compare(sumOfPositions(a), sumOfPositions(b))
}

func (SumOfWordsPosition) Eq(a, b *rank.Document) bool {
	return sumOfPositions(a) == sumOfPositions(b)
}

func sumOfPositions(d *rank.Document) int {
	sum := 0
	for _, group := range queryIndexGroups(d.Matches) {
		best := group[0].AttributeIndex
		for _, m := range group[1:] {
			if m.AttributeIndex < best {
				best = m.AttributeIndex
			}
		}
		sum += int(best)
	}
	return sum
}

// Exactness ranks documents with more exact matches first.
type Exactness struct{}

func (Exactness) Evaluate(a, b *rank.Document) int {
	return compare(exactCount(b), exactCount(a))
}

func (Exactness) Eq(a, b *rank.Document) bool {
	return exactCount(a) == exactCount(b)
}

func exactCount(d *rank.Document) int {
	count := 0
	for _, m := range d.Matches {
		if m.IsExact {
			count++
		}
	}
	return count
}

// DocumentID ranks by ascending document id. Appended last, it makes the
// total order unique and the returned window fully deterministic.
type DocumentID struct{}

func (DocumentID) Evaluate(a, b *rank.Document) int {
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

func (DocumentID) Eq(a, b *rank.Document) bool {
	return a.ID == b.ID
}

// queryIndexGroups splits a canonical-order match slice into one run per
// query index.
func queryIndexGroups(matches []rank.Match) [][]rank.Match {
	var groups [][]rank.Match
	for start := 0; start < len(matches); {
		end := start + 1
		for end < len(matches) && matches[end].QueryIndex == matches[start].QueryIndex {
			end++
		}
		groups = append(groups, matches[start:end])
		start = end
	}
	return groups
}

func compare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
