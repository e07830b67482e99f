package criteria

import "github.com/plumesearch/plume/pkg/rank"

// MaxProximity caps the gap between two words. Anything at least this far
// apart, or in different attributes, counts the same.
const MaxProximity = 8

// WordsProximity ranks documents whose consecutive query terms sit closer
// together first. The per-pair gap is bucketed at MaxProximity, so Eq
// groups documents whose exact gaps differ but are equally "far".
type WordsProximity struct{}

func (WordsProximity) Evaluate(a, b *rank.Document) int {
	return compare(matchesProximity(a), matchesProximity(b))
}

func (WordsProximity) Eq(a, b *rank.Document) bool {
	return matchesProximity(a) == matchesProximity(b)
}

// matchesProximity sums, over each consecutive pair of query indexes, the
// best proximity achievable by any pair of their matches.
func matchesProximity(d *rank.Document) int {
	groups := queryIndexGroups(d.Matches)
	total := 0
	for i := 1; i < len(groups); i++ {
		best := MaxProximity
		for _, left := range groups[i-1] {
			for _, right := range groups[i] {
				if p := attributeProximity(left, right); p < best {
					best = p
				}
			}
		}
		total += best
	}
	return total
}

func attributeProximity(left, right rank.Match) int {
	if left.Attribute != right.Attribute {
		return MaxProximity
	}
	return indexProximity(left.AttributeIndex, right.AttributeIndex)
}

// indexProximity favors words in query order: "left right" at adjacent
// positions scores 1, the reversed order costs one extra.
func indexProximity(left, right uint32) int {
	var gap int
	if left < right {
		gap = int(right - left)
	} else {
		gap = int(left-right) + 1
	}
	if gap > MaxProximity {
		gap = MaxProximity
	}
	return gap
}
