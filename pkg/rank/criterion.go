package rank

// Criterion is one ranking rule. Criteria are applied in priority order:
// the first criterion is the most significant, later ones only break ties.
type Criterion interface {
	// Evaluate defines a strict weak ordering over documents: negative
	// when a ranks before b, zero when neither ranks first.
	Evaluate(a, b *Document) int
	// Eq reports equivalence under this criterion. Eq(a, b) implies
	// Evaluate(a, b) == 0; the converse is not required, so a criterion
	// may keep documents grouped that Evaluate alone cannot separate.
	Eq(a, b *Document) bool
}

// Range is a half-open [Start, End) window into the final ranked order.
type Range struct {
	Start int
	End   int
}

// Len returns the number of positions the range covers.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}
