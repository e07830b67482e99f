package rank

// Automaton is the compiled matcher for one query term. Implementations
// must be pure: Eval depends only on the word, and both methods are safe
// for concurrent use.
type Automaton interface {
	// Eval returns the edit distance between the query term and word,
	// capped at one past the automaton's distance budget.
	Eval(word []byte) uint8
	// QueryLen returns the byte length of the query term.
	QueryLen() int
}

// DocIndex is one physical location where a word occurs.
type DocIndex struct {
	Document       DocumentID
	Attribute      uint16
	AttributeIndex uint32
}

// IndexedValue reports, for one streamed word, every location recorded
// for the automaton at Index in the query's automaton set.
type IndexedValue struct {
	Index      int
	DocIndexes []DocIndex
}

// WordStream is a pull-based stream of (word, locations) pairs in
// ascending word order. Next returns ok=false once exhausted. The word
// slice is only valid until the following call to Next.
type WordStream interface {
	Next() (word []byte, values []IndexedValue, ok bool)
}

// StreamSource produces the merged word stream for a set of automatons.
// The index package provides the FST-backed implementation.
type StreamSource interface {
	Stream(queries []Automaton) WordStream
}

type emptyStream struct{}

func (emptyStream) Next() ([]byte, []IndexedValue, bool) { return nil, nil, false }
