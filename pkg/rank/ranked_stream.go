package rank

import "sort"

// Builder assembles a reusable retrieval handle from a stream source, an
// automaton set and an ordered criterion list. The automaton set and
// criteria are read-only once Build is called.
type Builder struct {
	source     StreamSource
	automatons []Automaton
	criteria   []Criterion
}

// NewBuilder creates a builder over the given stream source and automaton
// set. The automaton order matters: position i is the query index every
// match of that automaton is tagged with.
func NewBuilder(source StreamSource, automatons []Automaton) *Builder {
	return &Builder{source: source, automatons: automatons}
}

// Criteria sets the ranking criteria, most significant first.
func (b *Builder) Criteria(criteria ...Criterion) *Builder {
	b.criteria = criteria
	return b
}

// Build produces the retrieval handle. The underlying word stream is
// created here and drained on the first RetrieveDocuments call, so a
// handle is meaningfully retrieved from once.
func (b *Builder) Build() *RankedStream {
	var stream WordStream = emptyStream{}
	if b.source != nil && len(b.automatons) > 0 {
		stream = b.source.Stream(b.automatons)
	}
	return &RankedStream{
		stream:     stream,
		automatons: b.automatons,
		criteria:   b.criteria,
	}
}

// RankedStream is a single-use retrieval handle.
type RankedStream struct {
	stream     WordStream
	automatons []Automaton
	criteria   []Criterion
}

// RetrieveDocuments drains the word stream, aggregates match evidence per
// document and returns the documents occupying rng in the fully ranked
// order. Only groups of documents that can still land inside rng are ever
// sorted, so the work grows with the window position, not the result size.
// Degenerate inputs (empty range, range past the end, no criteria, no
// matches) yield an empty or truncated slice, never an error.
func (rs *RankedStream) RetrieveDocuments(rng Range) []Document {
	documents := rs.collect()

	if len(rs.criteria) > 0 && rng.End > rng.Start {
		rs.rankWindow(documents, rng)
	}

	start := rng.Start
	if start > len(documents) {
		start = len(documents)
	}
	end := rng.End
	if end > len(documents) {
		end = len(documents)
	}
	if end < start {
		end = start
	}
	return documents[start:end]
}

// collect drains the stream into one document per distinct id. The stream
// must be read to the end: evidence for any document can arrive
// interleaved with any other, and a late match can change a rank.
func (rs *RankedStream) collect() []Document {
	bags := make(map[DocumentID][]Match)

	for {
		word, values, ok := rs.stream.Next()
		if !ok {
			break
		}
		for _, iv := range values {
			automaton := rs.automatons[iv.Index]
			distance := automaton.Eval(word)
			isExact := distance == 0 && len(word) == automaton.QueryLen()

			for _, di := range iv.DocIndexes {
				bags[di.Document] = append(bags[di.Document], Match{
					QueryIndex:     uint32(iv.Index),
					Distance:       distance,
					Attribute:      di.Attribute,
					AttributeIndex: di.AttributeIndex,
					IsExact:        isExact,
				})
			}
		}
	}

	documents := make([]Document, 0, len(bags))
	for id, bag := range bags {
		SortMatches(bag)
		documents = append(documents, documentFromSortedMatches(id, bag))
	}

	// Ascending id is the deterministic baseline order; criteria refine it.
	sort.Slice(documents, func(i, j int) bool {
		return documents[i].ID < documents[j].ID
	})
	return documents
}

// span is a half-open index range into the collected document slice.
// Groups are spans, never nested sub-slices, so the document slice stays
// the single owner of its elements.
type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

// rankWindow refines groups of tied documents criterion by criterion until
// the requested window is fully resolved. Spans always partition the whole
// document slice; a span left untouched keeps its current internal order,
// which is only possible when none of its documents can fall inside rng.
func (rs *RankedStream) rankWindow(documents []Document, rng Range) {
	groups := []span{{0, len(documents)}}

	for _, criterion := range rs.criteria {
		next := make([]span, 0, len(groups))
		end := 0
		resolved := false

		for gi, group := range groups {
			if resolved {
				next = append(next, groups[gi:]...)
				break
			}
			start := end
			end += group.len()

			// A group strictly before or after the window can never
			// contribute to it, under this criterion or any later one.
			if end <= rng.Start || start >= rng.End {
				next = append(next, group)
				continue
			}

			part := documents[group.start:group.end]
			sort.Slice(part, func(i, j int) bool {
				return criterion.Evaluate(&part[i], &part[j]) < 0
			})

			// Re-partition the sorted group into maximal equivalence runs.
			run := group.start
			for i := group.start + 1; i <= group.end; i++ {
				if i == group.end || !criterion.Eq(&documents[i-1], &documents[i]) {
					next = append(next, span{run, i})
					run = i
				}
			}

			// Everything past this point lies at or beyond rng.End, so no
			// further group needs this criterion.
			if end >= rng.End {
				resolved = true
			}
		}

		groups = next
	}
}
