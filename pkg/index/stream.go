package index

import (
	"bytes"
	"errors"

	"github.com/blevesearch/vellum"
	"go.uber.org/zap"

	"github.com/plumesearch/plume/pkg/automaton"
	"github.com/plumesearch/plume/pkg/rank"
)

// Stream returns the alphabetically merged word stream for the given
// automaton set. Position i in dfas is the query index reported for every
// word that automaton matches. The stream borrows the index: the index
// must stay unmutated (it is read-only by construction) until the stream
// is drained.
func (ix *Index) Stream(dfas []*automaton.DFA) rank.WordStream {
	u := &union{index: ix}
	for i, dfa := range dfas {
		it, err := ix.fst.Search(dfa.Matcher(), nil, nil)
		if err != nil {
			// ErrIteratorDone just means no word matches this automaton.
			if !errors.Is(err, vellum.ErrIteratorDone) {
				ix.log.Warn("fst search failed",
					zap.String("term", dfa.Term()), zap.Error(err))
			}
			continue
		}
		u.streams = append(u.streams, &termStream{index: i, it: it})
	}
	return u
}

// termStream is one automaton's FST iterator tagged with its query index.
type termStream struct {
	index int
	it    *vellum.FSTIterator
	done  bool
}

// union merges per-automaton word streams in ascending word order,
// emitting each distinct word once with one IndexedValue per automaton
// that matched it.
type union struct {
	index   *Index
	streams []*termStream
}

func (u *union) Next() ([]byte, []rank.IndexedValue, bool) {
	var smallest []byte
	for _, s := range u.streams {
		if s.done {
			continue
		}
		word, _ := s.it.Current()
		if smallest == nil || bytes.Compare(word, smallest) < 0 {
			smallest = word
		}
	}
	if smallest == nil {
		return nil, nil, false
	}

	// Iterators reuse their key buffer across Next calls.
	word := append([]byte(nil), smallest...)

	var values []rank.IndexedValue
	var docIndexes []rank.DocIndex
	decoded := false

	for _, s := range u.streams {
		if s.done {
			continue
		}
		current, offset := s.it.Current()
		if !bytes.Equal(current, word) {
			continue
		}
		// Every automaton positioned on this word sees the same postings
		// entry; decode it once.
		if !decoded {
			docIndexes = u.index.decodePostings(offset)
			decoded = true
		}
		values = append(values, rank.IndexedValue{Index: s.index, DocIndexes: docIndexes})

		if err := s.it.Next(); err != nil {
			s.done = true
			if !errors.Is(err, vellum.ErrIteratorDone) {
				u.index.log.Warn("fst iterator failed", zap.Error(err))
			}
		}
	}
	return word, values, true
}
