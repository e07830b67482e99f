package index

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumesearch/plume/pkg/automaton"
	"github.com/plumesearch/plume/pkg/rank"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := BuildFromPostings(map[string][]rank.DocIndex{
		"hello": {
			{Document: 1, Attribute: 0, AttributeIndex: 0},
			{Document: 2, Attribute: 1, AttributeIndex: 3},
		},
		"helo":  {{Document: 3, Attribute: 0, AttributeIndex: 5}},
		"world": {{Document: 1, Attribute: 0, AttributeIndex: 1}},
	})
	require.NoError(t, err)
	return ix
}

func TestBuildFromPostings(t *testing.T) {
	ix := buildTestIndex(t)

	assert.Equal(t, 3, ix.WordCount())
	assert.Equal(t, uint64(3), ix.DocumentCount())
	assert.True(t, ix.ContainsDocument(2))
	assert.False(t, ix.ContainsDocument(9))

	docIndexes := ix.DocIndexes([]byte("hello"))
	require.Len(t, docIndexes, 2)
	assert.Equal(t, rank.DocumentID(1), docIndexes[0].Document)
	assert.Equal(t, rank.DocumentID(2), docIndexes[1].Document)
	assert.Equal(t, uint16(1), docIndexes[1].Attribute)
	assert.Equal(t, uint32(3), docIndexes[1].AttributeIndex)

	assert.Nil(t, ix.DocIndexes([]byte("missing")))
}

func TestStreamUnionMergesAutomatons(t *testing.T) {
	ix := buildTestIndex(t)

	fuzzy, err := automaton.New("hello", 1)
	require.NoError(t, err)
	exact, err := automaton.New("world", 0)
	require.NoError(t, err)

	stream := ix.Stream([]*automaton.DFA{fuzzy, exact})

	type emitted struct {
		word    string
		indexes []int
	}
	var got []emitted
	for {
		word, values, ok := stream.Next()
		if !ok {
			break
		}
		e := emitted{word: string(word)}
		for _, iv := range values {
			e.indexes = append(e.indexes, iv.Index)
			assert.NotEmpty(t, iv.DocIndexes)
		}
		got = append(got, e)
	}

	// Ascending word order, each word tagged with the automatons that
	// matched it.
	assert.Equal(t, []emitted{
		{word: "hello", indexes: []int{0}},
		{word: "helo", indexes: []int{0}},
		{word: "world", indexes: []int{1}},
	}, got)
}

func TestStreamNoMatches(t *testing.T) {
	ix := buildTestIndex(t)

	none, err := automaton.New("zzz", 0)
	require.NoError(t, err)

	stream := ix.Stream([]*automaton.DFA{none})
	_, _, ok := stream.Next()
	assert.False(t, ok)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	ix := buildTestIndex(t)
	require.NoError(t, ix.Save(fsys, "plume.idx"))

	reopened, err := Open(fsys, "plume.idx")
	require.NoError(t, err)

	assert.Equal(t, ix.WordCount(), reopened.WordCount())
	assert.Equal(t, ix.DocumentCount(), reopened.DocumentCount())
	assert.Equal(t, ix.DocIndexes([]byte("hello")), reopened.DocIndexes([]byte("hello")))
}

func TestOpenMissingFile(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	_, err = Open(fsys, "nope.idx")
	assert.Error(t, err)
}

func TestIndexerBuildsFromText(t *testing.T) {
	indexer := NewIndexer()
	indexer.IndexText(1, 0, "The quick brown fox")
	indexer.IndexText(2, 0, "A quick red panda")

	ix, err := indexer.Build()
	require.NoError(t, err)

	// Stopwords never reach the index.
	assert.Nil(t, ix.DocIndexes([]byte("the")))

	docIndexes := ix.DocIndexes([]byte("quick"))
	require.Len(t, docIndexes, 2)
	assert.Equal(t, rank.DocumentID(1), docIndexes[0].Document)
	assert.Equal(t, uint32(1), docIndexes[0].AttributeIndex, "position counts all tokens, stopwords included")
	assert.Equal(t, rank.DocumentID(2), docIndexes[1].Document)
}
