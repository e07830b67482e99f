package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/blevesearch/vellum"
	kbinary "github.com/kelindar/binary"
	"go.uber.org/zap"

	"github.com/plumesearch/plume/pkg/rank"
	"github.com/plumesearch/plume/pkg/tokenizer"
)

// Builder writes an Index word by word. Words must be inserted in
// ascending byte order; vellum rejects out-of-order keys.
type Builder struct {
	fstBuilder *vellum.Builder
	fstBuf     bytes.Buffer
	postings   bytes.Buffer
	docs       *roaring64.Bitmap
	log        *zap.Logger
}

// NewBuilder creates an empty index builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		docs: roaring64.New(),
		log:  applyOptions(opts).log,
	}
	fstBuilder, err := vellum.New(&b.fstBuf, nil)
	if err != nil {
		return nil, fmt.Errorf("create fst builder: %w", err)
	}
	b.fstBuilder = fstBuilder
	return b, nil
}

// Insert records the postings for one word.
func (b *Builder) Insert(word []byte, docIndexes []rank.DocIndex) error {
	encoded, err := kbinary.Marshal(docIndexes)
	if err != nil {
		return fmt.Errorf("encode postings for %q: %w", word, err)
	}

	offset := uint64(b.postings.Len())
	var prefix [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(prefix[:], uint64(len(encoded)))
	b.postings.Write(prefix[:n])
	b.postings.Write(encoded)

	for _, di := range docIndexes {
		b.docs.Add(uint64(di.Document))
	}

	if err := b.fstBuilder.Insert(word, offset); err != nil {
		return fmt.Errorf("insert %q into fst: %w", word, err)
	}
	return nil
}

// Build finalizes the FST and returns the read-only Index. The builder
// must not be used afterwards.
func (b *Builder) Build() (*Index, error) {
	if err := b.fstBuilder.Close(); err != nil {
		return nil, fmt.Errorf("close fst builder: %w", err)
	}

	fstBytes := b.fstBuf.Bytes()
	fst, err := vellum.Load(fstBytes)
	if err != nil {
		return nil, fmt.Errorf("load built fst: %w", err)
	}

	ix := &Index{
		fst:      fst,
		fstBytes: fstBytes,
		postings: b.postings.Bytes(),
		docs:     b.docs,
		log:      b.log,
	}
	b.log.Debug("index built",
		zap.Int("words", ix.WordCount()),
		zap.Uint64("documents", ix.DocumentCount()),
		zap.Int("postingsBytes", len(ix.postings)))
	return ix, nil
}

// BuildFromPostings sorts the words of a postings map and builds an Index
// from them.
func BuildFromPostings(postings map[string][]rank.DocIndex, opts ...Option) (*Index, error) {
	words := make([]string, 0, len(postings))
	for word := range postings {
		words = append(words, word)
	}
	sort.Strings(words)

	builder, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	for _, word := range words {
		docIndexes := postings[word]
		sort.Slice(docIndexes, func(i, j int) bool {
			a, b := docIndexes[i], docIndexes[j]
			if a.Document != b.Document {
				return a.Document < b.Document
			}
			if a.Attribute != b.Attribute {
				return a.Attribute < b.Attribute
			}
			return a.AttributeIndex < b.AttributeIndex
		})
		if err := builder.Insert([]byte(word), docIndexes); err != nil {
			return nil, err
		}
	}
	return builder.Build()
}

// Indexer accumulates tokenized documents and builds an Index in one go.
// It is a convenience over BuildFromPostings for attribute-structured
// documents; it is not a mutable index.
type Indexer struct {
	postings map[string][]rank.DocIndex
	opts     []Option
}

// NewIndexer creates an empty document indexer.
func NewIndexer(opts ...Option) *Indexer {
	return &Indexer{
		postings: make(map[string][]rank.DocIndex),
		opts:     opts,
	}
}

// IndexText tokenizes text and records a posting per non-stopword token
// under the given document id and attribute.
func (in *Indexer) IndexText(doc rank.DocumentID, attribute uint16, text string) {
	for _, token := range tokenizer.Tokenize(text) {
		if tokenizer.IsStopWord(token.Word) {
			continue
		}
		in.postings[token.Word] = append(in.postings[token.Word], rank.DocIndex{
			Document:       doc,
			Attribute:      attribute,
			AttributeIndex: token.Position,
		})
	}
}

// Build produces the read-only Index for everything indexed so far.
func (in *Indexer) Build() (*Index, error) {
	return BuildFromPostings(in.postings, in.opts...)
}
