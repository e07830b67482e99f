// Package index stores word postings behind a vellum FST and serves the
// merged word stream the rank core consumes. The FST maps each word to an
// offset into one flat postings blob; a roaring bitmap tracks which
// document ids the index holds.
package index

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/blevesearch/vellum"
	"github.com/hack-pad/hackpadfs"
	kbinary "github.com/kelindar/binary"
	"go.uber.org/zap"

	"github.com/plumesearch/plume/pkg/rank"
)

// Index is a read-only word index. Safe for concurrent readers.
type Index struct {
	fst      *vellum.FST
	fstBytes []byte
	postings []byte
	docs     *roaring64.Bitmap
	log      *zap.Logger
}

// Option configures an Index or its builders.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger attaches a logger. The default is a nop logger so the
// package stays silent in library use.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func applyOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WordCount returns the number of distinct words indexed.
func (ix *Index) WordCount() int { return ix.fst.Len() }

// DocumentCount returns the number of distinct document ids indexed.
func (ix *Index) DocumentCount() uint64 { return ix.docs.GetCardinality() }

// ContainsDocument reports whether any posting references id.
func (ix *Index) ContainsDocument(id rank.DocumentID) bool {
	return ix.docs.Contains(uint64(id))
}

// DocIndexes returns the postings recorded for an exact word, or nil.
func (ix *Index) DocIndexes(word []byte) []rank.DocIndex {
	offset, exists, err := ix.fst.Get(word)
	if err != nil || !exists {
		return nil
	}
	return ix.decodePostings(offset)
}

// decodePostings reads the length-prefixed postings entry at offset.
// A decode failure means a corrupt blob; it is logged and treated as an
// absent word rather than surfaced to the rank core.
func (ix *Index) decodePostings(offset uint64) []rank.DocIndex {
	if offset >= uint64(len(ix.postings)) {
		ix.log.Warn("postings offset out of range", zap.Uint64("offset", offset))
		return nil
	}
	entry := ix.postings[offset:]
	size, n := binary.Uvarint(entry)
	if n <= 0 || size > uint64(len(entry)-n) {
		ix.log.Warn("corrupt postings length", zap.Uint64("offset", offset))
		return nil
	}

	var docIndexes []rank.DocIndex
	if err := kbinary.Unmarshal(entry[n:n+int(size)], &docIndexes); err != nil {
		ix.log.Warn("corrupt postings entry", zap.Uint64("offset", offset), zap.Error(err))
		return nil
	}
	return docIndexes
}

// envelope is the on-disk layout of a saved index.
type envelope struct {
	Version  uint8
	FST      []byte
	Postings []byte
	Docs     []byte
}

const envelopeVersion = 1

// Save persists the index as one file on fsys.
func (ix *Index) Save(fsys hackpadfs.FS, path string) error {
	docs, err := ix.docs.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal document set: %w", err)
	}

	payload, err := kbinary.Marshal(&envelope{
		Version:  envelopeVersion,
		FST:      ix.fstBytes,
		Postings: ix.postings,
		Docs:     docs,
	})
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	if err := hackpadfs.WriteFullFile(fsys, path, payload, 0644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}

	ix.log.Debug("index saved",
		zap.String("path", path),
		zap.Int("bytes", len(payload)))
	return nil
}

// Open loads an index previously written by Save.
func Open(fsys hackpadfs.FS, path string, opts ...Option) (*Index, error) {
	o := applyOptions(opts)

	content, err := hackpadfs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}

	var env envelope
	if err := kbinary.Unmarshal(content, &env); err != nil {
		return nil, fmt.Errorf("decode index file: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported index version %d", env.Version)
	}

	fst, err := vellum.Load(env.FST)
	if err != nil {
		return nil, fmt.Errorf("load fst: %w", err)
	}

	docs := roaring64.New()
	if err := docs.UnmarshalBinary(env.Docs); err != nil {
		return nil, fmt.Errorf("decode document set: %w", err)
	}

	return &Index{
		fst:      fst,
		fstBytes: env.FST,
		postings: env.Postings,
		docs:     docs,
		log:      o.log,
	}, nil
}
