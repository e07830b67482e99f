// Package search wires the tokenizer, term automatons, index stream and
// rank core into one query entry point.
package search

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/plumesearch/plume/pkg/automaton"
	"github.com/plumesearch/plume/pkg/index"
	"github.com/plumesearch/plume/pkg/rank"
	"github.com/plumesearch/plume/pkg/rank/criteria"
	"github.com/plumesearch/plume/pkg/tokenizer"
)

// Engine answers queries against one read-only index. Safe for concurrent
// Search calls; the index and criteria are never mutated.
type Engine struct {
	index    *index.Index
	criteria []rank.Criterion
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCriteria replaces the default criterion list. Order matters: the
// first criterion is the most significant.
func WithCriteria(criteria ...rank.Criterion) Option {
	return func(e *Engine) { e.criteria = criteria }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates an engine over ix with the default criteria.
func NewEngine(ix *index.Index, opts ...Option) *Engine {
	e := &Engine{
		index:    ix,
		criteria: criteria.Default(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search compiles the query into automatons and returns the documents
// occupying rng in the ranked order. An all-stopword or empty query
// returns no documents.
func (e *Engine) Search(query string, rng rank.Range) ([]rank.Document, error) {
	dfas, err := Automatons(query)
	if err != nil {
		return nil, err
	}
	if len(dfas) == 0 {
		return nil, nil
	}

	automatons := make([]rank.Automaton, len(dfas))
	for i, dfa := range dfas {
		automatons[i] = dfa
	}

	builder := rank.NewBuilder(fstSource{index: e.index, dfas: dfas}, automatons)
	builder.Criteria(e.criteria...)
	documents := builder.Build().RetrieveDocuments(rng)

	e.log.Debug("query ranked",
		zap.String("query", query),
		zap.Int("terms", len(dfas)),
		zap.Int("returned", len(documents)),
		zap.Int("rangeStart", rng.Start),
		zap.Int("rangeEnd", rng.End))
	return documents, nil
}

// Automatons tokenizes query, drops stopwords and compiles one automaton
// per remaining term with the standard distance budget.
func Automatons(query string) ([]*automaton.DFA, error) {
	var dfas []*automaton.DFA
	for _, token := range tokenizer.Tokenize(query) {
		if tokenizer.IsStopWord(token.Word) {
			continue
		}
		dfa, err := automaton.FromTerm(token.Word)
		if err != nil {
			return nil, fmt.Errorf("compile term %q: %w", token.Word, err)
		}
		dfas = append(dfas, dfa)
	}
	return dfas, nil
}

// fstSource adapts an FST index to the rank core's stream contract for
// one concrete automaton set.
type fstSource struct {
	index *index.Index
	dfas  []*automaton.DFA
}

func (s fstSource) Stream([]rank.Automaton) rank.WordStream {
	return s.index.Stream(s.dfas)
}
