package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/plumesearch/plume/pkg/index"
	"github.com/plumesearch/plume/pkg/rank"
	"github.com/plumesearch/plume/pkg/search"
)

const (
	attrTitle uint16 = 0
	attrBody  uint16 = 1
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	indexer := index.NewIndexer(index.WithLogger(logger))

	indexer.IndexText(1, attrTitle, "The Hitchhiker's Guide to the Galaxy")
	indexer.IndexText(1, attrBody, "A towel is about the most massively useful thing an interstellar hitchhiker can have")
	indexer.IndexText(2, attrTitle, "Galaxy formation and evolution")
	indexer.IndexText(2, attrBody, "Galaxies grow through mergers and the slow accretion of gas")
	indexer.IndexText(3, attrTitle, "Field guide to garden birds")
	indexer.IndexText(3, attrBody, "A practical guide to identifying the birds of hedgerow and garden")

	ix, err := indexer.Build()
	if err != nil {
		log.Fatalf("build index: %v", err)
	}
	fmt.Printf("indexed %d documents, %d words\n", ix.DocumentCount(), ix.WordCount())

	engine := search.NewEngine(ix, search.WithLogger(logger))

	for _, query := range []string{
		"galaxy guide",
		"galxy", // one typo
		"birds",
	} {
		documents, err := engine.Search(query, rank.Range{Start: 0, End: 5})
		if err != nil {
			log.Fatalf("search %q: %v", query, err)
		}
		fmt.Printf("\n%q → %d documents\n", query, len(documents))
		for i, doc := range documents {
			fmt.Printf("  %d. doc %d (%d matches)\n", i+1, doc.ID, len(doc.Matches))
		}
	}
}
