package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

const defaultLimit = 20

// Hit is a single search result.
type Hit struct {
	ID           string  `json:"id"`
	Score        float64 `json:"score"`
	PrimaryTitle string  `json:"primaryTitle"`
}

// Search runs a full-text query over indexed titles. A match on the
// title text and a prefix match are combined so partial words still hit.
func (s *SearchIndex) Search(ctx context.Context, queryText string, limit int) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return nil, nil
	}

	match := bleve.NewMatchQuery(queryText)
	match.SetField("primaryTitle")

	prefix := bleve.NewPrefixQuery(strings.ToLower(queryText))
	prefix.SetField("primaryTitle")

	searchQuery := bleve.NewDisjunctionQuery([]query.Query{match, prefix}...)
	request := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)
	request.Fields = []string{"primaryTitle"}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result, err := s.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", queryText, err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		h := Hit{ID: hit.ID, Score: hit.Score}
		if name, ok := hit.Fields["primaryTitle"].(string); ok {
			h.PrimaryTitle = name
		}
		hits = append(hits, h)
	}
	return hits, nil
}
