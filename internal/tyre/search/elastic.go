package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre"
	essearch "github.com/fekuna/omnipos-tyre-service/pkg/search"
)

const IndexName = "tyres"

const mapping = `{
	"mappings": {
		"properties": {
			"brand": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"model_with_size": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"tube_type": { "type": "keyword" }
		}
	}
}`

// Searcher is the subset of the Elasticsearch client the index needs.
type Searcher interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]any) (*essearch.SearchResponse, error)
}

type document struct {
	Brand         string `json:"brand"`
	ModelWithSize string `json:"model_with_size"`
	TubeType      string `json:"tube_type"`
}

type ElasticIndex struct {
	es Searcher
}

// NewElasticIndex ensures the index exists before returning.
func NewElasticIndex(ctx context.Context, es Searcher) (*ElasticIndex, error) {
	if err := es.CreateIndex(ctx, IndexName, mapping); err != nil {
		return nil, fmt.Errorf("create %s index: %w", IndexName, err)
	}
	return &ElasticIndex{es: es}, nil
}

func (i *ElasticIndex) Index(ctx context.Context, t *model.Tyre) error {
	return i.es.Index(ctx, IndexName, t.ID, document{
		Brand:         string(t.Brand),
		ModelWithSize: t.ModelWithSize,
		TubeType:      string(t.TubeType),
	})
}

func (i *ElasticIndex) Delete(ctx context.Context, id string) error {
	return i.es.Delete(ctx, IndexName, id)
}

// SearchIDs matches query as a case-insensitive substring of the raw brand or
// model, the same rows an ILIKE '%query%' would return.
func (i *ElasticIndex) SearchIDs(ctx context.Context, query string) ([]string, error) {
	pattern := "*" + escapeWildcard(query) + "*"
	q := map[string]any{
		"size":    tyre.SearchMaxHits,
		"_source": false,
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					wildcard("brand.keyword", pattern),
					wildcard("model_with_size.keyword", pattern),
				},
				"minimum_should_match": 1,
			},
		},
	}

	res, err := i.es.Search(ctx, IndexName, q)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func wildcard(field, pattern string) map[string]any {
	return map[string]any{
		"wildcard": map[string]any{
			field: map[string]any{
				"value":            pattern,
				"case_insensitive": true,
			},
		},
	}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// escapeWildcard makes user input match literally inside a wildcard pattern.
func escapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}
