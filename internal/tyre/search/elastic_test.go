package search

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre"
	essearch "github.com/fekuna/omnipos-tyre-service/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) CreateIndex(ctx context.Context, index, mapping string) error {
	return m.Called(ctx, index, mapping).Error(0)
}

func (m *mockSearcher) Index(ctx context.Context, index, id string, doc any) error {
	return m.Called(ctx, index, id, doc).Error(0)
}

func (m *mockSearcher) Delete(ctx context.Context, index, id string) error {
	return m.Called(ctx, index, id).Error(0)
}

func (m *mockSearcher) Search(ctx context.Context, index string, query map[string]any) (*essearch.SearchResponse, error) {
	args := m.Called(ctx, index, query)
	res, _ := args.Get(0).(*essearch.SearchResponse)
	return res, args.Error(1)
}

func TestNewElasticIndex(t *testing.T) {
	es := new(mockSearcher)
	es.On("CreateIndex", mock.Anything, IndexName, mapping).Return(nil).Once()
	es.On("CreateIndex", mock.Anything, IndexName, mapping).Return(errors.New("forbidden")).Once()

	idx, err := NewElasticIndex(context.Background(), es)
	require.NoError(t, err)
	assert.NotNil(t, idx)

	_, err = NewElasticIndex(context.Background(), es)
	assert.Error(t, err)
}

func TestElasticIndex_Index(t *testing.T) {
	es := new(mockSearcher)
	idx := &ElasticIndex{es: es}
	stored := &model.Tyre{
		BaseModel:     model.BaseModel{ID: "t-1"},
		Brand:         model.BrandApollo,
		ModelWithSize: "Alnac 4G 185/65 R15",
		TubeType:      model.TubeTypeTubeless,
	}
	es.On("Index", mock.Anything, IndexName, "t-1", document{
		Brand:         "APOLLO",
		ModelWithSize: "Alnac 4G 185/65 R15",
		TubeType:      "Tubeless",
	}).Return(nil)
	es.On("Delete", mock.Anything, IndexName, "t-1").Return(nil)

	require.NoError(t, idx.Index(context.Background(), stored))
	require.NoError(t, idx.Delete(context.Background(), "t-1"))
	es.AssertExpectations(t)
}

// wildcardValues returns field -> pattern for every wildcard clause of q,
// checking each one is case-insensitive.
func wildcardValues(t *testing.T, q map[string]any) map[string]string {
	t.Helper()
	should := q["query"].(map[string]any)["bool"].(map[string]any)["should"].([]any)
	out := map[string]string{}
	for _, clause := range should {
		for field, opts := range clause.(map[string]any)["wildcard"].(map[string]any) {
			w := opts.(map[string]any)
			assert.Equal(t, true, w["case_insensitive"], field)
			out[field] = w["value"].(string)
		}
	}
	return out
}

func TestElasticIndex_SearchIDs(t *testing.T) {
	var res essearch.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"hits":{"total":{"value":2},"hits":[{"_id":"t-1"},{"_id":"t-2"}]}}`), &res))

	cases := []struct {
		name    string
		query   string
		pattern string
	}{
		{name: "multi word", query: "Secura Drive", pattern: "*Secura Drive*"},
		{name: "model and size", query: "Secura Drive 195/55", pattern: "*Secura Drive 195/55*"},
		{name: "size only", query: "195/55", pattern: "*195/55*"},
		{name: "wildcard characters are literal", query: `a*b?c\`, pattern: `*a\*b\?c\\*`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			es := new(mockSearcher)
			idx := &ElasticIndex{es: es}

			var captured map[string]any
			es.On("Search", mock.Anything, IndexName, mock.Anything).
				Run(func(args mock.Arguments) { captured = args.Get(2).(map[string]any) }).
				Return(&res, nil)

			ids, err := idx.SearchIDs(context.Background(), tc.query)

			require.NoError(t, err)
			assert.Equal(t, []string{"t-1", "t-2"}, ids)
			assert.Equal(t, tyre.SearchMaxHits, captured["size"])
			assert.Equal(t, map[string]string{
				"brand.keyword":           tc.pattern,
				"model_with_size.keyword": tc.pattern,
			}, wildcardValues(t, captured))
		})
	}
}

func TestElasticIndex_SearchIDsError(t *testing.T) {
	es := new(mockSearcher)
	idx := &ElasticIndex{es: es}
	es.On("Search", mock.Anything, IndexName, mock.Anything).Return(nil, errors.New("timeout"))

	ids, err := idx.SearchIDs(context.Background(), "ceat")

	assert.Error(t, err)
	assert.Nil(t, ids)
}

func TestEscapeWildcard(t *testing.T) {
	assert.Equal(t, "Secura Drive 195/55", escapeWildcard("Secura Drive 195/55"))
	assert.Equal(t, `50%\*`, escapeWildcard("50%*"))
	assert.Equal(t, `\\\?`, escapeWildcard(`\?`))
}
