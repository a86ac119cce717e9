package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu       sync.Mutex
	indices  map[string]bool
	docs     map[string]json.RawMessage
	searches []map[string]any
}

func newFakeES(t *testing.T) (*fakeES, *httptest.Server) {
	t.Helper()
	f := &fakeES{indices: map[string]bool{}, docs: map[string]json.RawMessage{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"8.19.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
	case r.Method == http.MethodHead && r.URL.Path == "/tyres":
		if !f.indices["tyres"] {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/tyres":
		f.indices["tyres"] = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case r.Method == http.MethodPut && len(r.URL.Path) > len("/tyres/_doc/"):
		body, _ := io.ReadAll(r.Body)
		f.docs[r.URL.Path[len("/tyres/_doc/"):]] = body
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case r.Method == http.MethodDelete:
		id := r.URL.Path[len("/tyres/_doc/"):]
		if _, ok := f.docs[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		delete(f.docs, id)
		_, _ = io.WriteString(w, `{"result":"deleted"}`)
	case r.URL.Path == "/tyres/_search":
		var q map[string]any
		_ = json.NewDecoder(r.Body).Decode(&q)
		f.searches = append(f.searches, q)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[{"_id":"a"},{"_id":"b"}]}}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func TestClient_Lifecycle(t *testing.T) {
	fake, srv := newFakeES(t)
	ctx := context.Background()

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	require.NoError(t, c.CreateIndex(ctx, "tyres", `{}`))
	require.NoError(t, c.CreateIndex(ctx, "tyres", `{}`), "existing index is left alone")
	assert.True(t, fake.indices["tyres"])

	require.NoError(t, c.Index(ctx, "tyres", "a", map[string]string{"brand": "CEAT"}))
	assert.JSONEq(t, `{"brand":"CEAT"}`, string(fake.docs["a"]))

	res, err := c.Search(ctx, "tyres", map[string]any{"size": 10})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Hits.Total.Value)
	require.Len(t, res.Hits.Hits, 2)
	assert.Equal(t, "a", res.Hits.Hits[0].ID)
	require.Len(t, fake.searches, 1)
	assert.EqualValues(t, 10, fake.searches[0]["size"])

	require.NoError(t, c.Delete(ctx, "tyres", "a"))
	require.NoError(t, c.Delete(ctx, "tyres", "missing"), "deleting a missing document is not an error")
	assert.Empty(t, fake.docs)
}

func TestClient_ErrorResponse(t *testing.T) {
	_, srv := newFakeES(t)

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "unknown", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elasticsearch search")
}
