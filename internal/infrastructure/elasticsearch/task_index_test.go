package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

// fakeES answers like a cluster and records every request.
type fakeES struct {
	mu       sync.Mutex
	requests []recorded
	handle   func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
	f.mu.Unlock()
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.handle(w, r)
}

func (f *fakeES) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newIndex(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*TaskIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{handle: handle}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := es.NewClient(es.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewTaskIndex(client, "tasks"), fake
}

func TestTaskIndex_Index(t *testing.T) {
	idx, fake := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	task := &entity.Task{ID: "t1", Title: "Finish project", Description: "docs", OwnerID: "u1"}
	require.NoError(t, idx.Index(context.Background(), task))

	req := fake.last()
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/tasks/_doc/t1", req.path)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.body), &doc))
	assert.Equal(t, "u1", doc["user_id"])
	assert.Equal(t, "Finish project", doc["task"])
	assert.Equal(t, false, doc["check"])
}

func TestTaskIndex_SearchFiltersByOwner(t *testing.T) {
	idx, fake := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"t2"},{"_id":"t1"}]}}`)
	})

	ids, err := idx.Search(context.Background(), "u1", "project", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t1"}, ids)

	req := fake.last()
	assert.Equal(t, "/tasks/_search", req.path)
	assert.Contains(t, req.body, `"term":{"user_id":"u1"}`)
	assert.Contains(t, req.body, `"size":10`)
}

func TestTaskIndex_RemoveMissingIsOK(t *testing.T) {
	idx, fake := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	})

	require.NoError(t, idx.Remove(context.Background(), "gone"))
	assert.Equal(t, http.MethodDelete, fake.last().method)
}

func TestTaskIndex_SearchErrorStatus(t *testing.T) {
	idx, _ := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := idx.Search(context.Background(), "u1", "x", 5)
	assert.Error(t, err)
}

func TestTaskIndex_EnsureIndexCreatesWhenMissing(t *testing.T) {
	idx, fake := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))

	req := fake.last()
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/tasks", req.path)
	assert.True(t, strings.Contains(req.body, `"user_id":     {"type": "keyword"}`))
}

func TestTaskIndex_EnsureIndexCreateRace(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"already exists", `{"error":{"type":"resource_already_exists_exception","reason":"index [tasks] already exists"},"status":400}`, false},
		{"bad mapping", `{"error":{"type":"mapper_parsing_exception","reason":"Failed to parse mapping"},"status":400}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, _ := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodHead {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			})

			err := idx.EnsureIndex(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "mapper_parsing_exception")
				return
			}
			assert.NoError(t, err)
		})
	}
}
