package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

const taskMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "user_id":     {"type": "keyword"},
      "task":        {"type": "text"},
      "description": {"type": "text"},
      "check":       {"type": "boolean"},
      "created_at":  {"type": "date"},
      "updated_at":  {"type": "date"}
    }
  }
}`

const alreadyExistsType = "resource_already_exists_exception"

// TaskIndex keeps a searchable copy of tasks. Every query is filtered by
// user_id; the database stays the source of truth.
type TaskIndex struct {
	client  *es.Client
	index   string
	timeout time.Duration
}

func NewTaskIndex(client *es.Client, index string) *TaskIndex {
	return &TaskIndex{client: client, index: index, timeout: 3 * time.Second}
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *TaskIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(c))
	if err != nil {
		return fmt.Errorf("es exists %s: %w", x.index, err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.client.Indices.Create(x.index,
		x.client.Indices.Create.WithContext(c),
		x.client.Indices.Create.WithBody(strings.NewReader(taskMapping)))
	if err != nil {
		return fmt.Errorf("es create %s: %w", x.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if res.StatusCode == http.StatusBadRequest && bytes.Contains(body, []byte(alreadyExistsType)) {
		// another process created it first
		return nil
	}
	return fmt.Errorf("es create %s: %s: %s", x.index, res.Status(), bytes.TrimSpace(body))
}

func (x *TaskIndex) Index(ctx context.Context, t *entity.Task) error {
	doc := map[string]any{
		"id":          t.ID,
		"user_id":     t.OwnerID,
		"task":        t.Title,
		"description": t.Description,
		"check":       t.Completed,
		"created_at":  t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: t.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := req.Do(c, x.client)
	if err != nil {
		return fmt.Errorf("es index task %s: %w", t.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index task %s: %s", t.ID, res.Status())
	}
	return nil
}

// Remove deletes a task document. A missing document is not an error.
func (x *TaskIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := req.Do(c, x.client)
	if err != nil {
		return fmt.Errorf("es delete task %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete task %s: %s", id, res.Status())
	}
	return nil
}

// Search returns ids of ownerID's tasks matching q, best match first.
func (x *TaskIndex) Search(ctx context.Context, ownerID, q string, size int) ([]string, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"task^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": ownerID},
				},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.client.Search(
		x.client.Search.WithContext(c),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}
