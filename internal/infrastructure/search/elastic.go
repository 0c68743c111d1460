package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// Index is a single Elasticsearch index mirroring one document collection.
type Index struct {
	ES   *elasticsearch.Client
	Name string
}

func NewIndex(es *elasticsearch.Client, name string) *Index {
	return &Index{ES: es, Name: name}
}

// Put indexes doc under id. The _id key is carried as the document id, not in the source.
func (i *Index) Put(ctx context.Context, id string, doc entity.Document) error {
	src := doc.Clone()
	delete(src, entity.IDField)
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.Name, DocumentID: id, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", i.Name, res.Status())
	}
	return nil
}

// Query runs a multi_match over every field and returns the hits with _id restored.
func (i *Index) Query(ctx context.Context, q string, size int) ([]entity.Document, error) {
	if size <= 0 || size > 50 {
		size = 20
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":   q,
				"fields":  []string{"title^2", "*"},
				"lenient": true,
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.ES.Search(i.ES.Search.WithContext(c), i.ES.Search.WithIndex(i.Name), i.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == 404 {
		return []entity.Document{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("es search %s: %s", i.Name, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Document, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := entity.Document(h.Source)
		if d == nil {
			d = entity.Document{}
		}
		d[entity.IDField] = h.ID
		out = append(out, d)
	}
	return out, nil
}
