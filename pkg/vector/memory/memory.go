// Package memory provides an in-process vector driver backed by exact
// cosine similarity. It is the default index for single-node deployments
// where the knowledge base fits comfortably in memory.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/primefold/ragd/pkg/vector"
)

// Driver implements vector.Driver with a map and exact cosine scoring.
// The index is read-mostly: it is populated once during ingestion and
// only read afterwards, so a RWMutex is sufficient for concurrent queries.
type Driver struct {
	mu   sync.RWMutex
	docs map[string]vector.Document
}

// NewDriver creates an empty in-memory vector driver.
func NewDriver() *Driver {
	return &Driver{
		docs: make(map[string]vector.Document),
	}
}

// Add stores documents, replacing any existing document with the same ID.
func (d *Driver) Add(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		d.docs[doc.ID] = doc
	}
	return nil
}

// Query scores every stored document against the given embedding and
// returns up to topK results ordered by descending similarity. Ties are
// broken by ascending document ID so results are deterministic for a
// fixed index state.
func (d *Driver) Query(_ context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	results := make([]vector.QueryResult, 0, len(d.docs))
	for _, doc := range d.docs {
		results = append(results, vector.QueryResult{
			Document: doc,
			Score:    cosineSimilarity(embedding, doc.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the number of stored documents.
func (d *Driver) Count(_ context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.docs), nil
}

// Close is a no-op for the in-memory driver.
func (d *Driver) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score zero rather than erroring so a
// single malformed document cannot fail a whole query.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

var _ vector.Driver = (*Driver)(nil)
