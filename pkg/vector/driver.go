// Package vector provides interfaces and implementations for vector storage and similarity search.
package vector

import "context"

// Document represents a stored knowledge-base entry with its embedding.
type Document struct {
	// ID is a unique identifier for the document (hex digest of its text).
	ID string

	// Text is the document content, formatted as a question/answer pair.
	Text string

	// Embedding is the vector representation of the document text.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Add stores documents with their embeddings.
	// If a document with the same ID already exists, implementers should
	// update the document.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// ordered by descending similarity. Fewer than topK results are
	// returned when the index holds fewer documents.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Count returns the number of documents in the index.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the driver.
	Close() error
}
