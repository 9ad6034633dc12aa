package rag

import "errors"

var (
	// ErrNotReady is returned by Ask before startup ingestion has
	// completed. The serving layer surfaces it as a retryable
	// service-unavailable condition.
	ErrNotReady = errors.New("engine is not ready")

	// ErrRetrievalUnavailable is returned when the query cannot be
	// embedded or the vector index cannot be searched. Without retrieved
	// context the pipeline has no basis to answer, so this is the one
	// pipeline failure that crosses the engine boundary.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
)
