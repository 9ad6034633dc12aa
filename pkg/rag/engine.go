// Package rag implements the query-serving pipeline: cache-aside
// orchestration over embedding, vector search, and answer generation.
package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/cache"
	"github.com/primefold/ragd/pkg/embeddings"
	"github.com/primefold/ragd/pkg/llm"
	"github.com/primefold/ragd/pkg/vector"
)

const (
	// DefaultTopK is the number of documents retrieved as context.
	DefaultTopK = 2

	// DefaultCacheTTL is how long a cached answer stays valid.
	DefaultCacheTTL = 3600 * time.Second
)

// Answer is the response object returned for a query. It serializes
// identically whether freshly generated or served from cache.
type Answer struct {
	Answer string `json:"answer"`
}

// Engine coordinates the cache store, embedder, vector index, and chat
// client to answer queries. It holds no per-request state; everything is
// injected at construction and safe for concurrent use.
type Engine struct {
	embedder embeddings.Embedder
	vectors  vector.Driver
	chat     llm.ChatClient
	cache    cache.Store
	topK     int
	cacheTTL time.Duration
	logger   *zap.Logger

	// ready flips once, after ingestion completes. Checked on every Ask
	// so the serving layer can report initializing instead of answering
	// from an empty index.
	ready atomic.Bool
}

// Config holds construction options for the engine.
type Config struct {
	// TopK is the number of context documents per query.
	// Defaults to DefaultTopK if zero.
	TopK int

	// CacheTTL is the answer cache time-to-live.
	// Defaults to DefaultCacheTTL if zero.
	CacheTTL time.Duration
}

// NewEngine creates an engine over the injected dependencies. The cache
// store must never be nil; pass the nop store to disable caching.
func NewEngine(
	cfg Config,
	embedder embeddings.Embedder,
	vectors vector.Driver,
	chat llm.ChatClient,
	store cache.Store,
	logger *zap.Logger,
) *Engine {
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Engine{
		embedder: embedder,
		vectors:  vectors,
		chat:     chat,
		cache:    store,
		topK:     topK,
		cacheTTL: ttl,
		logger:   logger,
	}
}

// Ready reports whether startup ingestion has completed.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// Ask answers a query with cache-aside orchestration:
// cache read (errors degrade to a miss), retrieve, generate, best-effort
// cache write. Cache behavior is fully transparent to the caller; only
// ErrNotReady and ErrRetrievalUnavailable ever surface.
func (e *Engine) Ask(ctx context.Context, query string) (Answer, error) {
	if !e.ready.Load() {
		return Answer{}, ErrNotReady
	}

	key := cache.Key(query)

	if cached, ok := e.cacheRead(ctx, key); ok {
		return cached, nil
	}

	contexts, err := e.Retrieve(ctx, query, e.topK)
	if err != nil {
		return Answer{}, err
	}

	answer := Answer{Answer: e.Generate(ctx, query, contexts)}

	e.cacheWrite(ctx, key, answer)

	return answer, nil
}

// Retrieve embeds the query and returns the texts of the topK most
// similar documents in descending similarity order. Any failure wraps
// ErrRetrievalUnavailable: the pipeline cannot proceed without context.
func (e *Engine) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	embedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", ErrRetrievalUnavailable, err)
	}

	results, err := e.vectors.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: querying index: %v", ErrRetrievalUnavailable, err)
	}

	texts := make([]string, 0, len(results))
	for _, result := range results {
		texts = append(texts, result.Text)
	}

	e.logger.Debug("retrieved context",
		zap.Int("documents", len(texts)),
	)

	return texts, nil
}

// cacheRead attempts a cache lookup. Backend errors and corrupt entries
// are logged and reported as a miss, never propagated.
func (e *Engine) cacheRead(ctx context.Context, key string) (Answer, bool) {
	value, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return Answer{}, false
	}
	if !ok {
		return Answer{}, false
	}

	var answer Answer
	if err := json.Unmarshal([]byte(value), &answer); err != nil {
		e.logger.Warn("cache entry corrupt",
			zap.String("key", key),
			zap.Error(err),
		)
		return Answer{}, false
	}

	e.logger.Debug("cache hit",
		zap.String("key", key),
	)

	return answer, true
}

// cacheWrite persists an answer best-effort. Failures are logged and
// ignored; they must never affect the returned answer.
func (e *Engine) cacheWrite(ctx context.Context, key string, answer Answer) {
	payload, err := json.Marshal(answer)
	if err != nil {
		e.logger.Warn("cache marshal failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	if err := e.cache.Set(ctx, key, string(payload), e.cacheTTL); err != nil {
		e.logger.Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
