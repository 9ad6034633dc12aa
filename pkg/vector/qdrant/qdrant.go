// Package qdrant provides a Qdrant vector database driver over gRPC.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/primefold/ragd/pkg/vector"
)

const (
	// DefaultCollectionName is the default collection used for FAQ embeddings.
	DefaultCollectionName = "faq_rag"
)

// Driver implements vector.Driver using Qdrant's gRPC API.
type Driver struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
	logger      *zap.Logger
}

// Config holds configuration for the Qdrant driver.
type Config struct {
	// Target is the Qdrant gRPC address (e.g., "localhost:6334").
	Target string

	// CollectionName is the name of the collection to use.
	// Defaults to DefaultCollectionName if empty.
	CollectionName string

	// Dimensions is the embedding vector size, required when the
	// collection does not exist yet.
	Dimensions uint64
}

// NewDriver connects to Qdrant and ensures the configured collection exists
// with cosine distance.
func NewDriver(c Config, logger *zap.Logger) (*Driver, error) {
	if c.Target == "" {
		return nil, fmt.Errorf("qdrant target is required")
	}

	collection := c.CollectionName
	if collection == "" {
		collection = DefaultCollectionName
	}

	conn, err := grpc.NewClient(c.Target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to qdrant: %v", vector.ErrConnection, err)
	}

	d := &Driver{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  collection,
		logger:      logger,
	}

	if err := d.ensureCollection(context.Background(), c.Dimensions); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: ensuring collection %q: %v", vector.ErrConnection, collection, err)
	}

	logger.Info("connected to Qdrant",
		zap.String("target", c.Target),
		zap.String("collection", collection),
	)

	return d, nil
}

// ensureCollection creates the collection with cosine distance if missing.
func (d *Driver) ensureCollection(ctx context.Context, dimensions uint64) error {
	listResp, err := d.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	for _, coll := range listResp.GetCollections() {
		if coll.GetName() == d.collection {
			return nil
		}
	}

	if dimensions == 0 {
		return fmt.Errorf("collection %q does not exist and no dimensions configured", d.collection)
	}

	_, err = d.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: d.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     dimensions,
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// Add upserts documents with their embeddings and texts as payload.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrantclient.PointStruct, len(docs))
	for i, doc := range docs {
		points[i] = &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				// Qdrant point IDs must be integers or UUIDs; derive a
				// deterministic UUID from the content-addressed document ID.
				PointIdOptions: &qdrantclient.PointId_Uuid{
					Uuid: uuid.NewMD5(uuid.NameSpaceOID, []byte(doc.ID)).String(),
				},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: doc.Embedding},
				},
			},
			Payload: map[string]*qdrantclient.Value{
				"id":   {Kind: &qdrantclient.Value_StringValue{StringValue: doc.ID}},
				"text": {Kind: &qdrantclient.Value_StringValue{StringValue: doc.Text}},
			},
		}
	}

	wait := true
	_, err := d.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: d.collection,
		Points:         points,
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	d.logger.Debug("added documents to qdrant",
		zap.Int("count", len(docs)),
	)

	return nil
}

// Query finds the topK most similar documents to the given embedding.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	searchResp, err := d.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: d.collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
				Include: &qdrantclient.PayloadIncludeSelector{
					Fields: []string{"id", "text"},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	results := make([]vector.QueryResult, 0, len(searchResp.GetResult()))
	for _, point := range searchResp.GetResult() {
		result := vector.QueryResult{Score: point.GetScore()}

		if idVal, ok := point.GetPayload()["id"]; ok {
			result.ID = idVal.GetStringValue()
		}
		if textVal, ok := point.GetPayload()["text"]; ok {
			result.Text = textVal.GetStringValue()
		}

		results = append(results, result)
	}

	d.logger.Debug("queried qdrant",
		zap.Int("results", len(results)),
	)

	return results, nil
}

// Count returns the exact number of points in the collection.
func (d *Driver) Count(ctx context.Context) (int, error) {
	exact := true
	countResp, err := d.points.Count(ctx, &qdrantclient.CountPoints{
		CollectionName: d.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}

	return int(countResp.GetResult().GetCount()), nil
}

// Close closes the gRPC connection.
func (d *Driver) Close() error {
	return d.conn.Close()
}

var _ vector.Driver = (*Driver)(nil)
