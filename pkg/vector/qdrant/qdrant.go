// Package qdrant provides a Qdrant-backed vector store driver over gRPC.
//
// The driver preserves the same result shape and filter semantics as the
// local backend. Qdrant point IDs must be UUIDs, so record IDs are mapped to
// deterministic v5 UUIDs and the original ID is kept in the payload.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/coachlens/coachlens/pkg/vector"
)

// Backend is the stats identifier for this store.
const Backend = "qdrant"

const (
	// DefaultCollectionName is the default collection for insight embeddings.
	DefaultCollectionName = "coachlens-insights"

	// DefaultBatchSize is the number of points sent per upsert call.
	DefaultBatchSize = 100

	// Payload byte/length limits inherited from managed-index metadata
	// caps. Truncation is lossy and intentional, never an error.
	DefaultTextLimit    = 500
	DefaultSummaryLimit = 1000
	DefaultMindsetLimit = 300
)

// Config holds configuration for the Qdrant driver.
type Config struct {
	// Addr is the Qdrant gRPC address (e.g. "localhost:6334").
	Addr string

	// Collection is the collection name. Defaults to DefaultCollectionName.
	Collection string

	// Dimension is the embedding dimension, fixed at collection creation.
	Dimension int

	// BatchSize is the upsert batch size. Defaults to DefaultBatchSize.
	BatchSize int

	// TextLimit caps goal and blocker payload fields, MindsetLimit the
	// mindset pattern, SummaryLimit the searchable text. Zero values take
	// the defaults.
	TextLimit    int
	MindsetLimit int
	SummaryLimit int
}

// Store implements vector.Store against a Qdrant collection.
type Store struct {
	points      pb.PointsClient
	collections pb.CollectionsClient
	conn        *grpc.ClientConn
	cfg         Config
	logger      *zap.Logger
}

// New dials Qdrant and ensures the collection exists with the configured
// dimension and cosine distance. Creation is idempotent: an existing
// collection is reused.
func New(c Config, logger *zap.Logger) (*Store, error) {
	if c.Addr == "" {
		return nil, fmt.Errorf("qdrant address is required")
	}
	if c.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", c.Dimension)
	}
	if c.Collection == "" {
		c.Collection = DefaultCollectionName
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.TextLimit <= 0 {
		c.TextLimit = DefaultTextLimit
	}
	if c.MindsetLimit <= 0 {
		c.MindsetLimit = DefaultMindsetLimit
	}
	if c.SummaryLimit <= 0 {
		c.SummaryLimit = DefaultSummaryLimit
	}

	conn, err := grpc.NewClient(c.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("%w: dialing qdrant at %s: %v", vector.ErrConnection, c.Addr, err)
	}

	s := &Store{
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		conn:        conn,
		cfg:         c,
		logger:      logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.ensureCollection(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info("connected to qdrant",
		zap.String("addr", c.Addr),
		zap.String("collection", c.Collection),
		zap.Int("dimension", c.Dimension),
	)

	return s, nil
}

// ensureCollection creates the collection if it does not already exist.
func (s *Store) ensureCollection(ctx context.Context) error {
	list, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("%w: listing collections: %v", vector.ErrConnection, err)
	}
	for _, col := range list.GetCollections() {
		if col.GetName() == s.cfg.Collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.cfg.Collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(s.cfg.Dimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: creating collection %s: %v", vector.ErrConnection, s.cfg.Collection, err)
	}

	s.logger.Info("created qdrant collection", zap.String("collection", s.cfg.Collection))
	return nil
}

// pointID maps a record ID to a deterministic UUID accepted by Qdrant.
func pointID(id string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)).String()
}

// Upsert sends records in fixed-size batches. Long text payload fields are
// truncated to the configured limits before transmission.
func (s *Store) Upsert(ctx context.Context, records []vector.Record) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(records))
	for _, rec := range records {
		points = append(points, &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: pointID(rec.ID)},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: rec.Embedding},
				},
			},
			Payload: s.payload(rec),
		})
	}

	for start := 0; start < len(points); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(points))
		_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
			CollectionName: s.cfg.Collection,
			Points:         points[start:end],
		})
		if err != nil {
			return fmt.Errorf("%w: upserting batch %d-%d: %v", vector.ErrConnection, start, end, err)
		}
	}

	s.logger.Info("stored embeddings in qdrant",
		zap.Int("count", len(points)),
		zap.Int("batch_size", s.cfg.BatchSize),
	)

	return nil
}

// Search translates the filter to Qdrant conditions and queries the
// collection. An absent filter yields an unfiltered query.
func (s *Store) Search(ctx context.Context, embedding []float32, topK int, filter vector.Filter) ([]vector.Result, error) {
	if topK <= 0 {
		return []vector.Result{}, nil
	}

	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.cfg.Collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		Filter:         translateFilter(filter),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: searching collection %s: %v", vector.ErrConnection, s.cfg.Collection, err)
	}

	results := make([]vector.Result, 0, len(resp.GetResult()))
	for _, match := range resp.GetResult() {
		results = append(results, resultFromPayload(match))
	}

	return results, nil
}

// Delete removes a record by ID. Deleting an absent ID succeeds with no
// effect; Qdrant treats missing points as a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: s.cfg.Collection,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: []*pb.PointId{
						{PointIdOptions: &pb.PointId_Uuid{Uuid: pointID(id)}},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: deleting %s: %v", vector.ErrConnection, id, err)
	}

	s.logger.Info("deleted embedding from qdrant", zap.String("id", id))
	return nil
}

// Stats reports the backend name, point count, and configured dimension.
func (s *Store) Stats(ctx context.Context) (vector.Stats, error) {
	stats := vector.Stats{Backend: Backend, Dimension: s.cfg.Dimension}

	info, err := s.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: s.cfg.Collection,
	})
	if err != nil {
		return stats, fmt.Errorf("%w: describing collection %s: %v", vector.ErrConnection, s.cfg.Collection, err)
	}

	stats.TotalVectors = int(info.GetResult().GetPointsCount())
	return stats, nil
}

// Close tears down the gRPC connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

var _ vector.Store = (*Store)(nil)
