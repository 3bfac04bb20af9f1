package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
)

// PortfolioIndex stores embedded chunks of imported portfolios so they can
// be searched by meaning later.
type PortfolioIndex interface {
	InitCollection(ctx context.Context) error
	IndexDocument(ctx context.Context, docID, filename string, chunks []string) error
	Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error)
}

type qdrantIndex struct {
	client         *qdrant.Client
	embedder       Embedder
	pool           WorkerPool
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

func NewQdrantIndex(urlStr, apiKey, collectionName string, embedder Embedder, pool WorkerPool, log *zap.Logger) (PortfolioIndex, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		embedder:       embedder,
		pool:           pool,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
		log:            log,
	}, nil
}

// InitCollection implements PortfolioIndex.
func (q *qdrantIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// IndexDocument implements PortfolioIndex.
func (q *qdrantIndex) IndexDocument(ctx context.Context, docID, filename string, chunks []string) error {
	points := make([]*qdrant.PointStruct, 0, len(chunks))

	for i, chunk := range chunks {
		embedding, err := q.embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i+1, err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"document_id": docID,
				"filename":    filename,
				"chunk_index": i,
				"text":        chunk,
			}),
		})
	}

	if len(points) == 0 {
		return nil
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// Search implements PortfolioIndex.
func (q *qdrantIndex) Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	embedding, err := q.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]models.SearchMatch, 0, len(points))
	for _, point := range points {
		payload := point.GetPayload()
		matches = append(matches, models.SearchMatch{
			DocumentID: payload["document_id"].GetStringValue(),
			Filename:   payload["filename"].GetStringValue(),
			ChunkIndex: int(payload["chunk_index"].GetIntegerValue()),
			Score:      point.GetScore(),
			Text:       payload["text"].GetStringValue(),
		})
	}

	return matches, nil
}

func (q *qdrantIndex) embed(ctx context.Context, text string) ([]float32, error) {
	var embedding []float32
	err := q.pool.Do(ctx, func(ctx context.Context) error {
		var err error
		embedding, err = q.embedder.Embed(ctx, text)
		return err
	})
	return embedding, err
}
