package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// EmbeddingCache stores vectors keyed by provider name and input text.
type EmbeddingCache interface {
	// Lookup returns the cached vectors it found, keyed by index into texts.
	Lookup(ctx context.Context, model string, texts []string) (map[int][]float32, error)
	Store(ctx context.Context, model string, texts []string, vectors [][]float32) error
}

type QdrantService interface {
	EmbeddingCache
	InitCollection(ctx context.Context) error
	Close() error
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize int) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
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

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists", q.collectionName)
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

	log.Printf("✅ Qdrant collection '%s' created successfully", q.collectionName)
	return nil
}

// Lookup implements EmbeddingCache.
func (q *qdrantService) Lookup(ctx context.Context, model string, texts []string) (map[int][]float32, error) {
	if len(texts) == 0 {
		return map[int][]float32{}, nil
	}

	ids := make([]*qdrant.PointId, 0, len(texts))
	indexByID := make(map[string][]int, len(texts))
	for i, text := range texts {
		id := cachePointID(model, text)
		if _, seen := indexByID[id]; !seen {
			ids = append(ids, qdrant.NewID(id))
		}
		indexByID[id] = append(indexByID[id], i)
	}

	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            ids,
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cached embeddings: %w", err)
	}

	hits := make(map[int][]float32, len(points))
	for _, point := range points {
		if payloadString(point.GetPayload(), "model") != model {
			continue
		}

		vector := pointVector(point)
		if uint64(len(vector)) != q.vectorSize {
			continue
		}

		for _, i := range indexByID[point.GetId().GetUuid()] {
			hits[i] = vector
		}
	}

	return hits, nil
}

// Store implements EmbeddingCache. Only a digest of each text is kept in the
// payload.
func (q *qdrantService) Store(ctx context.Context, model string, texts []string, vectors [][]float32) error {
	if len(texts) != len(vectors) {
		return fmt.Errorf("cannot store %d vectors for %d texts", len(vectors), len(texts))
	}

	points := make([]*qdrant.PointStruct, 0, len(texts))
	for i, text := range texts {
		if uint64(len(vectors[i])) != q.vectorSize {
			continue
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(cachePointID(model, text)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"model":       model,
				"text_sha256": textDigest(text),
			}),
		})
	}
	if len(points) == 0 {
		return nil
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert embeddings: %w", err)
	}

	return nil
}

func (q *qdrantService) Close() error {
	return q.client.Close()
}

// cachePointID derives a stable UUID so the same model and text always hit the
// same point.
func cachePointID(model, text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(model+"\x00"+text)).String()
}

func textDigest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	value, ok := payload[key]
	if !ok {
		return ""
	}
	if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
		return val.StringValue
	}
	return ""
}

func pointVector(point *qdrant.RetrievedPoint) []float32 {
	vector := point.GetVectors().GetVector()
	if vector == nil {
		return nil
	}
	if dense := vector.GetDense(); dense != nil {
		return dense.GetData()
	}
	return vector.GetData()
}
