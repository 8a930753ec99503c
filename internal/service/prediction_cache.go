package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"fanlens/internal/domain"
)

// PredictionCache guarda predicciones por par (subject, target). Un miss no
// es un error: Get devuelve (nil, nil) y el caller recomputa.
type PredictionCache interface {
	Get(ctx context.Context, subjectID, targetID string) (*domain.EngagementPrediction, error)
	Put(ctx context.Context, pred domain.EngagementPrediction) error
	Invalidate(ctx context.Context, subjectID, targetID string) error
}

type memoryPredictionCache struct {
	mu    sync.Mutex
	items map[string]domain.EngagementPrediction
}

// NewMemoryPredictionCache crea el cache en memoria (fallback sin redis y
// default de tests).
func NewMemoryPredictionCache() PredictionCache {
	return &memoryPredictionCache{
		items: make(map[string]domain.EngagementPrediction),
	}
}

func cacheKey(subjectID, targetID string) string {
	return subjectID + ":" + targetID
}

func (c *memoryPredictionCache) Get(_ context.Context, subjectID, targetID string) (*domain.EngagementPrediction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pred, ok := c.items[cacheKey(subjectID, targetID)]
	if !ok {
		return nil, nil
	}
	return &pred, nil
}

func (c *memoryPredictionCache) Put(_ context.Context, pred domain.EngagementPrediction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey(pred.SubjectID, pred.TargetID)] = pred
	return nil
}

func (c *memoryPredictionCache) Invalidate(_ context.Context, subjectID, targetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, cacheKey(subjectID, targetID))
	return nil
}

type redisPredictionCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisPredictionCache crea el cache respaldado en redis. ttl acota la
// vida fisica de la entrada; la politica de frescura la decide el servicio.
func NewRedisPredictionCache(client *redis.Client, ttl time.Duration) PredictionCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &redisPredictionCache{
		client: client,
		prefix: "predict:",
		ttl:    ttl,
	}
}

func (c *redisPredictionCache) Get(ctx context.Context, subjectID, targetID string) (*domain.EngagementPrediction, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+cacheKey(subjectID, targetID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pred domain.EngagementPrediction
	if err := json.Unmarshal(raw, &pred); err != nil {
		// Entrada corrupta: se trata como miss.
		return nil, nil
	}
	return &pred, nil
}

func (c *redisPredictionCache) Put(ctx context.Context, pred domain.EngagementPrediction) error {
	raw, err := json.Marshal(pred)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+cacheKey(pred.SubjectID, pred.TargetID), raw, c.ttl).Err()
}

func (c *redisPredictionCache) Invalidate(ctx context.Context, subjectID, targetID string) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.prefix+cacheKey(subjectID, targetID)).Err()
}
