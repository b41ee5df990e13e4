package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"planty-quiz-service/internal/app"
	"planty-quiz-service/internal/domain"
)

const catalogKey = "planty:catalog"

// CatalogLoader fetches the raw plant list from a backing store (e.g. Postgres).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.PlantRecord, error)
}

// CatalogRepository caches the deduplicated catalog in Redis as a JSON blob
// and falls back to the loader on cache miss.
type CatalogRepository struct {
	client    *redis.Client
	loader    CatalogLoader
	overrides map[string]string
	ttl       time.Duration
	sf        singleflight.Group
	rnd       *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, overrides map[string]string, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client:    client,
		loader:    loader,
		overrides: overrides,
		ttl:       ttl,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]domain.PlantRecord, error) {
	if catalog, ok := r.fromCache(ctx); ok {
		return catalog, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if catalog, ok := r.fromCache(ctx); ok {
			return catalog, nil
		}

		raw, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		catalog := app.DedupeCatalog(raw, r.overrides)

		if data, err := json.Marshal(catalog); err == nil {
			// best-effort cache fill
			_ = r.client.Set(ctx, catalogKey, data, r.ttlWithJitter()).Err()
		}
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.PlantRecord), nil
}

func (r *CatalogRepository) fromCache(ctx context.Context) ([]domain.PlantRecord, bool) {
	data, err := r.client.Get(ctx, catalogKey).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var catalog []domain.PlantRecord
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, false
	}
	return catalog, true
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
