package memory

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"planty-quiz-service/internal/app"
	"planty-quiz-service/internal/domain"
)

// CatalogLoader fetches the raw plant list from a backing store
// (file, Postgres, etc). Deduplication happens in the repository.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.PlantRecord, error)
}

// CatalogRepository caches the deduplicated catalog with TTL to avoid
// repeated loads on every session start.
type CatalogRepository struct {
	loader    CatalogLoader
	overrides map[string]string
	ttl       time.Duration
	clock     func() time.Time
	sf        singleflight.Group
	rnd       *rand.Rand

	mu        sync.RWMutex
	cached    []domain.PlantRecord
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, overrides map[string]string, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader:    loader,
		overrides: overrides,
		ttl:       ttl,
		clock:     time.Now,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]domain.PlantRecord, error) {
	now := r.clock()

	r.mu.RLock()
	if r.cached != nil && r.expiresAt.After(now) {
		catalog := r.cached
		r.mu.RUnlock()
		return catalog, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("catalog", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached != nil && r.expiresAt.After(now) {
			catalog := r.cached
			r.mu.RUnlock()
			return catalog, nil
		}
		r.mu.RUnlock()

		raw, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		catalog := app.DedupeCatalog(raw, r.overrides)

		r.mu.Lock()
		r.cached = catalog
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.PlantRecord), nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCatalogLoader serves a fixed plant list (useful for tests/demos).
type StaticCatalogLoader struct {
	plants []domain.PlantRecord
}

func NewStaticCatalogLoader(plants []domain.PlantRecord) *StaticCatalogLoader {
	return &StaticCatalogLoader{plants: plants}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) ([]domain.PlantRecord, error) {
	return l.plants, nil
}

// FileCatalogLoader reads a JSON array of plant records from disk.
type FileCatalogLoader struct {
	path string
}

func NewFileCatalogLoader(path string) *FileCatalogLoader {
	return &FileCatalogLoader{path: path}
}

func (l *FileCatalogLoader) LoadCatalog(_ context.Context) ([]domain.PlantRecord, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	var plants []domain.PlantRecord
	if err := json.Unmarshal(data, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}
