package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"planty-quiz-service/internal/domain"
)

// CatalogLoader loads plant records stored as JSONB rows in Postgres.
// Rows are ordered by insertion position so deduplication downstream keeps
// the first occurrence, matching the source data order.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.PlantRecord, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM plants ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var plants []domain.PlantRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		var p domain.PlantRecord
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("unmarshal plant: %w", err)
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return plants, nil
}
