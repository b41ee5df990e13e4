package app

import (
	"strings"

	"planty-quiz-service/internal/domain"
)

// DedupeCatalog collapses a raw plant list to one record per distinct common
// name (case-insensitive, trimmed), keeping the first occurrence in source
// order. For each kept record the image override table is consulted by plant
// ID; unmapped plants keep whatever image was already set. The result is
// deterministic for a given input and override table.
func DedupeCatalog(raw []domain.PlantRecord, imageOverride map[string]string) []domain.PlantRecord {
	seen := make(map[string]struct{}, len(raw))
	catalog := make([]domain.PlantRecord, 0, len(raw))
	for _, p := range raw {
		key := strings.ToLower(strings.TrimSpace(p.CommonName))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if img, ok := imageOverride[p.ID]; ok {
			p.Image = img
		}
		catalog = append(catalog, p)
	}
	return catalog
}
