package app

import (
	"fmt"
	"math/rand"

	"planty-quiz-service/internal/domain"
)

const maxDistractors = 3

// BuildOptions assembles the multiple-choice options for one question: the
// correct answer plus up to three distinct distractors drawn from the rest of
// the catalog, in random order. When too few distinct distractors exist the
// question simply presents fewer options; nothing is fabricated or repeated.
// The caller supplies the random source so option order is seedable in tests.
func BuildOptions(spec domain.QuestionSpec, catalog []domain.PlantRecord, rnd *rand.Rand) []domain.Option {
	if spec.Kind == domain.ModeIdentify {
		return identifyOptions(spec, catalog, rnd)
	}
	return careOptions(spec, catalog, rnd)
}

// identifyOptions offers plant names; correctness is plant identity, not
// text, since two plants could in principle share a display name.
func identifyOptions(spec domain.QuestionSpec, catalog []domain.PlantRecord, rnd *rand.Rand) []domain.Option {
	others := make([]domain.PlantRecord, 0, len(catalog))
	for _, p := range catalog {
		if p.ID != spec.Plant.ID {
			others = append(others, p)
		}
	}
	rnd.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	if len(others) > maxDistractors {
		others = others[:maxDistractors]
	}

	picks := append([]domain.PlantRecord{spec.Plant}, others...)
	rnd.Shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })

	options := make([]domain.Option, 0, len(picks))
	for _, p := range picks {
		options = append(options, domain.Option{
			ID:      p.ID,
			Text:    p.CommonName,
			Latin:   p.LatinName,
			Correct: p.ID == spec.Plant.ID,
		})
	}
	return options
}

// careOptions offers care texts for the question's category. The distractor
// pool is every other plant's value for the same category, deduplicated by
// normalized form and excluding anything normalized-equal to the correct
// answer, so two differently-worded but equivalent texts never both appear.
func careOptions(spec domain.QuestionSpec, catalog []domain.PlantRecord, rnd *rand.Rand) []domain.Option {
	correct := answerText(spec.Plant, spec.Kind, spec.Category)
	correctNorm := NormalizeAnswer(correct)

	seen := map[string]struct{}{correctNorm: {}}
	var pool []string
	for _, p := range catalog {
		if p.ID == spec.Plant.ID {
			continue
		}
		candidate := answerText(p, spec.Kind, spec.Category)
		norm := NormalizeAnswer(candidate)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		pool = append(pool, candidate)
	}

	rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > maxDistractors {
		pool = pool[:maxDistractors]
	}

	texts := append([]string{correct}, pool...)
	rnd.Shuffle(len(texts), func(i, j int) { texts[i], texts[j] = texts[j], texts[i] })

	options := make([]domain.Option, 0, len(texts))
	for i, text := range texts {
		options = append(options, domain.Option{
			ID:      fmt.Sprintf("o%d", i+1),
			Text:    text,
			Correct: NormalizeAnswer(text) == correctNorm,
		})
	}
	return options
}

// answerText extracts the text a care question asks about: the category field
// for recommend questions, the first donts line for avoid questions.
func answerText(p domain.PlantRecord, kind domain.Mode, category domain.Category) string {
	if kind == domain.ModeAvoid {
		return p.FirstDontLine()
	}
	return p.CareText(category)
}
