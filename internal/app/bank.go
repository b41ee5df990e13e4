package app

import "planty-quiz-service/internal/domain"

// BuildQuestionList expands the catalog into a flat list of question specs
// for the given mode. Ordering follows catalog order then category order;
// shuffling happens later, once per session.
//
// For identify mode every plant yields exactly one spec. For recommend mode
// each plant yields one spec per selected care category; an empty or invalid
// category selection falls back to all of soil, light and water. Avoid mode
// always asks about the donts field and ignores the category selection.
// Plant/category combinations whose answer text normalizes to the empty
// string are skipped: an empty canonical answer must never become an option.
func BuildQuestionList(catalog []domain.PlantRecord, mode domain.Mode, categories []domain.Category) []domain.QuestionSpec {
	var list []domain.QuestionSpec
	switch mode {
	case domain.ModeIdentify:
		for _, p := range catalog {
			list = append(list, domain.QuestionSpec{Plant: p, Kind: domain.ModeIdentify})
		}
	case domain.ModeRecommend:
		cats := sanitizeCategories(categories)
		for _, p := range catalog {
			for _, c := range cats {
				if NormalizeAnswer(p.CareText(c)) == "" {
					continue
				}
				list = append(list, domain.QuestionSpec{Plant: p, Kind: domain.ModeRecommend, Category: c})
			}
		}
	case domain.ModeAvoid:
		for _, p := range catalog {
			if NormalizeAnswer(p.FirstDontLine()) == "" {
				continue
			}
			list = append(list, domain.QuestionSpec{Plant: p, Kind: domain.ModeAvoid, Category: domain.CategoryDonts})
		}
	}
	return list
}

// sanitizeCategories keeps valid care categories in the order given,
// dropping duplicates. An empty result falls back to the full set.
func sanitizeCategories(categories []domain.Category) []domain.Category {
	valid := make([]domain.Category, 0, len(domain.CareCategories))
	seen := make(map[domain.Category]struct{}, len(categories))
	for _, c := range categories {
		if !isCareCategory(c) {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return domain.CareCategories
	}
	return valid
}

func isCareCategory(c domain.Category) bool {
	for _, cc := range domain.CareCategories {
		if c == cc {
			return true
		}
	}
	return false
}
