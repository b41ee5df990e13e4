package app

import "planty-quiz-service/internal/domain"

// Percent converts a tally into a whole-number percentage. total must be
// positive; the session guarantees it never finishes a non-empty quiz with
// total zero.
func Percent(score, total int) int {
	return 100 * score / total
}

// Rate maps a final tally onto a rating band. Thresholds are inclusive:
// 80% is excellent, 50% is good.
func Rate(score, total int) domain.Rating {
	percent := Percent(score, total)
	switch {
	case percent >= 80:
		return domain.RatingExcellent
	case percent >= 50:
		return domain.RatingGood
	default:
		return domain.RatingNeedsImprovement
	}
}
