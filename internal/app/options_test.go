package app

import (
	"math/rand"
	"testing"

	"planty-quiz-service/internal/domain"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestIdentifyOptionsContainTargetOnce(t *testing.T) {
	catalog := []domain.PlantRecord{
		{ID: "a", CommonName: "Aloe"},
		{ID: "b", CommonName: "Fern"},
		{ID: "c", CommonName: "Ivy"},
		{ID: "d", CommonName: "Pothos"},
		{ID: "e", CommonName: "Palm"},
	}
	spec := domain.QuestionSpec{Plant: catalog[0], Kind: domain.ModeIdentify}
	options := BuildOptions(spec, catalog, testRand())

	if len(options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(options))
	}
	correct := 0
	seen := make(map[string]bool)
	for _, opt := range options {
		if seen[opt.ID] {
			t.Fatalf("option %s repeated", opt.ID)
		}
		seen[opt.ID] = true
		if opt.Correct {
			correct++
			if opt.ID != "a" {
				t.Fatalf("correct flag on wrong plant %s", opt.ID)
			}
		}
	}
	if correct != 1 {
		t.Fatalf("expected exactly one correct option, got %d", correct)
	}
}

func TestIdentifyOptionsSmallCatalog(t *testing.T) {
	catalog := []domain.PlantRecord{
		{ID: "a", CommonName: "Aloe"},
		{ID: "b", CommonName: "Fern"},
	}
	spec := domain.QuestionSpec{Plant: catalog[0], Kind: domain.ModeIdentify}
	options := BuildOptions(spec, catalog, testRand())
	if len(options) != 2 {
		t.Fatalf("expected 2 options with a single distractor available, got %d", len(options))
	}
}

func TestCareOptionsDedupeByNormalizedText(t *testing.T) {
	catalog := []domain.PlantRecord{
		{ID: "a", CommonName: "Aloe", Water: "Rarely"},
		{ID: "b", CommonName: "Fern", Water: "Keep moist"},
		{ID: "c", CommonName: "Ivy", Water: "keep MOIST."},
		{ID: "d", CommonName: "Pothos", Water: "Weekly"},
		{ID: "e", CommonName: "Palm", Water: "weekly"},
	}
	spec := domain.QuestionSpec{Plant: catalog[0], Kind: domain.ModeRecommend, Category: domain.CategoryWater}
	options := BuildOptions(spec, catalog, testRand())

	// "Keep moist"/"keep MOIST." and "Weekly"/"weekly" collapse, leaving
	// the correct answer plus two distinct distractors.
	if len(options) != 3 {
		t.Fatalf("expected 3 options after normalization dedupe, got %d: %+v", len(options), options)
	}
	seen := make(map[string]bool)
	for _, opt := range options {
		norm := NormalizeAnswer(opt.Text)
		if seen[norm] {
			t.Fatalf("two options share normalized text %q", norm)
		}
		seen[norm] = true
	}
}

func TestCareOptionsExcludeNormalizedEqualToCorrect(t *testing.T) {
	// Plant B's value differs from A's only by punctuation, so A's question
	// must present the correct option alone.
	catalog := []domain.PlantRecord{
		{ID: "a", CommonName: "Aloe", Water: "Weekly"},
		{ID: "b", CommonName: "Fern", Water: "weekly."},
	}
	spec := domain.QuestionSpec{Plant: catalog[0], Kind: domain.ModeRecommend, Category: domain.CategoryWater}
	options := BuildOptions(spec, catalog, testRand())
	if len(options) != 1 {
		t.Fatalf("expected only the correct option, got %d: %+v", len(options), options)
	}
	if !options[0].Correct || options[0].Text != "Weekly" {
		t.Fatalf("unexpected sole option %+v", options[0])
	}
}

func TestAvoidOptionsCompareFirstDontLine(t *testing.T) {
	catalog := []domain.PlantRecord{
		{ID: "a", CommonName: "Aloe", Donts: "Avoid overwatering\nAnd cold"},
		{ID: "b", CommonName: "Fern", Donts: "Avoid dry air\nAnd sun"},
		{ID: "c", CommonName: "Ivy", Donts: "avoid OVERWATERING\nsomething else"},
	}
	spec := domain.QuestionSpec{Plant: catalog[0], Kind: domain.ModeAvoid, Category: domain.CategoryDonts}
	options := BuildOptions(spec, catalog, testRand())

	// Ivy's first line normalizes to the correct answer and is excluded.
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d: %+v", len(options), options)
	}
	for _, opt := range options {
		if opt.Correct && opt.Text != "Avoid overwatering" {
			t.Fatalf("correct option must be the first donts line, got %q", opt.Text)
		}
		if opt.Text == "Avoid dry air\nAnd sun" {
			t.Fatalf("distractor must be the first line only, got %q", opt.Text)
		}
	}
}

func TestCareOptionsSeededOrderIsDeterministic(t *testing.T) {
	catalog := testCatalog()
	spec := domain.QuestionSpec{Plant: catalog[0], Kind: domain.ModeRecommend, Category: domain.CategoryLight}

	first := BuildOptions(spec, catalog, rand.New(rand.NewSource(7)))
	second := BuildOptions(spec, catalog, rand.New(rand.NewSource(7)))
	if len(first) != len(second) {
		t.Fatalf("option counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("option %d differs under identical seed: %+v vs %+v", i, first[i], second[i])
		}
	}
}
