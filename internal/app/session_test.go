package app

import (
	"errors"
	"math/rand"
	"testing"

	"planty-quiz-service/internal/domain"
)

func fivePlants() []domain.PlantRecord {
	return []domain.PlantRecord{
		{ID: "a", CommonName: "Aloe", Water: "Rarely"},
		{ID: "b", CommonName: "Fern", Water: "Keep moist"},
		{ID: "c", CommonName: "Ivy", Water: "Weekly"},
		{ID: "d", CommonName: "Pothos", Water: "When dry"},
		{ID: "e", CommonName: "Palm", Water: "Twice a week"},
	}
}

func correctOption(t *testing.T, view domain.QuestionView) domain.Option {
	t.Helper()
	for _, opt := range view.Options {
		if opt.Correct {
			return opt
		}
	}
	t.Fatalf("no correct option in %+v", view.Options)
	return domain.Option{}
}

func TestSessionIdentifyEndToEnd(t *testing.T) {
	session := NewSession("s1", fivePlants(), domain.ModeIdentify, nil, 3, rand.New(rand.NewSource(42)))
	if session.State() != StateActive {
		t.Fatalf("expected active session, got %s", session.State())
	}

	seenPlants := make(map[string]bool)
	for i := 0; i < 3; i++ {
		view, err := session.Question()
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if view.Total != 3 {
			t.Fatalf("expected 3 questions, got %d", view.Total)
		}
		if view.PlantName != "" {
			t.Fatalf("identify question must not reveal the plant name")
		}

		opt := correctOption(t, view)
		if seenPlants[opt.ID] {
			t.Fatalf("plant %s asked twice", opt.ID)
		}
		seenPlants[opt.ID] = true

		feedback, err := session.Answer(opt.ID)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if !feedback.Correct {
			t.Fatalf("expected correct answer on question %d", i)
		}

		next, summary, err := session.Advance()
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if i < 2 && next == nil {
			t.Fatalf("expected next question after %d", i)
		}
		if i == 2 {
			if summary == nil {
				t.Fatalf("expected summary after last question")
			}
			if summary.Score != 3 || summary.Total != 3 {
				t.Fatalf("expected 3/3, got %d/%d", summary.Score, summary.Total)
			}
			if summary.Rating != domain.RatingExcellent {
				t.Fatalf("expected excellent rating, got %q", summary.Rating)
			}
		}
	}
}

func TestSessionCountExceedingAvailabilityUsesAll(t *testing.T) {
	session := NewSession("s1", fivePlants(), domain.ModeIdentify, nil, 50, rand.New(rand.NewSource(3)))
	view, err := session.Question()
	if err != nil {
		t.Fatalf("question: %v", err)
	}
	if view.Total != 5 {
		t.Fatalf("expected all 5 available questions, got %d", view.Total)
	}
}

func TestSessionCountSentinels(t *testing.T) {
	catalog := fivePlants()
	all := NewSession("s1", catalog, domain.ModeRecommend, []domain.Category{domain.CategoryWater}, domain.CountAllQuestions, rand.New(rand.NewSource(1)))
	if view, _ := all.Question(); view.Total != 5 {
		t.Fatalf("CountAllQuestions: expected 5, got %d", view.Total)
	}

	byPlants := NewSession("s2", catalog, domain.ModeIdentify, nil, domain.CountAllPlants, rand.New(rand.NewSource(1)))
	if view, _ := byPlants.Question(); view.Total != len(catalog) {
		t.Fatalf("CountAllPlants: expected %d, got %d", len(catalog), view.Total)
	}
}

func TestSessionEmptyCatalogFinishesImmediately(t *testing.T) {
	session := NewSession("s1", nil, domain.ModeIdentify, nil, 5, rand.New(rand.NewSource(1)))
	if session.State() != StateFinished {
		t.Fatalf("expected finished state, got %s", session.State())
	}
	summary, err := session.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Score != 0 || summary.Total != 0 {
		t.Fatalf("expected 0/0, got %d/%d", summary.Score, summary.Total)
	}
	if summary.Rating != "" {
		t.Fatalf("no rating should be computed for an empty quiz, got %q", summary.Rating)
	}
}

func TestSessionTransitionGuards(t *testing.T) {
	session := NewSession("s1", fivePlants(), domain.ModeIdentify, nil, 1, rand.New(rand.NewSource(9)))

	// advance before answering
	if _, _, err := session.Advance(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	// restart before finishing
	if err := session.Restart(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	view, _ := session.Question()
	if _, err := session.Answer("no-such-option"); !errors.Is(err, domain.ErrOptionNotFound) {
		t.Fatalf("expected option not found, got %v", err)
	}
	if _, err := session.Answer(correctOption(t, view).ID); err != nil {
		t.Fatalf("answer: %v", err)
	}
	// double answer
	if _, err := session.Answer(correctOption(t, view).ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on second answer, got %v", err)
	}

	if _, summary, err := session.Advance(); err != nil || summary == nil {
		t.Fatalf("expected summary, got %v %v", summary, err)
	}
	if err := session.Restart(); err != nil {
		t.Fatalf("restart after finish: %v", err)
	}
	if session.State() != StateSetup {
		t.Fatalf("expected setup after restart, got %s", session.State())
	}
}

func TestSessionWrongAnswerDoesNotScore(t *testing.T) {
	session := NewSession("s1", fivePlants(), domain.ModeIdentify, nil, 1, rand.New(rand.NewSource(5)))
	view, _ := session.Question()

	var wrong domain.Option
	for _, opt := range view.Options {
		if !opt.Correct {
			wrong = opt
			break
		}
	}
	feedback, err := session.Answer(wrong.ID)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if feedback.Correct {
		t.Fatalf("wrong option reported as correct")
	}
	if feedback.Score != 0 {
		t.Fatalf("expected score 0, got %d", feedback.Score)
	}
	if len(feedback.CorrectOptionIDs) != 1 || feedback.CorrectOptionIDs[0] == wrong.ID {
		t.Fatalf("feedback must highlight the correct slot, got %v", feedback.CorrectOptionIDs)
	}
}

func TestSessionShuffleIsSeedable(t *testing.T) {
	catalog := fivePlants()
	order := func(seed int64) []string {
		session := NewSession("s", catalog, domain.ModeIdentify, nil, domain.CountAllQuestions, rand.New(rand.NewSource(seed)))
		var ids []string
		for {
			view, err := session.Question()
			if err != nil {
				break
			}
			opt := correctOption(t, view)
			ids = append(ids, opt.ID)
			if _, err := session.Answer(opt.ID); err != nil {
				t.Fatalf("answer: %v", err)
			}
			if _, summary, _ := session.Advance(); summary != nil {
				break
			}
		}
		return ids
	}

	a, b := order(11), order(11)
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identical seed produced different orders: %v vs %v", a, b)
		}
	}
}
