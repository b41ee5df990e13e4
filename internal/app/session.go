package app

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"planty-quiz-service/internal/domain"
)

// State is a quiz session lifecycle state.
type State string

const (
	// StateSetup means the session has been reset and holds no questions.
	StateSetup State = "setup"
	// StateActive means a question is presented and awaiting an answer.
	StateActive State = "active"
	// StateAnswered means the current question is resolved and the session
	// waits for an advance.
	StateAnswered State = "answered"
	// StateFinished is terminal: the final score and rating are available.
	StateFinished State = "finished"
)

// Session is one run of the quiz from setup to final score. The question
// list is immutable once built; index and score only grow. All randomness
// flows through the injected rand source so tests can fix the permutation.
type Session struct {
	id      string
	catalog []domain.PlantRecord

	mu        sync.Mutex
	state     State
	questions []domain.QuestionSpec
	index     int
	score     int
	options   []domain.Option
	rnd       *rand.Rand
}

// NewSession builds the question list for the requested mode, resolves the
// requested count, shuffles once (uniform Fisher-Yates permutation) and
// truncates. A session with zero questions lands directly in StateFinished
// with a 0 of 0 result.
func NewSession(id string, catalog []domain.PlantRecord, mode domain.Mode, categories []domain.Category, count domain.QuestionCount, rnd *rand.Rand) *Session {
	questions := BuildQuestionList(catalog, mode, categories)
	n := resolveCount(count, len(questions), len(catalog))

	rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > n {
		questions = questions[:n]
	}

	s := &Session{
		id:        id,
		catalog:   catalog,
		questions: questions,
		rnd:       rnd,
	}
	if len(questions) == 0 {
		s.state = StateFinished
		return s
	}
	s.state = StateActive
	s.options = BuildOptions(questions[0], catalog, rnd)
	return s
}

// resolveCount turns a requested count into a concrete question total.
// CountAllQuestions uses the whole built list, CountAllPlants the catalog
// size (meaningful for identify mode, one question per plant). A literal
// count below one falls back to the full list; larger counts are clamped by
// truncation.
func resolveCount(count domain.QuestionCount, built, catalogSize int) int {
	switch count {
	case domain.CountAllQuestions:
		return built
	case domain.CountAllPlants:
		return catalogSize
	}
	if int(count) < 1 {
		return built
	}
	return int(count)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Question returns the view of the current question. Valid while a question
// is presented or answered.
func (s *Session) Question() (domain.QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive && s.state != StateAnswered {
		return domain.QuestionView{}, domain.ErrInvalidTransition
	}
	return s.viewLocked(), nil
}

// Answer resolves the current question against the selected option and moves
// the session to StateAnswered. Identify questions compare plant identity;
// recommend and avoid questions compare normalized answer text. The feedback
// lists every option slot whose text is equivalent to the correct answer so
// the rendering layer can highlight ties as well as the authoritative slot.
func (s *Session) Answer(optionID string) (domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return domain.Feedback{}, domain.ErrInvalidTransition
	}

	selected, ok := s.findOptionLocked(optionID)
	if !ok {
		return domain.Feedback{}, domain.ErrOptionNotFound
	}

	spec := s.questions[s.index]
	var correct bool
	if spec.Kind == domain.ModeIdentify {
		correct = selected.ID == spec.Plant.ID
	} else {
		correctNorm := NormalizeAnswer(answerText(spec.Plant, spec.Kind, spec.Category))
		correct = NormalizeAnswer(selected.Text) == correctNorm
	}
	if correct {
		s.score++
	}
	s.state = StateAnswered

	var highlight []string
	for _, opt := range s.options {
		if opt.Correct {
			highlight = append(highlight, opt.ID)
		}
	}
	return domain.Feedback{
		Correct:          correct,
		CorrectOptionIDs: highlight,
		Score:            s.score,
		Answered:         s.index + 1,
	}, nil
}

// Advance moves past an answered question. It returns the next question
// view, or the final summary once the list is exhausted.
func (s *Session) Advance() (*domain.QuestionView, *domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnswered {
		return nil, nil, domain.ErrInvalidTransition
	}

	s.index++
	if s.index < len(s.questions) {
		s.options = BuildOptions(s.questions[s.index], s.catalog, s.rnd)
		s.state = StateActive
		view := s.viewLocked()
		return &view, nil, nil
	}

	s.state = StateFinished
	summary := s.summaryLocked()
	return nil, &summary, nil
}

// Summary returns the final result. Valid only once finished.
func (s *Session) Summary() (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFinished {
		return domain.Summary{}, domain.ErrInvalidTransition
	}
	return s.summaryLocked(), nil
}

// Restart transitions a finished session back to setup. The caller is
// expected to discard the session afterwards; it is never reused.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFinished {
		return domain.ErrInvalidTransition
	}
	s.state = StateSetup
	s.questions = nil
	s.options = nil
	return nil
}

func (s *Session) findOptionLocked(optionID string) (domain.Option, bool) {
	for _, opt := range s.options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return domain.Option{}, false
}

func (s *Session) viewLocked() domain.QuestionView {
	spec := s.questions[s.index]
	view := domain.QuestionView{
		Index:   s.index,
		Total:   len(s.questions),
		Kind:    spec.Kind,
		Image:   spec.Plant.Image,
		Options: append([]domain.Option(nil), s.options...),
	}
	switch spec.Kind {
	case domain.ModeIdentify:
		// Only the image is shown; revealing the name would answer the question.
		view.Prompt = "Identify this plant:"
	case domain.ModeRecommend:
		view.Category = spec.Category
		view.PlantName = spec.Plant.CommonName
		view.LatinName = spec.Plant.LatinName
		view.Prompt = fmt.Sprintf("What is the recommended %s for %s?",
			strings.ToUpper(string(spec.Category)), spec.Plant.CommonName)
	case domain.ModeAvoid:
		view.Category = spec.Category
		view.PlantName = spec.Plant.CommonName
		view.LatinName = spec.Plant.LatinName
		view.Prompt = fmt.Sprintf("What should you AVOID for %s?", spec.Plant.CommonName)
	}
	return view
}

func (s *Session) summaryLocked() domain.Summary {
	summary := domain.Summary{Score: s.score, Total: len(s.questions)}
	if summary.Total > 0 {
		summary.Rating = Rate(summary.Score, summary.Total)
	}
	return summary
}
