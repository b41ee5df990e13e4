package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"planty-quiz-service/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis-backed, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// CatalogRepository loads the deduplicated plant catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) ([]domain.PlantRecord, error)
}

// QuizService contains the quiz use cases: starting sessions, answering,
// advancing and restarting, plus catalog access for the flashcard view.
type QuizService struct {
	sessions SessionRepository
	catalog  CatalogRepository
	newRand  func() *rand.Rand
}

func NewQuizService(store SessionRepository, catalog CatalogRepository) *QuizService {
	return &QuizService{
		sessions: store,
		catalog:  catalog,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// NewQuizServiceWithRand injects the random source factory, letting tests
// pin the shuffle permutation.
func NewQuizServiceWithRand(store SessionRepository, catalog CatalogRepository, newRand func() *rand.Rand) *QuizService {
	return &QuizService{sessions: store, catalog: catalog, newRand: newRand}
}

// StartSession creates and stores a new session for the requested mode.
// A catalog load failure is non-fatal: the session is still created over an
// empty catalog (landing immediately in the finished state) and the error is
// returned alongside it so the caller can surface a warning.
func (s *QuizService) StartSession(ctx context.Context, mode domain.Mode, categories []domain.Category, count domain.QuestionCount) (*Session, error) {
	switch mode {
	case domain.ModeIdentify, domain.ModeRecommend, domain.ModeAvoid:
	default:
		return nil, domain.ErrUnknownMode
	}

	catalog, loadErr := s.catalog.GetCatalog(ctx)
	if loadErr != nil {
		catalog = nil
		loadErr = domain.ErrCatalogUnavailable
	}

	session := NewSession(uuid.NewString(), catalog, mode, categories, count, s.newRand())
	s.sessions.Put(session)
	return session, loadErr
}

// Question returns the current question view for a stored session.
func (s *QuizService) Question(_ context.Context, sessionID string) (domain.QuestionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.QuestionView{}, domain.ErrSessionNotFound
	}
	return session.Question()
}

// Answer records the player's selection for the session's current question.
func (s *QuizService) Answer(_ context.Context, sessionID, optionID string) (domain.Feedback, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Feedback{}, domain.ErrSessionNotFound
	}
	return session.Answer(optionID)
}

// Advance moves the session to its next question or to the final summary.
func (s *QuizService) Advance(_ context.Context, sessionID string) (*domain.QuestionView, *domain.Summary, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	return session.Advance()
}

// Summary returns the final result of a finished session.
func (s *QuizService) Summary(_ context.Context, sessionID string) (domain.Summary, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Summary{}, domain.ErrSessionNotFound
	}
	return session.Summary()
}

// Restart discards a finished session. Sessions are never reused; the next
// quiz starts fresh via StartSession.
func (s *QuizService) Restart(_ context.Context, sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if err := session.Restart(); err != nil {
		return err
	}
	s.sessions.Delete(sessionID)
	return nil
}

// Abandon discards a session regardless of its state. Used when a client
// goes away mid-quiz or starts a fresh quiz over the same connection, where
// the restart transition does not apply.
func (s *QuizService) Abandon(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// Catalog exposes the deduplicated catalog for the flashcard view.
func (s *QuizService) Catalog(ctx context.Context) ([]domain.PlantRecord, error) {
	return s.catalog.GetCatalog(ctx)
}
