// Package quiz assembles the bounded random question draw for a quiz session.
package quiz

import (
	"context"
	"errors"
	"math/rand"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

// DefaultCap bounds how many questions one quiz session serves.
const DefaultCap = 6

// ErrNoQuestions means the (subject, grade) pair has zero stored questions.
var ErrNoQuestions = errors.New("no questions for subject and grade")

// QuestionSource lists and fetches questions for a pair.
type QuestionSource interface {
	ListIDs(ctx context.Context, subjectID, gradeID int) ([]int64, error)
	ByIDs(ctx context.Context, ids []int64) ([]models.Question, error)
}

// DrawStore persists one draw per (user, subject) so page windows stay
// stable across paginated requests within a quiz session.
type DrawStore interface {
	Get(ctx context.Context, userID, subjectID int) ([]int64, error)
	Replace(ctx context.Context, userID, subjectID int, order []int64) error
}

// ErrNoDraw must be returned by DrawStore.Get when no draw is stored.
var ErrNoDraw = errors.New("no stored draw")

type Sampler struct {
	questions QuestionSource
	draws     DrawStore
	cap       int
}

func NewSampler(questions QuestionSource, draws DrawStore) *Sampler {
	return &Sampler{questions: questions, draws: draws, cap: DefaultCap}
}

// Draw returns the questions for the user's current quiz session on a
// subject. With fresh true (or when nothing is stored yet) a new randomized
// selection of up to cap questions is drawn, persisted and returned;
// otherwise the stored draw is reused unchanged.
func (s *Sampler) Draw(ctx context.Context, userID, subjectID, gradeID int, fresh bool) ([]models.Question, error) {
	if !fresh {
		order, err := s.draws.Get(ctx, userID, subjectID)
		switch {
		case err == nil:
			return s.questions.ByIDs(ctx, order)
		case !errors.Is(err, ErrNoDraw):
			return nil, err
		}
		// No stored draw yet; fall through and create one.
	}

	ids, err := s.questions.ListIDs(ctx, subjectID, gradeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoQuestions
	}

	order := make([]int64, len(ids))
	copy(order, ids)
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	if len(order) > s.cap {
		order = order[:s.cap]
	}

	if err := s.draws.Replace(ctx, userID, subjectID, order); err != nil {
		return nil, err
	}
	return s.questions.ByIDs(ctx, order)
}

// Window applies an offset/limit page over a draw. limit <= 0 means the
// rest of the draw.
func Window(questions []models.Question, offset, limit int) []models.Question {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(questions) {
		return nil
	}
	end := len(questions)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return questions[offset:end]
}
