package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

type QuestionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// ListIDs returns every question id for a (subject, grade) pair.
func (r *QuestionRepo) ListIDs(ctx context.Context, subjectID, gradeID int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("id_areas = ? AND id_grado = ?", subjectID, gradeID).
		Pluck("id", &ids).Error
	return ids, err
}

// ByIDs fetches questions preserving the order of the given ids, which
// carries the randomized draw order.
func (r *QuestionRepo) ByIDs(ctx context.Context, ids []int64) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []models.Question
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Question, len(questions))
	for _, q := range questions {
		byID[int64(q.ID)] = q
	}
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}
