package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/quiz"
)

type DrawRepo struct {
	db *gorm.DB
}

func NewDrawRepo(db *gorm.DB) *DrawRepo {
	return &DrawRepo{db: db}
}

// Get returns the stored question order for (user, subject).
func (r *DrawRepo) Get(ctx context.Context, userID, subjectID int) ([]int64, error) {
	var draw models.QuizDraw
	err := r.db.WithContext(ctx).
		Where("id_usuario = ? AND id_areas = ?", userID, subjectID).
		First(&draw).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, quiz.ErrNoDraw
	}
	if err != nil {
		return nil, err
	}
	return []int64(draw.QuestionOrder), nil
}

// Replace stores a fresh draw, discarding any previous one for the pair.
func (r *DrawRepo) Replace(ctx context.Context, userID, subjectID int, order []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id_usuario = ? AND id_areas = ?", userID, subjectID).
			Delete(&models.QuizDraw{}).Error
		if err != nil {
			return err
		}
		return tx.Create(&models.QuizDraw{
			UserID:        userID,
			SubjectID:     subjectID,
			QuestionOrder: pq.Int64Array(order),
		}).Error
	})
}
