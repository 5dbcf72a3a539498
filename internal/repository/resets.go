package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

// ErrResetInvalid covers unknown, expired and already-used reset tokens.
var ErrResetInvalid = errors.New("invalid or expired reset token")

type ResetRepo struct {
	db *gorm.DB
}

func NewResetRepo(db *gorm.DB) *ResetRepo {
	return &ResetRepo{db: db}
}

// Create issues a new single-use reset token for the user.
func (r *ResetRepo) Create(ctx context.Context, userID int, ttl time.Duration) (*models.PasswordReset, error) {
	reset := &models.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := r.db.WithContext(ctx).Create(reset).Error; err != nil {
		return nil, err
	}
	return reset, nil
}

// Redeem consumes the token and replaces the user's credential in one
// transaction. A token can only ever be redeemed once.
func (r *ResetRepo) Redeem(ctx context.Context, token, hashedPassword string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reset models.PasswordReset
		err := tx.Where("token = ?", token).First(&reset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetInvalid
		}
		if err != nil {
			return err
		}
		if reset.Used || time.Now().After(reset.ExpiresAt) {
			return ErrResetInvalid
		}

		err = tx.Model(&models.User{}).
			Where("id = ?", reset.UserID).
			Update("password", hashedPassword).Error
		if err != nil {
			return err
		}
		return tx.Model(&reset).Update("usado", true).Error
	})
}
