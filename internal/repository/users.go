package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

// ErrEmailTaken is returned when registering or editing onto an email that
// already belongs to another account.
var ErrEmailTaken = errors.New("email already registered")

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create registers a new user. The password must already be hashed.
func (r *UserRepo) Create(ctx context.Context, email, hashedPassword, grade string) (*models.User, error) {
	user := &models.User{
		Email:        email,
		Password:     hashedPassword,
		Grade:        grade,
		RegisteredAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCredential replaces the stored password hash. Used by the reset flow
// and by the transparent legacy re-hash on login.
func (r *UserRepo) UpdateCredential(ctx context.Context, id int, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

// UpdateProfile edits email and grade, and the password when a new hash is
// provided. The whole edit commits or rolls back as one unit.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int, email, hashedPassword, grade string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var other models.User
		err := tx.Where("email = ? AND id <> ?", email, id).First(&other).Error
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		updates := map[string]interface{}{"email": email, "grado": grade}
		if hashedPassword != "" {
			updates["password"] = hashedPassword
		}
		return tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
	})
}

// Delete removes the account and everything hanging off it: results, the
// student link, stored draws and reset tokens.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student models.Student
		err := tx.Where("id_usuario = ?", id).First(&student).Error
		switch {
		case err == nil:
			if err := tx.Where("id_estudiantes = ?", student.ID).Delete(&models.Result{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Student{}, student.ID).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Where("id_usuario = ?", id).Delete(&models.QuizDraw{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_usuario = ?", id).Delete(&models.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
