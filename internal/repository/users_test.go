package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

func TestUserRepoCreateRejectsDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, "ana@example.com", "hash-1", "9")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == 0 {
		t.Error("created user has zero id")
	}

	if _, err := repo.Create(ctx, "ana@example.com", "hash-2", "10"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate Create err = %v, want ErrEmailTaken", err)
	}
	if n := countRows(t, db, &models.User{}); n != 1 {
		t.Errorf("user rows = %d, want 1", n)
	}

	// The original row must be untouched.
	stored, err := repo.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if stored.Password != "hash-1" || stored.Grade != "9" {
		t.Errorf("stored user changed: password=%q grade=%q", stored.Password, stored.Grade)
	}
}

func TestUserRepoUpdateCredential(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "ana@example.com", "old-hash", "9")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.UpdateCredential(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdateCredential: %v", err)
	}

	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Password != "new-hash" {
		t.Errorf("password = %q, want new-hash", stored.Password)
	}
}

func TestUserRepoUpdateProfile(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "ana@example.com", "old-hash", "9")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Empty password keeps the stored hash.
	if err := repo.UpdateProfile(ctx, user.ID, "ana.nueva@example.com", "", "10"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if stored.Email != "ana.nueva@example.com" || stored.Grade != "10" {
		t.Errorf("profile = %q/%q, want updated email and grade", stored.Email, stored.Grade)
	}
	if stored.Password != "old-hash" {
		t.Errorf("password = %q, want old-hash kept", stored.Password)
	}

	// A new hash replaces it.
	if err := repo.UpdateProfile(ctx, user.ID, "ana.nueva@example.com", "fresh-hash", "10"); err != nil {
		t.Fatalf("UpdateProfile with password: %v", err)
	}
	stored, _ = repo.GetByID(ctx, user.ID)
	if stored.Password != "fresh-hash" {
		t.Errorf("password = %q, want fresh-hash", stored.Password)
	}
}

func TestUserRepoUpdateProfileRejectsTakenEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "ana@example.com", "h1", "9"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	other, err := repo.Create(ctx, "luis@example.com", "h2", "9")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = repo.UpdateProfile(ctx, other.ID, "ana@example.com", "", "9")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
	stored, _ := repo.GetByID(ctx, other.ID)
	if stored.Email != "luis@example.com" {
		t.Errorf("email = %q, want unchanged", stored.Email)
	}
}

func TestUserRepoUpdateProfileKeepsOwnEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "ana@example.com", "h1", "9")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Re-submitting the profile without changing the email is not a conflict.
	if err := repo.UpdateProfile(ctx, user.ID, "ana@example.com", "", "11"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
}

func TestUserRepoDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "ana@example.com", "h1", "9")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	bystander, err := repo.Create(ctx, "luis@example.com", "h2", "9")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	student := models.Student{UserID: user.ID, GradeID: 3}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	db.Create(&models.Result{StudentID: student.ID, SubjectID: 1, Date: time.Now(), Score: 80})
	db.Create(&models.PasswordReset{Token: "tok", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)})
	db.Exec("INSERT INTO quiz_draws (id_usuario, id_areas, orden_preguntas) VALUES (?, ?, ?)", user.ID, 1, "{1,2,3}")

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("deleted user lookup err = %v, want record not found", err)
	}
	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"students", &models.Student{}},
		{"results", &models.Result{}},
		{"resets", &models.PasswordReset{}},
		{"draws", &models.QuizDraw{}},
	} {
		if n := countRows(t, db, check.model); n != 0 {
			t.Errorf("%s rows after delete = %d, want 0", check.name, n)
		}
	}

	// The other account survives.
	if _, err := repo.GetByID(ctx, bystander.ID); err != nil {
		t.Errorf("bystander lookup: %v", err)
	}
}
