package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

// openTestDB gives each test an isolated in-memory database. QuizDraw is
// created by hand because its array column is Postgres-only DDL; sqlite
// stores the serialized form in a text column, which is all the tests need.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Subject{},
		&models.Grade{},
		&models.Question{},
		&models.Result{},
		&models.PasswordReset{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	err = db.Exec(`CREATE TABLE quiz_draws (
		id integer PRIMARY KEY AUTOINCREMENT,
		id_usuario integer,
		id_areas integer,
		orden_preguntas text,
		created_at datetime,
		updated_at datetime
	)`).Error
	if err != nil {
		t.Fatalf("create quiz_draws: %v", err)
	}
	return db
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
