package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/config"
	logging "github.com/Preparicfes/Preparicfes-Actualizado/internal/logging"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

// New opens the connection and runs migrations. The handle is passed down
// explicitly; nothing in the application reaches for a package global.
func New(dbConf config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = gormlogger.Warn

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established successfully.")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully.")
	return db, nil
}

// Migrate creates tables, columns and foreign keys. GORM's AutoMigrate will
// not create the composite results index, so that is handled separately.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Grade{},
		&models.Question{},
		&models.Student{},
		&models.Result{},
		&models.QuizDraw{},
		&models.PasswordReset{},
	)
	if err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	resultsIndex := `CREATE INDEX IF NOT EXISTS idx_resultados_latest ON resultados (id_estudiantes, id_areas, fecha DESC);`
	if err := db.Exec(resultsIndex).Error; err != nil {
		return fmt.Errorf("failed to create results index: %w", err)
	}
	return nil
}
