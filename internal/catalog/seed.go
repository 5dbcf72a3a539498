package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

type seedFile struct {
	Subjects []subjectSeed `yaml:"subjects"`
	Grades   []gradeSeed   `yaml:"grades"`
}

type subjectSeed struct {
	Key     string   `yaml:"key"`
	Color   string   `yaml:"color"`
	Image   string   `yaml:"image"`
	Aliases []string `yaml:"aliases"`
}

type gradeSeed struct {
	Number  int      `yaml:"number"`
	Aliases []string `yaml:"aliases"`
}

// Load reads the seed file and builds the catalog against the live tables.
// Seeding is idempotent: rows that already exist under any known alias are
// reused, missing ones are created under the primary alias.
func Load(db *gorm.DB, seedPath string, log *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog seed: %w", err)
	}

	c := New()

	for _, s := range seed.Subjects {
		if len(s.Aliases) == 0 {
			return nil, fmt.Errorf("subject %q has no aliases", s.Key)
		}
		subject, err := resolveOrCreateSubject(db, s)
		if err != nil {
			return nil, err
		}
		c.AddSubject(Entry{
			Subject:     subject,
			Key:         s.Key,
			DisplayName: s.Aliases[0],
			Color:       s.Color,
			Image:       s.Image,
		})
		log.Debug("Catalog subject resolved",
			zap.String("key", s.Key),
			zap.Int("subject_id", subject.ID),
			zap.String("canonical_name", subject.Name),
		)
	}

	for _, g := range seed.Grades {
		grade, err := findOrCreateGrade(db, g.Number)
		if err != nil {
			return nil, err
		}
		c.AddGrade(grade, g.Aliases...)
	}

	log.Info("Catalog loaded",
		zap.Int("subjects", len(c.subjects)),
		zap.Int("grades", len(c.gradeNumbers)),
	)
	return c, nil
}

// resolveOrCreateSubject tries each known display spelling in priority order,
// then falls back to a case-insensitive partial match on the first word of
// the primary alias, and finally creates the canonical row.
func resolveOrCreateSubject(db *gorm.DB, s subjectSeed) (models.Subject, error) {
	var subject models.Subject
	for _, alias := range s.Aliases {
		err := db.Where("nombre_materia = ?", alias).First(&subject).Error
		if err == nil {
			return subject, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subject{}, fmt.Errorf("subject lookup failed for %q: %w", s.Key, err)
		}
	}

	firstWord := strings.Fields(s.Aliases[0])[0]
	pattern := "%" + strings.ToLower(firstWord) + "%"
	err := db.Where("LOWER(nombre_materia) LIKE ?", pattern).First(&subject).Error
	if err == nil {
		return subject, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Subject{}, fmt.Errorf("subject lookup failed for %q: %w", s.Key, err)
	}

	subject = models.Subject{Name: s.Aliases[0]}
	if err := db.Create(&subject).Error; err != nil {
		return models.Subject{}, fmt.Errorf("failed to create subject %q: %w", s.Key, err)
	}
	return subject, nil
}

func findOrCreateGrade(db *gorm.DB, number int) (models.Grade, error) {
	var grade models.Grade
	err := db.Where("numero_grado = ?", number).First(&grade).Error
	if err == nil {
		return grade, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Grade{}, fmt.Errorf("grade lookup failed for %d: %w", number, err)
	}
	grade = models.Grade{Number: number}
	if err := db.Create(&grade).Error; err != nil {
		return models.Grade{}, fmt.Errorf("failed to create grade %d: %w", number, err)
	}
	return grade, nil
}
