// Package catalog resolves human-facing subject keys and grade values to
// canonical database rows. The alias lists live in a versioned seed file and
// are folded into lookup maps once at startup, so request-time resolution is
// a plain map access instead of a linear alias scan against the database.
package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

var (
	// ErrUnknownSubject means the subject key has no canonical record.
	ErrUnknownSubject = errors.New("unknown subject")
	// ErrUnknownGrade means the grade value is not in the canonical set.
	// Integers outside the set are rejected here, at input validation,
	// instead of surfacing as a downstream not-found.
	ErrUnknownGrade = errors.New("unknown grade")
)

// Entry is one resolved subject with its page display attributes.
type Entry struct {
	Subject     models.Subject
	Key         string
	DisplayName string
	Color       string
	Image       string
}

// Catalog holds the canonicalization maps built by Load.
type Catalog struct {
	subjects     map[string]Entry
	grades       map[string]models.Grade
	gradeNumbers map[int]models.Grade
}

// New returns an empty catalog. Load is the normal constructor; New exists
// for wiring already-resolved state directly.
func New() *Catalog {
	return &Catalog{
		subjects:     make(map[string]Entry),
		grades:       make(map[string]models.Grade),
		gradeNumbers: make(map[int]models.Grade),
	}
}

// AddSubject registers a resolved subject under its short key.
func (c *Catalog) AddSubject(entry Entry) {
	c.subjects[strings.ToLower(entry.Key)] = entry
}

// AddGrade registers a canonical grade under its number and word aliases.
func (c *Catalog) AddGrade(grade models.Grade, aliases ...string) {
	c.gradeNumbers[grade.Number] = grade
	c.grades[strconv.Itoa(grade.Number)] = grade
	for _, alias := range aliases {
		c.grades[strings.ToLower(alias)] = grade
	}
}

// ResolveSubject maps an internal short key ("matematicas") to its canonical
// subject record.
func (c *Catalog) ResolveSubject(key string) (Entry, error) {
	entry, ok := c.subjects[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Entry{}, ErrUnknownSubject
	}
	return entry, nil
}

// ResolveGrade accepts a word form ("sexto") or a numeric string ("6") and
// maps it to the canonical grade record.
func (c *Catalog) ResolveGrade(value string) (models.Grade, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if grade, ok := c.grades[normalized]; ok {
		return grade, nil
	}
	if number, err := strconv.Atoi(normalized); err == nil {
		if grade, ok := c.gradeNumbers[number]; ok {
			return grade, nil
		}
	}
	return models.Grade{}, ErrUnknownGrade
}

// ValidGrade reports whether a grade value would resolve.
func (c *Catalog) ValidGrade(value string) bool {
	_, err := c.ResolveGrade(value)
	return err == nil
}
