package models

// Subject is one quiz area ("Matemáticas", "Lectura Crítica", ...). Several
// display spellings map onto one canonical row; the mapping lives in the
// catalog seed file, not in the database.
type Subject struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"column:nombre_materia"`
}

func (Subject) TableName() string { return "areas" }

// Grade is a canonical school level (6 through 11).
type Grade struct {
	ID     int `gorm:"primaryKey"`
	Number int `gorm:"column:numero_grado;uniqueIndex"`
}

func (Grade) TableName() string { return "grado" }
