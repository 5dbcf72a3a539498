package handlers

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/auth"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/catalog"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/repository"
)

// Minimal stand-ins for the real page templates; the tests assert on status
// codes, redirects and the error strings these echo back.
var testTemplates = template.Must(template.New("").Parse(`
{{define "index.html"}}index {{.error}} {{.registro}}{{end}}
{{define "registrate.html"}}registrate {{.error}}{{end}}
{{define "intro.html"}}intro{{end}}
{{define "criterio.html"}}criterio{{end}}
{{define "competencias.html"}}competencias{{end}}
{{define "preguntas.html"}}preguntas {{.nombre_materia}}{{end}}
{{define "Resul.html"}}resul {{.promedio}}{{end}}
{{define "usuario.html"}}usuario {{.email}} {{.error}}{{end}}
{{define "recuperar.html"}}recuperar {{.enviado}}{{end}}
{{define "restablecer.html"}}restablecer {{.error}}{{end}}
`))

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(testTemplates)
	return r
}

// asUser injects verified claims the way the session middleware would.
func asUser(userID int, grade string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserContextKey, &auth.Claims{UserID: userID, Grade: grade})
	}
}

// handlerCatalog carries one subject and the grades the fixtures use.
func handlerCatalog() *catalog.Catalog {
	c := catalog.New()
	c.AddSubject(catalog.Entry{
		Subject:     models.Subject{ID: 1, Name: "Matemáticas"},
		Key:         "matematicas",
		DisplayName: "Matemáticas",
		Color:       "#2980b9",
	})
	c.AddGrade(models.Grade{ID: 3, Number: 9}, "noveno")
	c.AddGrade(models.Grade{ID: 4, Number: 10}, "decimo")
	return c
}

type fakeUserStore struct {
	users           map[int]*models.User
	nextID          int
	credentialCalls int
	deleteCalls     int
	updateErr       error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserStore) add(email, credential, grade string) *models.User {
	u := &models.User{ID: f.nextID, Email: email, Password: credential, Grade: grade, RegisteredAt: time.Now()}
	f.users[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeUserStore) Create(_ context.Context, email, hashedPassword, grade string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, repository.ErrEmailTaken
		}
	}
	return f.add(email, hashedPassword, grade), nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateCredential(_ context.Context, id int, hashedPassword string) error {
	f.credentialCalls++
	if u, ok := f.users[id]; ok {
		u.Password = hashedPassword
	}
	return nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id int, email, hashedPassword, grade string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for otherID, u := range f.users {
		if u.Email == email && otherID != id {
			return repository.ErrEmailTaken
		}
	}
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Email = email
	u.Grade = grade
	if hashedPassword != "" {
		u.Password = hashedPassword
	}
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int) error {
	f.deleteCalls++
	delete(f.users, id)
	return nil
}

type savedResult struct {
	userID    int
	gradeID   int
	subjectID int
	score     int
}

type fakeResultStore struct {
	saved   []savedResult
	summary []repository.SummaryRow
	saveErr error
}

func (f *fakeResultStore) Save(_ context.Context, userID, gradeID, subjectID, score int) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, savedResult{userID, gradeID, subjectID, score})
	return nil
}

func (f *fakeResultStore) Summarize(_ context.Context, userID int) ([]repository.SummaryRow, error) {
	return f.summary, nil
}

type fakeDrawer struct {
	questions []models.Question
	err       error
	calls     int
	lastFresh bool
}

func (f *fakeDrawer) Draw(_ context.Context, userID, subjectID, gradeID int, fresh bool) ([]models.Question, error) {
	f.calls++
	f.lastFresh = fresh
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

type fakeResetStore struct {
	created   []*models.PasswordReset
	redeemed  []string
	redeemErr error
}

func (f *fakeResetStore) Create(_ context.Context, userID int, ttl time.Duration) (*models.PasswordReset, error) {
	reset := &models.PasswordReset{
		ID:        len(f.created) + 1,
		Token:     fmt.Sprintf("token-%d", len(f.created)+1),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	f.created = append(f.created, reset)
	return reset, nil
}

func (f *fakeResetStore) Redeem(_ context.Context, token, hashedPassword string) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	f.redeemed = append(f.redeemed, token)
	return nil
}
