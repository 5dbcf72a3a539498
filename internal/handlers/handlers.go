// Package handlers contains the HTTP route handlers. Each handler group
// declares the narrow store interfaces it consumes; the repository package
// provides the GORM-backed implementations.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/auth"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/repository"
)

// UserContextKey is where the auth middleware stores the verified claims.
const UserContextKey = "user"

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "access_token"

type UserStore interface {
	Create(ctx context.Context, email, hashedPassword, grade string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateCredential(ctx context.Context, id int, hashedPassword string) error
	UpdateProfile(ctx context.Context, id int, email, hashedPassword, grade string) error
	Delete(ctx context.Context, id int) error
}

type ResultStore interface {
	Save(ctx context.Context, userID, gradeID, subjectID, score int) error
	Summarize(ctx context.Context, userID int) ([]repository.SummaryRow, error)
}

type ResetStore interface {
	Create(ctx context.Context, userID int, ttl time.Duration) (*models.PasswordReset, error)
	Redeem(ctx context.Context, token, hashedPassword string) error
}

// QuestionDrawer serves the (possibly reused) question draw for a session.
type QuestionDrawer interface {
	Draw(ctx context.Context, userID, subjectID, gradeID int, fresh bool) ([]models.Question, error)
}

// gradeValue is the canonical string form stored in usuarios.grado.
func gradeValue(number int) string {
	return strconv.Itoa(number)
}

// currentUser returns the verified session claims, or nil for a guest.
func currentUser(c *gin.Context) *auth.Claims {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// setSessionCookie installs the signed token; MaxAge matches the token TTL.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
}

// clearSessionCookie is the whole of logout: tokens are stateless, so there
// is nothing server-side to revoke.
func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
