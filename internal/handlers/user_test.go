package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/auth"
)

func newUserRouter(users *fakeUserStore, issuer *auth.TokenIssuer, userID int) *gin.Engine {
	r := newTestRouter()
	r.Use(asUser(userID, "9"))
	h := NewUserHandler(zap.NewNop(), users, issuer, handlerCatalog())
	r.GET("/usuario", h.ShowProfilePage)
	r.POST("/editar-usuario", h.UpdateProfile)
	r.POST("/eliminar-usuario", h.DeleteAccount)
	return r
}

func TestUpdateProfile(t *testing.T) {
	users := newFakeUserStore()
	hashed, _ := auth.HashPassword("secreto123")
	user := users.add("ana@example.com", hashed, "9")
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	r := newUserRouter(users, issuer, user.ID)

	w := postForm(r, "/editar-usuario", url.Values{
		"new_email": {"ana.nueva@example.com"},
		"new_grado": {"10"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/usuario" {
		t.Errorf("redirect = %q, want /usuario", loc)
	}

	stored := users.users[user.ID]
	if stored.Email != "ana.nueva@example.com" || stored.Grade != "10" {
		t.Errorf("profile = %q/%q, want updated", stored.Email, stored.Grade)
	}
	// Password untouched when the form leaves it blank.
	if stored.Password != hashed {
		t.Error("password changed without a new one being submitted")
	}

	// The fresh cookie must carry the new grade.
	claims, err := issuer.Verify(sessionCookie(t, w))
	if err != nil {
		t.Fatalf("Verify reissued token: %v", err)
	}
	if claims.Grade != "10" {
		t.Errorf("reissued grade = %q, want 10", claims.Grade)
	}
}

func TestUpdateProfileRejectsInvalidGrade(t *testing.T) {
	users := newFakeUserStore()
	user := users.add("ana@example.com", "hash", "9")
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	r := newUserRouter(users, issuer, user.ID)

	w := postForm(r, "/editar-usuario", url.Values{
		"new_email": {"ana@example.com"},
		"new_grado": {"12"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if users.users[user.ID].Grade != "9" {
		t.Error("grade changed despite failed validation")
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	users := newFakeUserStore()
	users.add("luis@example.com", "hash", "9")
	user := users.add("ana@example.com", "hash", "9")
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	r := newUserRouter(users, issuer, user.ID)

	w := postForm(r, "/editar-usuario", url.Values{
		"new_email": {"luis@example.com"},
		"new_grado": {"9"},
	})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestDeleteAccountNeedsPasswordConfirmation(t *testing.T) {
	users := newFakeUserStore()
	hashed, _ := auth.HashPassword("secreto123")
	user := users.add("ana@example.com", hashed, "9")
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	r := newUserRouter(users, issuer, user.ID)

	w := postForm(r, "/eliminar-usuario", url.Values{
		"confirm_password": {"incorrecta"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if users.deleteCalls != 0 {
		t.Error("account deleted despite wrong confirmation password")
	}

	w = postForm(r, "/eliminar-usuario", url.Values{
		"confirm_password": {"secreto123"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if users.deleteCalls != 1 {
		t.Errorf("deleteCalls = %d, want 1", users.deleteCalls)
	}
	if _, ok := users.users[user.ID]; ok {
		t.Error("user still present after delete")
	}
}
