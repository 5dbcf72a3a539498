package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/auth"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/catalog"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/repository"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/utils"
)

type UserHandler struct {
	log     *zap.Logger
	users   UserStore
	issuer  *auth.TokenIssuer
	catalog *catalog.Catalog
}

func NewUserHandler(log *zap.Logger, users UserStore, issuer *auth.TokenIssuer, cat *catalog.Catalog) *UserHandler {
	return &UserHandler{log: log, users: users, issuer: issuer, catalog: cat}
}

// ShowProfilePage renders the account management page.
func (h *UserHandler) ShowProfilePage(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		// Session points at a deleted account; drop it.
		clearSessionCookie(c)
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "usuario.html", gin.H{
		"user_id":    user.ID,
		"email":      user.Email,
		"grado":      user.Grade,
		"csrf_token": c.GetString("csrf_token"),
	})
}

// UpdateProfile edits email, grade and optionally the password, then
// re-issues the session token so the cookie carries the updated grade.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	newEmail := c.PostForm("new_email")
	newPassword := c.PostForm("new_password")
	newGrade := c.PostForm("new_grado")

	renderError := func(status int, message string) {
		c.HTML(status, "usuario.html", gin.H{
			"user_id":    claims.UserID,
			"email":      newEmail,
			"grado":      newGrade,
			"error":      message,
			"csrf_token": c.GetString("csrf_token"),
		})
	}

	if !utils.IsValidEmail(newEmail) {
		renderError(http.StatusBadRequest, "El correo no es válido")
		return
	}
	resolvedGrade, err := h.catalog.ResolveGrade(newGrade)
	if err != nil {
		renderError(http.StatusBadRequest, "El grado no es válido")
		return
	}

	hashed := ""
	if newPassword != "" {
		if !utils.IsAcceptablePassword(newPassword) {
			renderError(http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
			return
		}
		if hashed, err = auth.HashPassword(newPassword); err != nil {
			h.log.Error("Failed to hash new password", zap.Error(err), zap.Int("userID", claims.UserID))
			renderError(http.StatusInternalServerError, "Error al actualizar los datos")
			return
		}
	}

	grade := gradeValue(resolvedGrade.Number)
	if err := h.users.UpdateProfile(c.Request.Context(), claims.UserID, newEmail, hashed, grade); err != nil {
		if err == repository.ErrEmailTaken {
			renderError(http.StatusConflict, "Este correo ya está registrado")
			return
		}
		h.log.Error("Failed to update profile", zap.Error(err), zap.Int("userID", claims.UserID))
		renderError(http.StatusInternalServerError, "Error al actualizar los datos")
		return
	}

	// New token with the updated grade.
	token, err := h.issuer.Issue(claims.UserID, grade)
	if err != nil {
		h.log.Error("Failed to reissue session token", zap.Error(err), zap.Int("userID", claims.UserID))
		clearSessionCookie(c)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	setSessionCookie(c, token, h.issuer.TTL())
	c.Redirect(http.StatusSeeOther, "/usuario")
}

// DeleteAccount removes the account after re-confirming the current
// password. Results and the student link go with it.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		clearSessionCookie(c)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if ok, _ := auth.VerifyPassword(c.PostForm("confirm_password"), user.Password); !ok {
		c.HTML(http.StatusUnauthorized, "usuario.html", gin.H{
			"user_id":    user.ID,
			"email":      user.Email,
			"grado":      user.Grade,
			"error":      "Contraseña incorrecta",
			"csrf_token": c.GetString("csrf_token"),
		})
		return
	}

	if err := h.users.Delete(c.Request.Context(), claims.UserID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.Int("userID", claims.UserID))
		c.HTML(http.StatusInternalServerError, "usuario.html", gin.H{
			"user_id":    user.ID,
			"email":      user.Email,
			"grado":      user.Grade,
			"error":      "Error al eliminar la cuenta",
			"csrf_token": c.GetString("csrf_token"),
		})
		return
	}

	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
