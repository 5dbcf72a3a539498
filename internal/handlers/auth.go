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

type AuthHandler struct {
	log     *zap.Logger
	users   UserStore
	issuer  *auth.TokenIssuer
	catalog *catalog.Catalog
}

func NewAuthHandler(log *zap.Logger, users UserStore, issuer *auth.TokenIssuer, cat *catalog.Catalog) *AuthHandler {
	return &AuthHandler{log: log, users: users, issuer: issuer, catalog: cat}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"registro":   c.Query("registro"),
		"csrf_token": c.GetString("csrf_token"),
	})
}

func (h *AuthHandler) ShowRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "registrate.html", gin.H{
		"csrf_token": c.GetString("csrf_token"),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	grade := c.PostForm("grado")

	renderError := func(status int, message string) {
		c.HTML(status, "registrate.html", gin.H{
			"error":      message,
			"csrf_token": c.GetString("csrf_token"),
		})
	}

	if email == "" || password == "" || grade == "" {
		renderError(http.StatusBadRequest, "Todos los campos son obligatorios")
		return
	}
	if !utils.IsValidEmail(email) {
		renderError(http.StatusBadRequest, "El correo no es válido")
		return
	}
	if !utils.IsAcceptablePassword(password) {
		renderError(http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return
	}
	// Grade values are checked against the canonical set up front instead
	// of failing later as an unknown grade when questions are requested.
	resolvedGrade, err := h.catalog.ResolveGrade(grade)
	if err != nil {
		renderError(http.StatusBadRequest, "El grado no es válido")
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		h.log.Error("Failed to hash password during registration", zap.Error(err))
		renderError(http.StatusInternalServerError, "Error al registrar usuario")
		return
	}

	if _, err := h.users.Create(c.Request.Context(), email, hashed, gradeValue(resolvedGrade.Number)); err != nil {
		if err == repository.ErrEmailTaken {
			renderError(http.StatusConflict, "Este correo ya está registrado")
			return
		}
		h.log.Error("Failed to create user", zap.Error(err))
		renderError(http.StatusInternalServerError, "Error al registrar usuario")
		return
	}

	c.Redirect(http.StatusSeeOther, "/?registro=exitoso")
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	renderFailure := func() {
		// One generic message for both unknown email and wrong password.
		c.HTML(http.StatusUnauthorized, "index.html", gin.H{
			"error":      "Correo o contraseña incorrectos",
			"csrf_token": c.GetString("csrf_token"),
		})
	}

	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		renderFailure()
		return
	}
	ok, legacy := auth.VerifyPassword(password, user.Password)
	if !ok {
		renderFailure()
		return
	}

	if legacy {
		// One-time migration: the credential was stored by the old
		// salted-SHA-256 scheme, re-hash it now that we have the plaintext.
		if rehashed, hashErr := auth.HashPassword(password); hashErr == nil {
			if updErr := h.users.UpdateCredential(c.Request.Context(), user.ID, rehashed); updErr != nil {
				h.log.Warn("Failed to upgrade legacy credential", zap.Error(updErr), zap.Int("userID", user.ID))
			} else {
				h.log.Info("Upgraded legacy credential to bcrypt", zap.Int("userID", user.ID))
			}
		}
	}

	token, err := h.issuer.Issue(user.ID, user.Grade)
	if err != nil {
		h.log.Error("Failed to issue session token", zap.Error(err), zap.Int("userID", user.ID))
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"error":      "Error al iniciar sesión. Intenta de nuevo.",
			"csrf_token": c.GetString("csrf_token"),
		})
		return
	}

	setSessionCookie(c, token, h.issuer.TTL())
	c.Redirect(http.StatusSeeOther, "/intro")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
