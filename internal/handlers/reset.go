package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/auth"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/repository"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/services"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/utils"
)

// ResetHandler implements password recovery with a time-limited single-use
// token sent out-of-band. The stored password is never shown or mailed.
type ResetHandler struct {
	log    *zap.Logger
	users  UserStore
	resets ResetStore
	email  *services.EmailService
	ttl    time.Duration
}

func NewResetHandler(log *zap.Logger, users UserStore, resets ResetStore, email *services.EmailService, ttl time.Duration) *ResetHandler {
	return &ResetHandler{log: log, users: users, resets: resets, email: email, ttl: ttl}
}

func (h *ResetHandler) ShowRequestForm(c *gin.Context) {
	c.HTML(http.StatusOK, "recuperar.html", gin.H{
		"csrf_token": c.GetString("csrf_token"),
	})
}

// Request answers identically whether or not the email exists, so the form
// cannot be used to probe for registered addresses.
func (h *ResetHandler) Request(c *gin.Context) {
	email := c.PostForm("email")

	if utils.IsValidEmail(email) {
		if user, err := h.users.GetByEmail(c.Request.Context(), email); err == nil {
			reset, err := h.resets.Create(c.Request.Context(), user.ID, h.ttl)
			if err != nil {
				h.log.Error("Failed to create reset token", zap.Error(err), zap.Int("userID", user.ID))
			} else {
				resetURL := fmt.Sprintf("http://%s/restablecer?token=%s", c.Request.Host, reset.Token)
				h.email.SendPasswordReset(user.Email, resetURL)
			}
		}
	}

	c.HTML(http.StatusOK, "recuperar.html", gin.H{
		"enviado":    true,
		"csrf_token": c.GetString("csrf_token"),
	})
}

func (h *ResetHandler) ShowResetForm(c *gin.Context) {
	c.HTML(http.StatusOK, "restablecer.html", gin.H{
		"token":      c.Query("token"),
		"csrf_token": c.GetString("csrf_token"),
	})
}

func (h *ResetHandler) Do(c *gin.Context) {
	token := c.PostForm("token")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	renderError := func(status int, message string) {
		c.HTML(status, "restablecer.html", gin.H{
			"token":      token,
			"error":      message,
			"csrf_token": c.GetString("csrf_token"),
		})
	}

	if password != confirm {
		renderError(http.StatusBadRequest, "Las contraseñas no coinciden")
		return
	}
	if !utils.IsAcceptablePassword(password) {
		renderError(http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		h.log.Error("Failed to hash password during reset", zap.Error(err))
		renderError(http.StatusInternalServerError, "Error al restablecer la contraseña")
		return
	}

	if err := h.resets.Redeem(c.Request.Context(), token, hashed); err != nil {
		if errors.Is(err, repository.ErrResetInvalid) {
			renderError(http.StatusBadRequest, "El enlace no es válido o ya expiró")
			return
		}
		h.log.Error("Failed to redeem reset token", zap.Error(err))
		renderError(http.StatusInternalServerError, "Error al restablecer la contraseña")
		return
	}

	c.Redirect(http.StatusSeeOther, "/?restablecido=exitoso")
}
