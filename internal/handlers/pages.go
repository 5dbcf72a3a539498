package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PagesHandler serves the static page shells behind authentication.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) page(template string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentUser(c)
		if claims == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.HTML(http.StatusOK, template, gin.H{
			"user_id": claims.UserID,
			"grado":   claims.Grade,
		})
	}
}

func (h *PagesHandler) Intro(c *gin.Context)        { h.page("intro.html")(c) }
func (h *PagesHandler) Criterio(c *gin.Context)     { h.page("criterio.html")(c) }
func (h *PagesHandler) Competencias(c *gin.Context) { h.page("competencias.html")(c) }
