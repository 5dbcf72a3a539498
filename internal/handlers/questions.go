package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/catalog"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/quiz"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/scoring"
)

type QuestionsHandler struct {
	log     *zap.Logger
	catalog *catalog.Catalog
	sampler QuestionDrawer
	results ResultStore
}

func NewQuestionsHandler(log *zap.Logger, cat *catalog.Catalog, sampler QuestionDrawer, results ResultStore) *QuestionsHandler {
	return &QuestionsHandler{log: log, catalog: cat, sampler: sampler, results: results}
}

// Page renders the quiz shell for a subject; the questions themselves come
// through the JSON API below.
func (h *QuestionsHandler) Page(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	entry, err := h.catalog.ResolveSubject(c.Param("materia"))
	if err != nil {
		c.String(http.StatusNotFound, "Materia no encontrada")
		return
	}

	c.HTML(http.StatusOK, "preguntas.html", gin.H{
		"materia":        entry.Key,
		"nombre_materia": entry.DisplayName,
		"color_materia":  entry.Color,
		"imagen_materia": entry.Image,
		"user_id":        claims.UserID,
		"grado":          claims.Grade,
	})
}

type questionJSON struct {
	ID            int    `json:"id"`
	Number        int    `json:"numero"`
	Prompt        string `json:"enunciado"`
	OptionA       string `json:"opcion_a"`
	OptionB       string `json:"opcion_b"`
	OptionC       string `json:"opcion_c"`
	OptionD       string `json:"opcion_d"`
	Image         string `json:"imagen"`
	CorrectOption string `json:"respuesta_correcta"`
}

// List returns the draw for the session as JSON. offset=0 (or absent) draws
// a fresh randomized selection; a later page re-reads the same stored draw
// so window boundaries never shuffle mid-quiz.
func (h *QuestionsHandler) List(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No autenticado"})
		return
	}

	entry, err := h.catalog.ResolveSubject(c.Param("materia"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Materia no encontrada"})
		return
	}
	grade, err := h.catalog.ResolveGrade(claims.Grade)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Grado no válido"})
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if offset < 0 {
		offset = 0
	}

	draw, err := h.sampler.Draw(c.Request.Context(), claims.UserID, entry.Subject.ID, grade.ID, offset == 0)
	if err != nil {
		if errors.Is(err, quiz.ErrNoQuestions) {
			c.JSON(http.StatusNotFound, gin.H{
				"detail": "No hay preguntas para " + entry.DisplayName + " grado " + claims.Grade,
			})
			return
		}
		h.log.Error("Failed to draw questions",
			zap.Error(err),
			zap.Int("userID", claims.UserID),
			zap.String("materia", entry.Key),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error obteniendo preguntas"})
		return
	}

	page := quiz.Window(draw, offset, limit)
	out := make([]questionJSON, 0, len(page))
	for i, q := range page {
		out = append(out, questionJSON{
			ID:            q.ID,
			Number:        offset + i + 1,
			Prompt:        q.Prompt,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			Image:         q.Image,
			CorrectOption: q.CorrectOption,
		})
	}

	hasMore := false
	if limit > 0 {
		hasMore = offset+limit < len(draw)
	}
	c.JSON(http.StatusOK, gin.H{
		"preguntas": out,
		"total":     len(draw),
		"offset":    offset,
		"limit":     limit,
		"has_more":  hasMore,
	})
}

type saveAnswersRequest struct {
	Subject string           `json:"materia"`
	Answers []scoring.Answer `json:"respuestas"`
}

// SaveAnswers scores a submission and appends a result row. Duplicate
// submissions are not deduplicated; each one persists, and the results view
// only ever reports the newest per subject.
func (h *QuestionsHandler) SaveAnswers(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No autenticado"})
		return
	}

	var req saveAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Subject == "" || len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Datos incompletos"})
		return
	}

	entry, err := h.catalog.ResolveSubject(req.Subject)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Materia no encontrada"})
		return
	}
	grade, err := h.catalog.ResolveGrade(claims.Grade)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Grado no válido"})
		return
	}

	percentage := scoring.Score(req.Answers)
	// The stored row keeps the historical integer column; the response
	// reports the exact percentage.
	if err := h.results.Save(c.Request.Context(), claims.UserID, grade.ID, entry.Subject.ID, int(percentage)); err != nil {
		h.log.Error("Failed to save result",
			zap.Error(err),
			zap.Int("userID", claims.UserID),
			zap.String("materia", entry.Key),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error guardando respuestas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"correctas": scoring.CountCorrect(req.Answers),
		"total":     len(req.Answers),
		"puntaje":   math.Round(percentage*100) / 100,
	})
}
