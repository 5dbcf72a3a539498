package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/scoring"
)

type ResultsHandler struct {
	log     *zap.Logger
	results ResultStore
}

func NewResultsHandler(log *zap.Logger, results ResultStore) *ResultsHandler {
	return &ResultsHandler{log: log, results: results}
}

type resultRow struct {
	Subject string `json:"materia"`
	Score   int    `json:"puntaje"`
	Band    string `json:"desempeno"`
}

// ShowResults renders the per-subject latest scores with their performance
// bands and the overall average.
func (h *ResultsHandler) ShowResults(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	summary, err := h.results.Summarize(c.Request.Context(), claims.UserID)
	if err != nil {
		// Never surface the internal error text; show an empty results
		// view instead, the way the page has always degraded.
		h.log.Error("Failed to summarize results", zap.Error(err), zap.Int("userID", claims.UserID))
		summary = nil
	}

	rows := make([]resultRow, 0, len(summary))
	total := 0
	for _, s := range summary {
		rows = append(rows, resultRow{
			Subject: s.Subject,
			Score:   s.Score,
			Band:    scoring.Classify(float64(s.Score)),
		})
		total += s.Score
	}

	average := 0.0
	if len(rows) > 0 {
		average = math.Round(float64(total)/float64(len(rows))*100) / 100
	}

	c.HTML(http.StatusOK, "Resul.html", gin.H{
		"user_id":    claims.UserID,
		"grado":      claims.Grade,
		"resultados": rows,
		"promedio":   average,
	})
}
