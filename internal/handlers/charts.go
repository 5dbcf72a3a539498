package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type ChartsHandler struct {
	log     *zap.Logger
	results ResultStore
}

func NewChartsHandler(log *zap.Logger, results ResultStore) *ChartsHandler {
	return &ChartsHandler{log: log, results: results}
}

// ScoreChart renders the latest-per-subject scores as a bar chart page.
func (h *ChartsHandler) ScoreChart(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	summary, err := h.results.Summarize(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error("Failed to load results for chart", zap.Error(err), zap.Int("userID", claims.UserID))
		c.String(http.StatusInternalServerError, "Error generando la gráfica")
		return
	}

	subjects := make([]string, 0, len(summary))
	values := make([]opts.BarData, 0, len(summary))
	for _, s := range summary {
		subjects = append(subjects, s.Subject)
		values = append(values, opts.BarData{Value: s.Score})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Resultados por materia",
			Subtitle: "Puntaje más reciente de cada área",
		}),
		charts.WithYAxisOpts(opts.YAxis{Max: 100}),
	)
	bar.SetXAxis(subjects).AddSeries("Puntaje", values)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(c.Writer); err != nil {
		h.log.Error("Failed to render score chart", zap.Error(err))
	}
}
