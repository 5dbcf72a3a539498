package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/repository"
)

func newResultsRouter(results *fakeResultStore, authed bool) *gin.Engine {
	r := newTestRouter()
	if authed {
		r.Use(asUser(1, "9"))
	}
	h := NewResultsHandler(zap.NewNop(), results)
	ch := NewChartsHandler(zap.NewNop(), results)
	r.GET("/Resul", h.ShowResults)
	r.GET("/Resul/grafica", ch.ScoreChart)
	return r
}

func TestShowResultsAverage(t *testing.T) {
	results := &fakeResultStore{summary: []repository.SummaryRow{
		{Subject: "Inglés", Score: 70},
		{Subject: "Matemáticas", Score: 85},
	}}
	r := newResultsRouter(results, true)

	req := httptest.NewRequest(http.MethodGet, "/Resul", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "77.5") {
		t.Errorf("body = %q, want average 77.5", w.Body.String())
	}
}

func TestShowResultsRedirectsGuests(t *testing.T) {
	r := newResultsRouter(&fakeResultStore{}, false)

	req := httptest.NewRequest(http.MethodGet, "/Resul", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302 redirect", w.Code)
	}
}

func TestScoreChartRendersHTML(t *testing.T) {
	results := &fakeResultStore{summary: []repository.SummaryRow{
		{Subject: "Matemáticas", Score: 85},
	}}
	r := newResultsRouter(results, true)

	req := httptest.NewRequest(http.MethodGet, "/Resul/grafica", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Resultados por materia") {
		t.Errorf("chart page missing title, body starts: %.100s", body)
	}
	if !strings.Contains(body, "Matemáticas") {
		t.Error("chart page missing subject axis label")
	}
}
