package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"betweenstats/adapters/dataset"
	"betweenstats/adapters/report"
	"betweenstats/app"
	"betweenstats/domain/compare"
	"betweenstats/internal/errors"
	"betweenstats/ports"
)

// NewReportRouter serves rendered comparison reports over the embedded
// datasets. The API server delegates the whole /reports subtree here, so
// routes carry the full request path.
func NewReportRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	h := &reportHandler{
		compare:  app.NewCompareService(),
		markdown: report.NewMarkdownRenderer(),
		html:     report.NewHTMLRenderer(),
	}
	r.Get("/reports/datasets/{name}", h.handleDatasetReport)
	return r
}

type reportHandler struct {
	compare  *app.CompareService
	markdown ports.Renderer
	html     ports.Renderer
}

// handleDatasetReport renders one comparison over an embedded dataset.
// Query parameters: value, group (required), approach, paired, trim and
// format (html or markdown).
func (h *reportHandler) handleDatasetReport(w http.ResponseWriter, r *http.Request) {
	table, err := dataset.Load(chi.URLParam(r, "name"))
	if err != nil {
		writeReportError(w, err)
		return
	}

	q := r.URL.Query()
	valueCol, groupCol := q.Get("value"), q.Get("group")
	if valueCol == "" || groupCol == "" {
		http.Error(w, "query parameters value and group are required", http.StatusBadRequest)
		return
	}

	opts := app.Options{
		Approach: compare.Approach(q.Get("approach")),
		Paired:   q.Get("paired") == "true",
	}
	if raw := q.Get("trim"); raw != "" {
		trim, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "trim must be a number", http.StatusBadRequest)
			return
		}
		opts.Trim = trim
	}

	analysis, err := h.compare.CompareSource(r.Context(), table, valueCol, groupCol, opts)
	if err != nil {
		writeReportError(w, err)
		return
	}

	renderer := h.html
	if q.Get("format") == "markdown" {
		renderer = h.markdown
	}
	chart, err := renderer.Render(r.Context(), analysis.Groups, analysis.Result, analysis.Annotation, ports.DefaultStyle())
	if err != nil {
		writeReportError(w, err)
		return
	}

	w.Header().Set("Content-Type", chart.MIME+"; charset=utf-8")
	w.Write(chart.Data)
}

func writeReportError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeSchema, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case errors.CodeInsufficientData, errors.CodeUnsupportedCombination:
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}
