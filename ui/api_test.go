package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betweenstats/app"
	"betweenstats/internal/config"
	"betweenstats/internal/errors"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.GinMode = "test"
	cfg.Analysis.SweepConcurrency = 2
	return NewServer(cfg, nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestCompareEndpoint(t *testing.T) {
	body := map[string]interface{}{
		"values": []float64{2, 1, 3, 4, 6, 5, 7, 9},
		"groups": []string{"a", "a", "a", "a", "b", "b", "b", "b"},
	}
	w := doJSON(t, testServer(t), http.MethodPost, "/api/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var analysis app.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, "student_t", string(analysis.Spec.ID))
	assert.Equal(t, "t_{Student}(6) = -3.97, p = 0.0074, n_obs = 8", analysis.Annotation)
	assert.NotEmpty(t, analysis.ID)
}

func TestCompareEndpointRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	testServer(t).Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompareEndpointUnsupportedCombination(t *testing.T) {
	body := map[string]interface{}{
		"values":  []float64{2, 1, 3, 4, 6, 5, 7, 9},
		"groups":  []string{"a", "a", "a", "a", "b", "b", "b", "b"},
		"options": map[string]interface{}{"paired": true, "approach": "robust"},
	}
	w := doJSON(t, testServer(t), http.MethodPost, "/api/compare", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), errors.CodeUnsupportedCombination)
}

func TestListDatasetsEndpoint(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/api/datasets", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "iris")
	assert.Contains(t, w.Body.String(), "mtcars")
}

func TestDatasetCompareEndpoint(t *testing.T) {
	body := map[string]interface{}{
		"value_column": "sepal_length",
		"group_column": "species",
	}
	w := doJSON(t, testServer(t), http.MethodPost, "/api/datasets/iris/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var analysis app.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, "anova", string(analysis.Result.Family))
	assert.Equal(t, 150, analysis.Result.NObs)
	assert.Len(t, analysis.Groups, 3)
}

func TestDatasetCompareUnknownDataset(t *testing.T) {
	body := map[string]interface{}{
		"value_column": "x",
		"group_column": "g",
	}
	w := doJSON(t, testServer(t), http.MethodPost, "/api/datasets/penguins/compare", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetSweepEndpoint(t *testing.T) {
	body := map[string]interface{}{
		"group_column":  "species",
		"value_columns": []string{"petal_length", "petal_width"},
	}
	w := doJSON(t, testServer(t), http.MethodPost, "/api/datasets/iris/sweep", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result app.SweepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Analyses, 2)
	assert.Empty(t, result.Failures)
}

func TestDatasetSweepRequiresColumns(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodPost, "/api/datasets/iris/sweep",
		map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTableRoutesAbsentWithoutSource(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/api/table/columns", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportRoute(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet,
		"/reports/datasets/iris?value=sepal_length&group=species", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "n_obs = 150")
}

func TestReportRouteMarkdownFormat(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet,
		"/reports/datasets/iris?value=sepal_length&group=species&format=markdown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "## Groups")
}

func TestReportRouteMissingParams(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/reports/datasets/iris", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
