package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/webdiff/internal/compare"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/merge"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/reporter"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/aleister1102/webdiff/internal/testrunner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sectionA = "2024-07-01T08-00-00-000Z"
	sectionB = "2024-07-02T08-00-00-000Z"
)

// noopPDF never renders; the HTTP tests only exercise the HTML path.
type noopPDF struct{}

func (noopPDF) Render(context.Context, string, string) error { return nil }

type testHarness struct {
	server  *Server
	gateway *storage.Gateway
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	logger := zerolog.Nop()
	gw := storage.NewGateway(config.StorageConfig{StoragePath: t.TempDir()}, logger)
	require.NoError(t, gw.CreateProject("demo"))

	engine := compare.NewEngine(gw, logger, config.NewDefaultDifferConfig(), config.NewDefaultCompareConfig())
	merger := merge.NewEngine(gw, logger)
	store := testrunner.NewResultStore(gw, logger)
	runner := testrunner.NewRunner(gw, engine, store, config.NewDefaultTestRunnerConfig(), logger)

	reporterCfg := config.NewDefaultReporterConfig()
	reportStore := reporter.NewReportStore(gw, reporterCfg.RetentionDays, logger)
	generator, err := reporter.NewGenerator(gw, engine, reportStore, reporterCfg, logger)
	require.NoError(t, err)
	generator.WithPDFRenderer(noopPDF{})

	srv := NewServer(config.NewDefaultServerConfig(), gw, engine, merger, runner, generator, logger)
	return &testHarness{server: srv, gateway: gw}
}

func (h *testHarness) writeScreen(t *testing.T, section, relPath string, files map[string]string) {
	t.Helper()
	sectionDir, err := h.gateway.SectionDir("demo", section)
	require.NoError(t, err)
	dir := filepath.Join(sectionDir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func (h *testHarness) seedSections(t *testing.T) {
	t.Helper()
	screen := map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page"}`,
		"dom.json":  `{"t":"body"}`,
	}
	h.writeScreen(t, sectionA, "home", screen)
	h.writeScreen(t, sectionB, "home", screen)
}

func (h *testHarness) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHarness(t)
	rec := h.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompareEndpoint(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	rec := h.do(t, http.MethodGet, "/api/compare/demo/"+sectionA+"/"+sectionB, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[models.CompareResult](t, rec)
	assert.Equal(t, 1, result.Summary.Matched)
	assert.Equal(t, 1, result.Summary.Unchanged)
}

func TestCompareEndpoint_MissingSectionIs404(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	rec := h.do(t, http.MethodGet, "/api/compare/demo/"+sectionA+"/2024-01-01T00-00-00-000Z", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComparePageEndpoint_RequiresParams(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	rec := h.do(t, http.MethodGet, "/api/compare/demo/page?s1="+sectionA, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodGet,
		"/api/compare/demo/page?s1="+sectionA+"&s2="+sectionB+"&p1=home&p2=home", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMergeEndpoint(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	rec := h.do(t, http.MethodPost, "/api/merge/demo", map[string]interface{}{
		"sectionTimestamp": sectionA,
		"folders":          []string{"home"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[models.MergeResult](t, rec)
	assert.True(t, result.Success)

	mainDir, err := h.gateway.RequireSection("demo", config.MainSectionName)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(mainDir, "home", "meta.json"))
}

func TestMergeEndpoint_ConflictIs409(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	require.True(t, h.gateway.Locks().TryAcquire("demo"))
	defer h.gateway.Locks().Release("demo")

	rec := h.do(t, http.MethodPost, "/api/merge/demo", map[string]interface{}{
		"sectionTimestamp": sectionA,
		"folders":          []string{"home"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMergePreviewEndpoint(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	rec := h.do(t, http.MethodPost, "/api/merge/demo/preview", map[string]interface{}{
		"sectionTimestamp": sectionA,
		"folders":          []string{"home"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode[map[string][]*models.MergePreviewEntry](t, rec)
	require.Len(t, payload["folders"], 1)
	assert.Equal(t, models.MergeActionCreate, payload["folders"][0].Action)
}

func TestTestRunnerEndpoints(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)
	h.writeScreen(t, config.MainSectionName, "home", map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page"}`,
		"dom.json":  `{"t":"body"}`,
	})

	rec := h.do(t, http.MethodPost, "/api/test-runner/run", map[string]interface{}{
		"projectName":      "demo",
		"sectionTimestamp": sectionA,
		"threshold":        map[string]float64{"dom": 95, "api": 100, "visual": 90},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[models.TestResult](t, rec)
	assert.True(t, result.Passed)

	rec = h.do(t, http.MethodGet, "/api/test-runner/demo/results?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/test-runner/demo/statistics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.TestStatistics](t, rec)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Passed)

	rec = h.do(t, http.MethodGet, "/api/test-runner/demo/results/"+result.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodDelete, "/api/test-runner/demo/results/"+result.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/test-runner/demo/results/"+result.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTestRunnerEndpoint_WeightsAccepted(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)
	h.writeScreen(t, config.MainSectionName, "home", map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page"}`,
		"dom.json":  `{"t":"body"}`,
	})

	rec := h.do(t, http.MethodPost, "/api/test-runner/run", map[string]interface{}{
		"projectName":      "demo",
		"sectionTimestamp": sectionA,
		"weights":          map[string]float64{"dom": 0, "api": 0, "visual": 1},
		"visualScores":     map[string]float64{"home": 40},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[models.TestResult](t, rec)
	assert.Equal(t, models.TestWeights{DOM: 0, API: 0, Visual: 1}, result.Weights)
	assert.Equal(t, 40.0, result.OverallScore, "overall follows the visual-only weighting")
}

func TestTestRunnerEndpoint_ValidatesBody(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(t, http.MethodPost, "/api/test-runner/run", map[string]interface{}{
		"projectName": "demo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportEndpoints(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	rec := h.do(t, http.MethodPost, "/api/reports/demo/generate", map[string]interface{}{
		"type":     "comparison",
		"section1": sectionA,
		"section2": sectionB,
		"format":   "html",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode[map[string]string](t, rec)
	reportID := payload["reportId"]
	require.NotEmpty(t, reportID)

	rec = h.do(t, http.MethodGet, "/api/reports/demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/reports/demo/"+reportID+"/download", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")

	rec = h.do(t, http.MethodDelete, "/api/reports/demo/"+reportID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/reports/demo/"+reportID+"/download", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportGenerate_UnknownTypeIs400(t *testing.T) {
	h := newTestHarness(t)

	rec := h.do(t, http.MethodPost, "/api/reports/demo/generate", map[string]interface{}{
		"type": "weird",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectAndSectionEndpoints(t *testing.T) {
	h := newTestHarness(t)
	h.seedSections(t)

	rec := h.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decode[map[string][]string](t, rec)
	assert.Equal(t, []string{"demo"}, projects["projects"])

	rec = h.do(t, http.MethodPost, "/api/projects", map[string]string{"name": "second"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/projects", map[string]string{"name": "second"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/sections/demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sections := decode[map[string][]string](t, rec)
	assert.Equal(t, []string{sectionA, sectionB}, sections["sections"])

	rec = h.do(t, http.MethodDelete, "/api/sections/demo/"+sectionA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodDelete, "/api/projects/second", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCapturePreviewEndpoint(t *testing.T) {
	h := newTestHarness(t)
	h.writeScreen(t, sectionA, "home", map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page"}`,
	})
	h.writeScreen(t, sectionA, "home/UI", map[string]string{"screenshot.jpg": "jpg-bytes"})

	rec := h.do(t, http.MethodGet, "/api/capture/preview/demo/"+sectionA+"/home", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpg-bytes", rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/capture/preview/demo/"+sectionA+"/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
