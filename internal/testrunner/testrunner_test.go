package testrunner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/compare"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionTS = "2024-03-01T10-00-00-000Z"

type testHarness struct {
	runner  *Runner
	gateway *storage.Gateway
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	gw := storage.NewGateway(config.StorageConfig{StoragePath: t.TempDir()}, zerolog.Nop())
	require.NoError(t, gw.CreateProject("demo"))

	engine := compare.NewEngine(gw, zerolog.Nop(), config.NewDefaultDifferConfig(), config.NewDefaultCompareConfig())
	store := NewResultStore(gw, zerolog.Nop())
	runner := NewRunner(gw, engine, store, config.NewDefaultTestRunnerConfig(), zerolog.Nop())
	return &testHarness{runner: runner, gateway: gw}
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

func (h *testHarness) makeSection(t *testing.T, section string) {
	t.Helper()
	dir, err := h.gateway.SectionDir("demo", section)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
}

func usersScreen(status string) map[string]string {
	return map[string]string{
		"meta.json": `{"url":"https://x/users","type":"page"}`,
		"dom.json":  `{"t":"body","c":[{"t":"#text","a":{"text":"Users"}}]}`,
		"apis.json": `[{"m":"get","u":"https://x/api/users","s":` + status + `}]`,
	}
}

func TestRun_APIStatusRegression(t *testing.T) {
	h := newTestHarness(t)
	h.makeSection(t, sectionTS)
	h.writeScreen(t, config.MainSectionName, "users", usersScreen("200"))
	h.writeScreen(t, sectionTS, "users", usersScreen("500"))

	thresholds := &models.TestThresholds{DOM: 95, API: 100, Visual: 90}
	result, err := h.runner.Run(context.Background(), RunOptions{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Thresholds:       thresholds,
	})
	require.NoError(t, err)

	assert.Less(t, result.APIScore, 100.0)
	assert.False(t, result.Passed)
	assert.Equal(t, *thresholds, result.Thresholds, "thresholds echoed verbatim")

	require.Len(t, result.Screens, 1)
	assert.False(t, result.Screens[0].Passed)
	assert.Equal(t, 100.0, result.Screens[0].DOMScore)

	// The run is persisted.
	stored, err := h.runner.Store().Get("demo", result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, stored.ID)
	assert.Equal(t, *thresholds, stored.Thresholds)
}

func TestRun_IdenticalSectionPasses(t *testing.T) {
	h := newTestHarness(t)
	h.makeSection(t, sectionTS)
	h.writeScreen(t, config.MainSectionName, "users", usersScreen("200"))
	h.writeScreen(t, sectionTS, "users", usersScreen("200"))

	result, err := h.runner.Run(context.Background(), RunOptions{
		Project:          "demo",
		SectionTimestamp: sectionTS,
	})
	require.NoError(t, err)

	assert.True(t, result.Passed)
	assert.Equal(t, 100.0, result.DOMScore)
	assert.Equal(t, 100.0, result.APIScore)
	assert.Equal(t, 100.0, result.OverallScore)
}

func TestRun_VisualScoreSuppliedExternally(t *testing.T) {
	h := newTestHarness(t)
	h.makeSection(t, sectionTS)
	h.writeScreen(t, config.MainSectionName, "users", usersScreen("200"))
	h.writeScreen(t, sectionTS, "users", usersScreen("200"))

	result, err := h.runner.Run(context.Background(), RunOptions{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		VisualScores:     map[string]float64{"users": 42},
	})
	require.NoError(t, err)

	assert.Equal(t, 42.0, result.VisualScore)
	assert.False(t, result.Passed, "visual score below the default 90 threshold")
}

func TestRun_WeightsShiftOverallScore(t *testing.T) {
	h := newTestHarness(t)
	h.makeSection(t, sectionTS)
	h.writeScreen(t, config.MainSectionName, "users", usersScreen("200"))
	h.writeScreen(t, sectionTS, "users", usersScreen("200"))

	weights := &models.TestWeights{DOM: 0, API: 0, Visual: 1}
	result, err := h.runner.Run(context.Background(), RunOptions{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Weights:          weights,
		VisualScores:     map[string]float64{"users": 40},
	})
	require.NoError(t, err)

	// Equal weighting would land at (100+100+40)/3.
	assert.Equal(t, 40.0, result.OverallScore)
	assert.Equal(t, *weights, result.Weights)

	stored, err := h.runner.Store().Get("demo", result.ID)
	require.NoError(t, err)
	assert.Equal(t, *weights, stored.Weights)
}

func TestRun_ZeroWeightsFallBackToEqual(t *testing.T) {
	h := newTestHarness(t)
	h.makeSection(t, sectionTS)
	h.writeScreen(t, config.MainSectionName, "users", usersScreen("200"))
	h.writeScreen(t, sectionTS, "users", usersScreen("200"))

	result, err := h.runner.Run(context.Background(), RunOptions{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Weights:          &models.TestWeights{},
	})
	require.NoError(t, err)

	assert.Equal(t, models.DefaultTestWeights(), result.Weights)
	assert.Equal(t, 100.0, result.OverallScore)
}

func TestRun_MissingSection(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.runner.Run(context.Background(), RunOptions{
		Project:          "demo",
		SectionTimestamp: sectionTS,
	})
	assert.True(t, errorwrapper.IsNotFound(err))
}

func TestRunAll_SkipsReplaySections(t *testing.T) {
	h := newTestHarness(t)
	h.writeScreen(t, config.MainSectionName, "users", usersScreen("200"))

	replayTS := "2024-03-02T10-00-00-000Z_replay"
	h.makeSection(t, sectionTS)
	h.writeScreen(t, sectionTS, "users", usersScreen("200"))
	h.makeSection(t, replayTS)
	h.writeScreen(t, replayTS, "users", usersScreen("200"))

	results, err := h.runner.RunAll(context.Background(), "demo", RunOptions{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, sectionTS, results[0].SectionTimestamp)
}

func TestStatistics_FoldHistory(t *testing.T) {
	h := newTestHarness(t)
	h.writeScreen(t, config.MainSectionName, "users", usersScreen("200"))

	passing := "2024-03-01T10-00-00-000Z"
	failing := "2024-03-02T10-00-00-000Z"
	h.makeSection(t, passing)
	h.writeScreen(t, passing, "users", usersScreen("200"))
	h.makeSection(t, failing)
	h.writeScreen(t, failing, "users", usersScreen("500"))

	_, err := h.runner.Run(context.Background(), RunOptions{Project: "demo", SectionTimestamp: passing})
	require.NoError(t, err)
	_, err = h.runner.Run(context.Background(), RunOptions{Project: "demo", SectionTimestamp: failing})
	require.NoError(t, err)

	stats, err := h.runner.Store().Statistics("demo")
	require.NoError(t, err)

	results, total, err := h.runner.Store().List("demo", 1, 10)
	require.NoError(t, err)

	assert.Equal(t, stats.Total, total)
	assert.Equal(t, stats.Total, len(results))
	passed := 0
	for _, result := range results {
		if result.Passed {
			passed++
		}
	}
	assert.Equal(t, stats.Passed, passed)
	assert.Equal(t, stats.Failed, stats.Total-stats.Passed)
	assert.Equal(t, failing, results[0].SectionTimestamp, "newest first")
}

func TestStore_ListPaginationAndDelete(t *testing.T) {
	h := newTestHarness(t)
	store := h.runner.Store()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append("demo", &models.TestResult{
			ID:     string(rune('a' + i)),
			Passed: i%2 == 0,
		}))
	}

	page1, total, err := store.List("demo", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "e", page1[0].ID)

	page3, _, err := store.List("demo", 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "a", page3[0].ID)

	require.NoError(t, store.Delete("demo", "c"))
	_, _, err = store.List("demo", 1, 10)
	require.NoError(t, err)
	_, err = store.Get("demo", "c")
	assert.True(t, errorwrapper.IsNotFound(err))

	err = store.Delete("demo", "ghost")
	assert.True(t, errorwrapper.IsNotFound(err))
}
