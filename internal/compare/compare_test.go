package compare

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sectionA = "2024-01-01T00-00-00-000Z"
	sectionB = "2024-01-02T00-00-00-000Z"
)

type testHarness struct {
	engine  *Engine
	gateway *storage.Gateway
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	gw := storage.NewGateway(config.StorageConfig{StoragePath: t.TempDir()}, zerolog.Nop())
	require.NoError(t, gw.CreateProject("demo"))
	engine := NewEngine(gw, zerolog.Nop(), config.NewDefaultDifferConfig(), config.NewDefaultCompareConfig())
	return &testHarness{engine: engine, gateway: gw}
}

func (h *testHarness) sectionDir(t *testing.T, section string) string {
	t.Helper()
	dir, err := h.gateway.SectionDir("demo", section)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func writeScreen(t *testing.T, sectionDir, relPath string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(sectionDir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func pageScreen(url, dom string) map[string]string {
	return map[string]string{
		"meta.json": `{"url":"` + url + `","type":"page"}`,
		"dom.json":  dom,
	}
}

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name     string
		meta     *models.ScreenMeta
		relPath  string
		expected string
	}{
		{
			"lowercased pathname and type",
			&models.ScreenMeta{URL: "https://X.example/Dashboard", Type: "Page"},
			"dashboard",
			"/dashboard::page",
		},
		{
			"tab discriminator",
			&models.ScreenMeta{URL: "https://x/settings?tab=Billing&other=1", Type: "tab"},
			"settings",
			"/settings?tab=Billing::tab",
		},
		{
			"dialog folds into modal",
			&models.ScreenMeta{URL: "https://x/confirm", Type: "dialog"},
			"confirm",
			"/confirm::modal",
		},
		{
			"missing url falls back to folder",
			&models.ScreenMeta{Type: "page"},
			"Nested/Screen",
			"folder::nested/screen",
		},
		{
			"nil meta falls back to folder",
			nil,
			"orphan",
			"folder::orphan",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveIdentity(tc.meta, tc.relPath))
		})
	}
}

func TestCompareSections_IdenticalSections(t *testing.T) {
	h := newTestHarness(t)
	dom := `{"t":"body","c":[{"t":"#text","a":{"text":"hello"}}]}`

	for _, section := range []string{sectionA, sectionB} {
		dir := h.sectionDir(t, section)
		writeScreen(t, dir, "dashboard", pageScreen("https://x/dashboard", dom))
		writeScreen(t, dir, "settings", pageScreen("https://x/settings", dom))
	}

	result, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)

	assert.Equal(t, models.CompareSummary{
		Total1: 2, Total2: 2, Matched: 2, Unchanged: 2,
	}, result.Summary)
	for _, item := range result.Items {
		assert.Equal(t, models.StatusUnchanged, item.Status)
	}
}

func TestCompareSections_MissingSection(t *testing.T) {
	h := newTestHarness(t)
	h.sectionDir(t, sectionA)

	_, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	assert.True(t, errorwrapper.IsNotFound(err))
}

func TestCompareSections_AddedScreen(t *testing.T) {
	h := newTestHarness(t)
	dom := `{"t":"body"}`

	dirA := h.sectionDir(t, sectionA)
	writeScreen(t, dirA, "home", pageScreen("https://x/home", dom))

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "home", pageScreen("https://x/home", dom))
	writeScreen(t, dirB, "settings", pageScreen("https://x/settings", dom))

	result, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Added)
	var added *models.CompareItem
	for _, item := range result.Items {
		if item.Status == models.StatusAdded {
			added = item
		}
	}
	require.NotNil(t, added)
	assert.Equal(t, "settings", added.Path)
	assert.Nil(t, added.Page1)
	require.NotNil(t, added.Page2)
}

func TestCompareSections_ModalPageCollision(t *testing.T) {
	h := newTestHarness(t)

	dirA := h.sectionDir(t, sectionA)
	writeScreen(t, dirA, "confirm", map[string]string{
		"meta.json": `{"url":"https://x/confirm","type":"page"}`,
		"dom.json":  `{"t":"body"}`,
	})

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "confirm", map[string]string{
		"meta.json": `{"url":"https://x/confirm","type":"modal"}`,
		"dom.json":  `{"t":"body"}`,
	})

	result, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Added)
	assert.Equal(t, 1, result.Summary.Removed)
	assert.Equal(t, 0, result.Summary.Changed)
	assert.Equal(t, 0, result.Summary.Matched)
}

func TestCompareSections_ChangedBySize(t *testing.T) {
	h := newTestHarness(t)

	dirA := h.sectionDir(t, sectionA)
	writeScreen(t, dirA, "home", pageScreen("https://x/home", `{"t":"body","c":[{"t":"#text","a":{"text":"one"}}]}`))

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "home", pageScreen("https://x/home", `{"t":"body","c":[{"t":"#text","a":{"text":"another"}}]}`))

	result, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.Equal(t, models.StatusChanged, item.Status)
	assert.Nil(t, item.Diff, "shallow compare carries no diff body")
	require.NotNil(t, item.MatchInfo)
	assert.Equal(t, "ui artifact size mismatch", item.MatchInfo.Reason)
}

func TestCompareSections_SignatureHashDecides(t *testing.T) {
	h := newTestHarness(t)
	dom := `{"t":"body"}`

	dirA := h.sectionDir(t, sectionA)
	writeScreen(t, dirA, "home", map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page","signatureHash":"aaa"}`,
		"dom.json":  dom,
	})

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "home", map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page","signatureHash":"bbb"}`,
		"dom.json":  dom,
	})

	result, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, models.StatusChanged, result.Items[0].Status)
	assert.Equal(t, "signature hash mismatch", result.Items[0].MatchInfo.Reason)
}

func TestCompareSections_NoRemovedAgainstMain(t *testing.T) {
	h := newTestHarness(t)
	dom := `{"t":"body"}`

	mainDir, err := h.gateway.RequireSection("demo", config.MainSectionName)
	require.NoError(t, err)
	writeScreen(t, mainDir, "home", pageScreen("https://x/home", dom))
	writeScreen(t, mainDir, "legacy", pageScreen("https://x/legacy", dom))

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "home", pageScreen("https://x/home", dom))

	result, err := h.engine.CompareSections(context.Background(), "demo", config.MainSectionName, sectionB)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Summary.Removed, "main screens missing from the section are not removals")
	assert.Equal(t, 1, result.Summary.Matched)
}

func TestCompareSections_DeduplicatesByScore(t *testing.T) {
	h := newTestHarness(t)

	dirA := h.sectionDir(t, sectionA)
	// Two sibling captures of the same screen; the one with APIs wins.
	writeScreen(t, dirA, "home-bare", pageScreen("https://x/home", `{"t":"body"}`))
	writeScreen(t, dirA, "home-rich", map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page"}`,
		"dom.json":  `{"t":"body"}`,
		"apis.json": `[]`,
	})

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "home-rich", map[string]string{
		"meta.json": `{"url":"https://x/home","type":"page"}`,
		"dom.json":  `{"t":"body"}`,
		"apis.json": `[]`,
	})

	result, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Total1)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "home-rich", result.Items[0].Page1.Path)
	assert.Equal(t, models.StatusUnchanged, result.Items[0].Status)
}

func TestCompareSections_DeterministicOrdering(t *testing.T) {
	h := newTestHarness(t)
	dom := `{"t":"body"}`

	dirA := h.sectionDir(t, sectionA)
	writeScreen(t, dirA, "zeta", pageScreen("https://x/zeta", dom))
	writeScreen(t, dirA, "gone", pageScreen("https://x/gone", dom))

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "zeta", pageScreen("https://x/zeta", `{"t":"body","c":[]} `))
	writeScreen(t, dirB, "alpha", pageScreen("https://x/alpha", dom))

	first, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)
	second, err := h.engine.CompareSections(context.Background(), "demo", sectionA, sectionB)
	require.NoError(t, err)

	require.Len(t, first.Items, 3)
	assert.Equal(t, models.StatusChanged, first.Items[0].Status)
	assert.Equal(t, models.StatusAdded, first.Items[1].Status)
	assert.Equal(t, models.StatusRemoved, first.Items[2].Status)
	assert.Equal(t, first, second, "re-execution yields the same ordering")
}

func TestComparePage_DeepDiff(t *testing.T) {
	h := newTestHarness(t)

	dom1 := `{"t":"body","c":[{"t":"span","a":{"id":"balance"},"c":[{"t":"#text","a":{"text":"Balance: 1,000"}}]}]}`
	dom2 := `{"t":"body","c":[{"t":"span","a":{"id":"balance"},"c":[{"t":"#text","a":{"text":"Balance: 1,200"}}]}]}`

	dirA := h.sectionDir(t, sectionA)
	writeScreen(t, dirA, "dashboard", map[string]string{
		"meta.json": `{"url":"https://x/dashboard","type":"page"}`,
		"dom.json":  dom1,
		"apis.json": `[{"m":"get","u":"https://x/api/balance","s":200}]`,
	})

	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "dashboard", map[string]string{
		"meta.json": `{"url":"https://x/dashboard","type":"page"}`,
		"dom.json":  dom2,
		"apis.json": `[{"m":"get","u":"https://x/api/balance","s":500}]`,
	})

	diff, err := h.engine.ComparePage(context.Background(), "demo", sectionA, sectionB, "dashboard", "dashboard")
	require.NoError(t, err)

	assert.True(t, diff.HasChanges)
	require.NotNil(t, diff.DOM)
	require.Contains(t, diff.DOM.Categories, "numbers")
	assert.Equal(t, 1, diff.DOM.Categories["numbers"].Changed)

	require.NotNil(t, diff.API)
	require.Len(t, diff.API.Changed, 1)
	assert.Equal(t, 200, diff.API.Changed[0].StatusChanged.Old)
	assert.Equal(t, 500, diff.API.Changed[0].StatusChanged.New)
}

func TestComparePage_MissingArtifactsAbsorbed(t *testing.T) {
	h := newTestHarness(t)

	dirA := h.sectionDir(t, sectionA)
	writeScreen(t, dirA, "home", map[string]string{"meta.json": `{"url":"https://x/home","type":"page"}`})
	dirB := h.sectionDir(t, sectionB)
	writeScreen(t, dirB, "home", map[string]string{"meta.json": `{"url":"https://x/home","type":"page"}`})

	diff, err := h.engine.ComparePage(context.Background(), "demo", sectionA, sectionB, "home", "home")
	require.NoError(t, err)
	assert.Nil(t, diff.DOM)
	assert.False(t, diff.HasChanges)
}

func TestComparePage_RejectsEscapingPath(t *testing.T) {
	h := newTestHarness(t)
	h.sectionDir(t, sectionA)
	h.sectionDir(t, sectionB)

	_, err := h.engine.ComparePage(context.Background(), "demo", sectionA, sectionB, "../../../etc", "home")
	assert.True(t, errorwrapper.IsInvalidInput(err))
}
