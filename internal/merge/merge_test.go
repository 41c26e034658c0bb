package merge

import (
	"context"
	"encoding/json"
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

const sectionTS = "2024-05-01T12-00-00-000Z"

type testHarness struct {
	engine  *Engine
	gateway *storage.Gateway
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	gw := storage.NewGateway(config.StorageConfig{StoragePath: t.TempDir()}, zerolog.Nop())
	require.NoError(t, gw.CreateProject("demo"))
	return &testHarness{engine: NewEngine(gw, zerolog.Nop()), gateway: gw}
}

func (h *testHarness) sectionDir(t *testing.T, section string) string {
	t.Helper()
	dir, err := h.gateway.SectionDir("demo", section)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func (h *testHarness) writeScreen(t *testing.T, sectionDir, relPath, content string) {
	t.Helper()
	dir := filepath.Join(sectionDir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.json"), []byte(content), 0o644))
}

func (h *testHarness) writeSectionFlow(t *testing.T, sectionDir string, flow *models.FlowGraph) {
	t.Helper()
	data, err := json.Marshal(flow)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(sectionDir, storage.FlowFileName), data, 0o644))
}

// scenarioFlow builds the section flow start→login→home→settings.
func scenarioFlow() *models.FlowGraph {
	return &models.FlowGraph{
		Domain: "x.example",
		Nodes: []*models.FlowNode{
			{ID: "start", Type: models.FlowNodeTypeStart},
			{ID: "login", Type: "page", URL: "https://x/login"},
			{ID: "home", Type: "page", URL: "https://x/home"},
			{ID: "settings", Type: "page", URL: "https://x/settings"},
		},
		Edges: []*models.FlowEdge{
			{From: "login", To: "home"},
			{From: "home", To: "settings"},
		},
	}
}

func (h *testHarness) seedScenario(t *testing.T) {
	t.Helper()
	sectionDir := h.sectionDir(t, sectionTS)
	for _, id := range []string{"login", "home", "settings"} {
		h.writeScreen(t, sectionDir, id, `{"url":"https://x/`+id+`","type":"page"}`)
	}
	h.writeSectionFlow(t, sectionDir, scenarioFlow())

	mainDir, err := h.gateway.RequireSection("demo", config.MainSectionName)
	require.NoError(t, err)
	h.writeScreen(t, mainDir, "login", `{"url":"https://x/login","type":"page"}`)
	h.writeScreen(t, mainDir, "home", `{"url":"https://x/home","type":"page"}`)

	mainFlow := &models.FlowGraph{
		Domain: "x.example",
		Nodes: []*models.FlowNode{
			{ID: "start", Type: models.FlowNodeTypeStart},
			{ID: "login", Type: "page", URL: "https://x/login"},
			{ID: "home", Type: "page", URL: "https://x/home"},
		},
		Edges: []*models.FlowEdge{{From: "login", To: "home"}},
	}
	require.NoError(t, h.gateway.SaveProjectFlow("demo", mainFlow))
}

func TestMerge_FlowReconciliation(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	result, err := h.engine.Merge(context.Background(), Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Folders:          []string{"settings"},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.Folders, 1)
	assert.True(t, result.Folders[0].Success)

	mainDir, err := h.gateway.RequireSection("demo", config.MainSectionName)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(mainDir, "settings", "meta.json"))

	flow, err := h.gateway.LoadProjectFlow("demo")
	require.NoError(t, err)
	assert.True(t, flow.HasNode("settings"))
	assert.Equal(t, 1, result.NodesAdded)
	require.Len(t, flow.Edges, 2)
	assert.Equal(t, "home", flow.Edges[1].From)
	assert.Equal(t, "settings", flow.Edges[1].To)
	assert.Equal(t, 1, result.EdgesAdded)
}

func TestMerge_Idempotent(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	opts := Options{Project: "demo", SectionTimestamp: sectionTS, Folders: []string{"settings"}}

	first, err := h.engine.Merge(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := h.engine.Merge(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.Equal(t, 0, second.NodesAdded)
	assert.Equal(t, 0, second.NodesUpdated)
	assert.Equal(t, 0, second.EdgesAdded)

	flow, err := h.gateway.LoadProjectFlow("demo")
	require.NoError(t, err)
	assert.Len(t, flow.Nodes, 4)
	assert.Len(t, flow.Edges, 2)
}

func TestMerge_NestedPathWithFlatFallback(t *testing.T) {
	h := newTestHarness(t)
	sectionDir := h.sectionDir(t, sectionTS)

	flow := &models.FlowGraph{
		Nodes: []*models.FlowNode{
			{ID: "profile", Type: "page", NestedPath: "settings/profile"},
			{ID: "legacy", Type: "page", NestedPath: "missing/nested"},
		},
	}
	h.writeSectionFlow(t, sectionDir, flow)
	h.writeScreen(t, sectionDir, "settings/profile", `{"url":"https://x/profile"}`)
	// The legacy node's nested path does not exist; its flat id path does.
	h.writeScreen(t, sectionDir, "legacy", `{"url":"https://x/legacy"}`)

	result, err := h.engine.Merge(context.Background(), Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Folders:          []string{"profile", "legacy"},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	mainDir, err := h.gateway.RequireSection("demo", config.MainSectionName)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(mainDir, "settings", "profile", "meta.json"))
	assert.FileExists(t, filepath.Join(mainDir, "legacy", "meta.json"))
}

func TestMerge_UnknownFolderRejected(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	_, err := h.engine.Merge(context.Background(), Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Folders:          []string{"ghost"},
	})
	assert.True(t, errorwrapper.IsInvalidInput(err))
}

func TestMerge_StartNodeRejected(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	_, err := h.engine.Merge(context.Background(), Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Folders:          []string{"start"},
	})
	assert.True(t, errorwrapper.IsInvalidInput(err))
}

func TestMerge_AllDerivedFromFlow(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	result, err := h.engine.Merge(context.Background(), Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Len(t, result.Folders, 3, "every flow node except start")
}

func TestMerge_DeleteAfterOnlyOnFullSuccess(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	result, err := h.engine.Merge(context.Background(), Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		DeleteAfter:      true,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.SectionDeleted)
	_, err = h.gateway.RequireSection("demo", sectionTS)
	assert.True(t, errorwrapper.IsNotFound(err))
}

func TestMerge_ConflictWhileLocked(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	require.True(t, h.gateway.Locks().TryAcquire("demo"))
	defer h.gateway.Locks().Release("demo")

	_, err := h.engine.Merge(context.Background(), Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Folders:          []string{"settings"},
	})
	assert.True(t, errorwrapper.IsConflict(err))
}

func TestPreview_CreateAndOverwrite(t *testing.T) {
	h := newTestHarness(t)
	h.seedScenario(t)

	entries, err := h.engine.Preview(Options{
		Project:          "demo",
		SectionTimestamp: sectionTS,
		Folders:          []string{"home", "settings"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byFolder := make(map[string]*models.MergePreviewEntry)
	for _, entry := range entries {
		byFolder[entry.Folder] = entry
	}

	assert.Equal(t, models.MergeActionOverwrite, byFolder["home"].Action)
	require.NotNil(t, byFolder["home"].DestSize)
	assert.Positive(t, byFolder["home"].SourceSize)

	assert.Equal(t, models.MergeActionCreate, byFolder["settings"].Action)
	assert.Nil(t, byFolder["settings"].DestSize)

	// Preview never mutates main.
	mainDir, err := h.gateway.RequireSection("demo", config.MainSectionName)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(mainDir, "settings", "meta.json"))
}
