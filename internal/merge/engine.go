package merge

import (
	"context"
	"path/filepath"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/rs/zerolog"
)

// Engine merges selected screens from a section into the main baseline and
// reconciles the project flow graph. Merges serialize per project.
type Engine struct {
	logger  zerolog.Logger
	gateway *storage.Gateway
}

// NewEngine creates a merge engine on top of the storage gateway.
func NewEngine(gateway *storage.Gateway, logger zerolog.Logger) *Engine {
	return &Engine{
		logger:  logger.With().Str("component", "MergeEngine").Logger(),
		gateway: gateway,
	}
}

// Options parameterize one merge.
type Options struct {
	Project          string
	SectionTimestamp string
	// Folders lists flow node ids to merge. Empty means merge all.
	Folders []string
	// DeleteAfter removes the source section when every folder succeeded.
	DeleteAfter bool
}

// folderTarget is one resolved merge folder: the node id and its directory
// path relative to the section root.
type folderTarget struct {
	id   string
	path string
}

// Merge copies the selected folders into main and reconciles flow.json.
// Per-folder failures are absorbed into the result; the flow is reconciled
// only for folders that copied successfully.
func (e *Engine) Merge(ctx context.Context, opts Options) (*models.MergeResult, error) {
	sectionDir, mainDir, sectionFlow, err := e.prepare(opts)
	if err != nil {
		return nil, err
	}

	targets, err := e.resolveTargets(sectionDir, sectionFlow, opts.Folders)
	if err != nil {
		return nil, err
	}

	if !e.gateway.Locks().TryAcquire(opts.Project) {
		return nil, errorwrapper.NewConflictError("another merge is in progress for project: " + opts.Project)
	}
	defer e.gateway.Locks().Release(opts.Project)

	result := &models.MergeResult{Success: true}
	merged := make(map[string]bool, len(targets))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		folderResult := &models.MergeFolderResult{Folder: target.id, Path: target.path}
		if err := e.copyFolder(sectionDir, mainDir, target.path); err != nil {
			folderResult.Error = err.Error()
			result.Success = false
			e.logger.Warn().Str("project", opts.Project).Str("folder", target.id).Err(err).Msg("Merge folder failed")
		} else {
			folderResult.Success = true
			merged[target.id] = true
		}
		result.Folders = append(result.Folders, folderResult)
	}

	if len(merged) > 0 {
		if err := e.reconcileFlow(opts.Project, sectionFlow, merged, result); err != nil {
			result.Success = false
			e.logger.Error().Str("project", opts.Project).Err(err).Msg("Flow reconciliation failed")
		}
	}

	if opts.DeleteAfter && result.Success {
		if err := e.gateway.DeleteSection(opts.Project, opts.SectionTimestamp); err != nil {
			result.Success = false
			e.logger.Error().Str("project", opts.Project).Err(err).Msg("Source section delete failed")
		} else {
			result.SectionDeleted = true
		}
	}

	e.logger.Info().
		Str("project", opts.Project).
		Str("section", opts.SectionTimestamp).
		Bool("success", result.Success).
		Int("nodesAdded", result.NodesAdded).
		Int("edgesAdded", result.EdgesAdded).
		Msg("Merge finished")
	return result, nil
}

// Preview reports per-folder what a merge would do without touching the
// filesystem.
func (e *Engine) Preview(opts Options) ([]*models.MergePreviewEntry, error) {
	sectionDir, mainDir, sectionFlow, err := e.prepare(opts)
	if err != nil {
		return nil, err
	}

	targets, err := e.resolveTargets(sectionDir, sectionFlow, opts.Folders)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.MergePreviewEntry, 0, len(targets))
	for _, target := range targets {
		entry := &models.MergePreviewEntry{
			Folder: target.id,
			Path:   target.path,
			Action: models.MergeActionCreate,
		}
		if size, err := e.gateway.Files().GetDirectorySize(filepath.Join(sectionDir, filepath.FromSlash(target.path))); err == nil {
			entry.SourceSize = size
		}

		destDir := filepath.Join(mainDir, filepath.FromSlash(target.path))
		if e.gateway.Files().FileExists(destDir) {
			entry.Action = models.MergeActionOverwrite
			if size, err := e.gateway.Files().GetDirectorySize(destDir); err == nil {
				entry.DestSize = &size
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// prepare validates the request and loads the section flow.
func (e *Engine) prepare(opts Options) (sectionDir, mainDir string, sectionFlow *models.FlowGraph, err error) {
	if err = storage.ValidateSectionTimestamp(opts.SectionTimestamp, false); err != nil {
		return "", "", nil, err
	}
	if sectionDir, err = e.gateway.RequireSection(opts.Project, opts.SectionTimestamp); err != nil {
		return "", "", nil, err
	}
	if mainDir, err = e.gateway.RequireSection(opts.Project, config.MainSectionName); err != nil {
		return "", "", nil, err
	}
	if sectionFlow, err = e.gateway.LoadSectionFlow(opts.Project, opts.SectionTimestamp); err != nil {
		return "", "", nil, err
	}
	return sectionDir, mainDir, sectionFlow, nil
}

// resolveTargets maps folder ids to section-relative paths via the section
// flow, falling back to the flat id path for legacy captures. An empty
// folder list merges everything the flow names, or the section's top-level
// directories when there is no flow.
func (e *Engine) resolveTargets(sectionDir string, flow *models.FlowGraph, folders []string) ([]*folderTarget, error) {
	if len(folders) == 0 {
		folders = e.allFolders(sectionDir, flow)
	}

	targets := make([]*folderTarget, 0, len(folders))
	for _, id := range folders {
		if id == "" {
			return nil, errorwrapper.NewValidationError("folders", id, "empty folder id")
		}

		path := id
		if node := flow.NodeByID(id); node != nil {
			if node.Type == models.FlowNodeTypeStart {
				return nil, errorwrapper.NewValidationError("folders", id, "the start node is never merged")
			}
			path = node.ScreenPath()
		}

		// Nested path first, flat id as fallback.
		if !e.gateway.Files().FileExists(filepath.Join(sectionDir, filepath.FromSlash(path))) {
			if path != id && e.gateway.Files().FileExists(filepath.Join(sectionDir, id)) {
				path = id
			} else {
				return nil, errorwrapper.NewValidationError("folders", id, "folder not found in section")
			}
		}
		targets = append(targets, &folderTarget{id: id, path: filepath.ToSlash(path)})
	}
	return targets, nil
}

// allFolders derives the merge-all set from the flow nodes, excluding the
// start node, or from the section's top-level directories without a flow.
func (e *Engine) allFolders(sectionDir string, flow *models.FlowGraph) []string {
	var folders []string
	for _, node := range flow.Nodes {
		if node.Type == models.FlowNodeTypeStart {
			continue
		}
		folders = append(folders, node.ID)
	}
	if len(folders) > 0 {
		return folders
	}

	names, err := e.gateway.Files().ListSubdirectories(sectionDir)
	if err != nil {
		return nil
	}
	return names
}

// copyFolder transactionally replaces the target: remove the existing
// destination, then copy the source subtree.
func (e *Engine) copyFolder(sectionDir, mainDir, relPath string) error {
	src := filepath.Join(sectionDir, filepath.FromSlash(relPath))
	dst := filepath.Join(mainDir, filepath.FromSlash(relPath))

	if e.gateway.Files().FileExists(dst) {
		if err := e.gateway.Files().RemoveDirectory(dst); err != nil {
			return err
		}
	}
	if err := e.gateway.Files().EnsureDirectory(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return e.gateway.Files().CopyDirectory(src, dst)
}

// reconcileFlow folds the merged section nodes and their edges into the
// project flow and writes it atomically.
func (e *Engine) reconcileFlow(project string, sectionFlow *models.FlowGraph, merged map[string]bool, result *models.MergeResult) error {
	mainFlow, err := e.gateway.LoadProjectFlow(project)
	if err != nil {
		return err
	}

	if mainFlow.Domain == "" {
		mainFlow.Domain = sectionFlow.Domain
	}

	for _, node := range sectionFlow.Nodes {
		if !merged[node.ID] && node.Type != models.FlowNodeTypeStart {
			continue
		}
		if existing := mainFlow.NodeByID(node.ID); existing != nil {
			if !nodesEqual(existing, node) {
				*existing = *node
				result.NodesUpdated++
			}
			continue
		}
		mainFlow.Nodes = append(mainFlow.Nodes, node)
		result.NodesAdded++
	}

	for _, edge := range sectionFlow.Edges {
		if !mainFlow.HasNode(edge.From) || !mainFlow.HasNode(edge.To) {
			continue
		}
		if existing := findEdge(mainFlow, edge.From, edge.To); existing != nil {
			*existing = *edge
			continue
		}
		mainFlow.Edges = append(mainFlow.Edges, edge)
		result.EdgesAdded++
	}

	return e.gateway.SaveProjectFlow(project, mainFlow)
}

func findEdge(flow *models.FlowGraph, from, to string) *models.FlowEdge {
	for _, edge := range flow.Edges {
		if edge.From == from && edge.To == to {
			return edge
		}
	}
	return nil
}

// nodesEqual compares the captured fields of two flow nodes.
func nodesEqual(a, b *models.FlowNode) bool {
	if a.Type != b.Type || a.Name != b.Name || a.URL != b.URL ||
		a.Path != b.Path || a.NestedPath != b.NestedPath {
		return false
	}
	if len(a.Extra) != len(b.Extra) {
		return false
	}
	for key, value := range a.Extra {
		other, ok := b.Extra[key]
		if !ok || string(value) != string(other) {
			return false
		}
	}
	return true
}
