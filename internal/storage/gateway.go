package storage

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/common/filemanager"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/rs/zerolog"
)

var (
	projectNameRegex = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
	// Basic-format ISO-8601 with colons replaced, optional replay marker.
	sectionTimestampRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}-\d{3}Z(_replay)?$`)
)

// ReplaySuffix marks replay sections, which batch test runs skip.
const ReplaySuffix = "_replay"

// Gateway is the single entry point to the project tree on disk. All path
// construction funnels through it so project names can never escape the
// storage root.
type Gateway struct {
	root   string
	files  *filemanager.FileManager
	locks  *ProjectLocks
	logger zerolog.Logger
}

// NewGateway creates a storage gateway rooted at the configured storage path.
func NewGateway(cfg config.StorageConfig, logger zerolog.Logger) *Gateway {
	componentLogger := logger.With().Str("component", "StorageGateway").Logger()
	return &Gateway{
		root:   filepath.Join(cfg.StoragePath, config.DefaultProjectsDirName),
		files:  filemanager.NewFileManager(componentLogger),
		locks:  NewProjectLocks(),
		logger: componentLogger,
	}
}

// Files exposes the underlying file manager for collaborating stores.
func (g *Gateway) Files() *filemanager.FileManager {
	return g.files
}

// Locks exposes the per-project lock map used by the merge engine.
func (g *Gateway) Locks() *ProjectLocks {
	return g.locks
}

// NormalizeProjectName validates and normalizes a project name. Names with
// path separators or characters outside [A-Za-z0-9 _-] are rejected.
func NormalizeProjectName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errorwrapper.NewValidationError("project", name, "project name is empty")
	}
	if !projectNameRegex.MatchString(trimmed) {
		return "", errorwrapper.NewValidationError("project", name, "project name contains invalid characters")
	}
	return trimmed, nil
}

// ValidateSectionTimestamp validates a section timestamp, allowing the main
// sentinel when allowMain is set.
func ValidateSectionTimestamp(timestamp string, allowMain bool) error {
	if allowMain && timestamp == config.MainSectionName {
		return nil
	}
	if !sectionTimestampRegex.MatchString(timestamp) {
		return errorwrapper.NewValidationError("section", timestamp, "malformed section timestamp")
	}
	return nil
}

// IsReplaySection reports whether the timestamp marks a replay section.
func IsReplaySection(timestamp string) bool {
	return strings.HasSuffix(timestamp, ReplaySuffix)
}

// ProjectDir resolves a project's root directory.
func (g *Gateway) ProjectDir(project string) (string, error) {
	name, err := NormalizeProjectName(project)
	if err != nil {
		return "", err
	}
	return filepath.Join(g.root, name), nil
}

// SectionDir resolves a section directory; "main" resolves to the baseline.
func (g *Gateway) SectionDir(project, section string) (string, error) {
	projectDir, err := g.ProjectDir(project)
	if err != nil {
		return "", err
	}
	if section == config.MainSectionName {
		return filepath.Join(projectDir, "main"), nil
	}
	if err := ValidateSectionTimestamp(section, false); err != nil {
		return "", err
	}
	return filepath.Join(projectDir, "sections", section), nil
}

// ProjectExists reports whether a project directory exists.
func (g *Gateway) ProjectExists(project string) bool {
	dir, err := g.ProjectDir(project)
	if err != nil {
		return false
	}
	return g.files.FileExists(dir)
}

// RequireProject fails with NotFound when the project is missing.
func (g *Gateway) RequireProject(project string) (string, error) {
	dir, err := g.ProjectDir(project)
	if err != nil {
		return "", err
	}
	if !g.files.FileExists(dir) {
		return "", errorwrapper.NewNotFoundError("project", project)
	}
	return dir, nil
}

// RequireSection fails with NotFound when the section is missing.
func (g *Gateway) RequireSection(project, section string) (string, error) {
	dir, err := g.SectionDir(project, section)
	if err != nil {
		return "", err
	}
	if !g.files.FileExists(dir) {
		return "", errorwrapper.NewNotFoundError("section", section)
	}
	return dir, nil
}

// ListProjects returns all project names sorted lexicographically.
func (g *Gateway) ListProjects() ([]string, error) {
	if !g.files.FileExists(g.root) {
		return []string{}, nil
	}
	names, err := g.files.ListSubdirectories(g.root)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// CreateProject creates the project skeleton (main/, sections/, tests/).
func (g *Gateway) CreateProject(project string) error {
	dir, err := g.ProjectDir(project)
	if err != nil {
		return err
	}
	if g.files.FileExists(dir) {
		return errorwrapper.NewConflictError("project already exists: " + project)
	}
	for _, sub := range []string{"main", "sections", "tests"} {
		if err := g.files.EnsureDirectory(filepath.Join(dir, sub), 0o755); err != nil {
			return err
		}
	}
	g.logger.Info().Str("project", project).Msg("Project created")
	return nil
}

// DeleteProject removes a project and everything it owns.
func (g *Gateway) DeleteProject(project string) error {
	dir, err := g.RequireProject(project)
	if err != nil {
		return err
	}
	return g.files.RemoveDirectory(dir)
}

// ListSections returns section timestamps sorted ascending. The timestamp
// format sorts chronologically as plain strings.
func (g *Gateway) ListSections(project string) ([]string, error) {
	projectDir, err := g.RequireProject(project)
	if err != nil {
		return nil, err
	}

	sectionsDir := filepath.Join(projectDir, "sections")
	if !g.files.FileExists(sectionsDir) {
		return []string{}, nil
	}

	names, err := g.files.ListSubdirectories(sectionsDir)
	if err != nil {
		return nil, err
	}

	var sections []string
	for _, name := range names {
		if sectionTimestampRegex.MatchString(name) {
			sections = append(sections, name)
		}
	}
	sort.Strings(sections)
	return sections, nil
}

// DeleteSection removes one section directory.
func (g *Gateway) DeleteSection(project, section string) error {
	dir, err := g.RequireSection(project, section)
	if err != nil {
		return err
	}
	if section == config.MainSectionName {
		return errorwrapper.NewValidationError("section", section, "main cannot be deleted")
	}
	return g.files.RemoveDirectory(dir)
}

// SectionSize returns the total byte size of a section directory.
func (g *Gateway) SectionSize(project, section string) (int64, error) {
	dir, err := g.RequireSection(project, section)
	if err != nil {
		return 0, err
	}
	return g.files.GetDirectorySize(dir)
}
