package storage

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/models"
)

// Screen artifact names, new layout first. Read preference is new → old
// within each family.
var (
	metaFiles    = []string{"meta.json", "metadata.json"}
	uiFiles      = []string{"dom.json", "screen.html", filepath.Join("UI", "snapshot.json")}
	apiFiles     = []string{"apis.json", filepath.Join("API", "requests.json")}
	previewFiles = []string{filepath.Join("UI", "screenshot.jpg"), "screenshot.jpg", "preview.jpg"}
)

// screenMarkers are the files whose presence makes a directory a screen.
var screenMarkers = []string{"meta.json", "metadata.json", "dom.json", "screen.html", "apis.json"}

// ScreenRef is a lightweight handle to one screen directory.
type ScreenRef struct {
	RelPath    string
	Dir        string
	HasUI      bool
	UISize     int64
	HasAPI     bool
	APISize    int64
	HasPreview bool
}

// Score ranks duplicate screens resolving to the same identity; the richer
// capture wins.
func (r *ScreenRef) Score() int {
	score := 0
	if r.HasUI {
		score += 2
	}
	if r.HasAPI {
		score += 2
	}
	if r.HasPreview {
		score++
	}
	return score
}

// UIArtifact is the normalized UI representation of one screen: a structured
// tree when dom.json (or the legacy snapshot) exists, serialized HTML
// otherwise. At most one is set.
type UIArtifact struct {
	Tree *models.DOMNode
	HTML string
}

// EnumerateScreens walks every subdirectory of a section root. A directory
// is a screen iff it contains a UI/ subdirectory or any metadata artifact.
func (g *Gateway) EnumerateScreens(sectionDir string) ([]*ScreenRef, error) {
	if !g.files.FileExists(sectionDir) {
		return nil, errorwrapper.NewNotFoundError("section directory", sectionDir)
	}

	var screens []*ScreenRef
	err := filepath.WalkDir(sectionDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtree: skip, never fail the enumeration.
			return fs.SkipDir
		}
		if !d.IsDir() || path == sectionDir {
			return nil
		}
		if base := d.Name(); base == "UI" || base == "API" {
			return fs.SkipDir
		}

		if !g.isScreenDir(path) {
			return nil
		}

		rel, err := filepath.Rel(sectionDir, path)
		if err != nil {
			return nil
		}
		screens = append(screens, g.buildScreenRef(path, filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to enumerate screens under: "+sectionDir)
	}

	sort.Slice(screens, func(i, j int) bool { return screens[i].RelPath < screens[j].RelPath })
	return screens, nil
}

// isScreenDir checks the screen markers.
func (g *Gateway) isScreenDir(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, "UI")); err == nil && info.IsDir() {
		return true
	}
	for _, marker := range screenMarkers {
		if g.files.FileExists(filepath.Join(dir, marker)) {
			return true
		}
	}
	return false
}

// buildScreenRef stats the artifact families of one screen directory.
func (g *Gateway) buildScreenRef(dir, relPath string) *ScreenRef {
	ref := &ScreenRef{RelPath: relPath, Dir: dir}

	if path, size := firstExisting(dir, uiFiles); path != "" {
		ref.HasUI = true
		ref.UISize = size
	}
	if path, size := firstExisting(dir, apiFiles); path != "" {
		ref.HasAPI = true
		ref.APISize = size
	}
	if path, _ := firstExisting(dir, previewFiles); path != "" {
		ref.HasPreview = true
	}
	return ref
}

// LoadScreenMeta reads meta.json, falling back to metadata.json. A missing
// or unreadable file returns nil without error.
func (g *Gateway) LoadScreenMeta(dir string) *models.ScreenMeta {
	for _, name := range metaFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var meta models.ScreenMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			g.logger.Warn().Str("dir", dir).Str("file", name).Err(err).Msg("Malformed screen metadata")
			continue
		}
		return &meta
	}
	return nil
}

// LoadUIArtifact reads the screen's UI representation in preference order
// dom.json, screen.html, UI/snapshot.json. Unreadable artifacts yield a nil
// result, never an error: the screen is treated as UI-absent.
func (g *Gateway) LoadUIArtifact(dir string) *UIArtifact {
	for _, name := range uiFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if strings.HasSuffix(name, ".html") {
			return &UIArtifact{HTML: string(data)}
		}

		var tree models.DOMNode
		if err := json.Unmarshal(data, &tree); err != nil {
			g.logger.Warn().Str("path", path).Err(err).Msg("Malformed DOM artifact")
			continue
		}
		return &UIArtifact{Tree: &tree}
	}
	return nil
}

// LoadAPICalls reads the screen's recorded API calls, normalizing every
// historical shape. Missing or unreadable artifacts yield an empty list.
func (g *Gateway) LoadAPICalls(dir string) []*models.APICall {
	for _, name := range apiFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var calls []*models.APICall
		if err := json.Unmarshal(data, &calls); err != nil {
			// Some captures wrap the list in {"requests": [...]}.
			var wrapped struct {
				Requests []*models.APICall `json:"requests"`
			}
			if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.Requests == nil {
				g.logger.Warn().Str("path", path).Msg("Malformed API artifact")
				continue
			}
			calls = wrapped.Requests
		}
		return calls
	}
	return nil
}

// PreviewPath returns the path of the screen's preview image, if any.
func (g *Gateway) PreviewPath(dir string) string {
	for _, name := range previewFiles {
		path := filepath.Join(dir, name)
		if g.files.FileExists(path) {
			return path
		}
	}
	return ""
}

// ResolveScreenDir joins a section-relative screen path, refusing anything
// that could escape the section directory.
func ResolveScreenDir(sectionDir, screenPath string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean(screenPath))
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "/") ||
		cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errorwrapper.NewValidationError("screenPath", screenPath, "screen path escapes the section")
	}
	return filepath.Join(sectionDir, filepath.FromSlash(cleaned)), nil
}

func firstExisting(dir string, names []string) (string, int64) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, info.Size()
		}
	}
	return "", 0
}
