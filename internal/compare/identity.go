package compare

import (
	"net/url"
	"strings"

	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
)

// FolderIdentityPrefix marks identities derived from the directory path when
// a screen carries no URL.
const FolderIdentityPrefix = "folder::"

// screenEntry pairs one enumerated screen with its metadata and identity.
type screenEntry struct {
	ref      *storage.ScreenRef
	meta     *models.ScreenMeta
	identity string
	info     *models.ScreenInfo
}

// ResolveIdentity derives the deterministic screen identity: the lowercased
// URL pathname, an optional ?tab= discriminator, and the normalized screen
// type. Without a parseable URL it falls back to the relative folder path.
func ResolveIdentity(meta *models.ScreenMeta, relPath string) string {
	if meta == nil || meta.URL == "" {
		return FolderIdentityPrefix + strings.ToLower(relPath)
	}

	parsed, err := url.Parse(meta.URL)
	if err != nil || parsed.Path == "" {
		return FolderIdentityPrefix + strings.ToLower(relPath)
	}

	key := strings.ToLower(parsed.Path)
	if tab := parsed.Query().Get("tab"); tab != "" {
		key += "?tab=" + tab
	}
	return key + "::" + normalizeScreenType(meta.Type)
}

// normalizeScreenType folds dialog into modal so both modal-like types share
// an identity, and defaults untyped screens to page.
func normalizeScreenType(screenType string) string {
	switch t := strings.ToLower(screenType); t {
	case models.ScreenTypeDialog:
		return models.ScreenTypeModal
	case "":
		return models.ScreenTypePage
	default:
		return t
	}
}

func newScreenEntry(ref *storage.ScreenRef, meta *models.ScreenMeta) *screenEntry {
	info := &models.ScreenInfo{
		Path:    ref.RelPath,
		Name:    screenName(ref.RelPath, meta),
		HasUI:   ref.HasUI,
		HasAPI:  ref.HasAPI,
		UISize:  ref.UISize,
		APISize: ref.APISize,
	}
	if meta != nil {
		info.URL = meta.URL
		info.Type = meta.Type
		info.SignatureHash = meta.SignatureHash
	}
	return &screenEntry{
		ref:      ref,
		meta:     meta,
		identity: ResolveIdentity(meta, ref.RelPath),
		info:     info,
	}
}

// screenName prefers the captured title, falling back to the directory name.
func screenName(relPath string, meta *models.ScreenMeta) string {
	if meta != nil && meta.Title != "" {
		return meta.Title
	}
	if idx := strings.LastIndex(relPath, "/"); idx >= 0 {
		return relPath[idx+1:]
	}
	return relPath
}

// screenSide holds one section's screens after identity deduplication, in
// first-seen (lexicographic path) order.
type screenSide struct {
	byIdentity map[string]*screenEntry
	order      []string
}

// dedupByIdentity collapses sibling screens resolving to the same identity,
// keeping the richer capture. Ties keep the lexicographically earlier path.
func dedupByIdentity(entries []*screenEntry) *screenSide {
	side := &screenSide{byIdentity: make(map[string]*screenEntry, len(entries))}
	for _, entry := range entries {
		existing, seen := side.byIdentity[entry.identity]
		if !seen {
			side.byIdentity[entry.identity] = entry
			side.order = append(side.order, entry.identity)
			continue
		}
		if entry.ref.Score() > existing.ref.Score() {
			side.byIdentity[entry.identity] = entry
		}
	}
	return side
}
