package apidiff

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/aleister1102/webdiff/internal/models"
)

// maxBodyValueLength caps rendered values in body diff entries.
const maxBodyValueLength = 100

// bodyDiffer walks two JSON bodies structurally up to a depth bound.
type bodyDiffer struct {
	maxDepth int
}

// DiffBodies compares two raw HTTP bodies. JSON bodies get a structural
// diff; everything else compares length first, then content. Myers is never
// run on HTTP bodies.
func (d *bodyDiffer) DiffBodies(body1, body2 json.RawMessage) []*models.BodyDiffEntry {
	if len(body1) == 0 && len(body2) == 0 {
		return nil
	}
	if string(body1) == string(body2) {
		return nil
	}

	var value1, value2 any
	err1 := json.Unmarshal(body1, &value1)
	err2 := json.Unmarshal(body2, &value2)

	if err1 != nil || err2 != nil {
		return d.diffOpaque(string(body1), string(body2))
	}

	var entries []*models.BodyDiffEntry
	d.walk(value1, value2, "", "", 1, &entries)
	return entries
}

// diffOpaque reports a non-JSON body change: length first, then content.
func (d *bodyDiffer) diffOpaque(text1, text2 string) []*models.BodyDiffEntry {
	if len(text1) != len(text2) {
		return []*models.BodyDiffEntry{{
			Path:           "",
			NormalizedPath: "",
			Type:           models.BodyDiffModified,
			Old:            fmt.Sprintf("length %d", len(text1)),
			New:            fmt.Sprintf("length %d", len(text2)),
		}}
	}
	return []*models.BodyDiffEntry{{
		Path:           "",
		NormalizedPath: "",
		Type:           models.BodyDiffModified,
		Old:            truncateValue(text1),
		New:            truncateValue(text2),
	}}
}

// walk recursively diffs two decoded JSON values. Depth beyond the bound
// reports no further differences.
func (d *bodyDiffer) walk(value1, value2 any, path, normalizedPath string, depth int, entries *[]*models.BodyDiffEntry) {
	if depth > d.maxDepth {
		return
	}

	switch v1 := value1.(type) {
	case map[string]any:
		v2, ok := value2.(map[string]any)
		if !ok {
			d.appendModified(entries, path, normalizedPath, value1, value2)
			return
		}
		for _, key := range unionMapKeys(v1, v2) {
			childPath := joinPath(path, key)
			childNorm := joinPath(normalizedPath, key)
			child1, in1 := v1[key]
			child2, in2 := v2[key]
			switch {
			case !in1:
				d.appendEntry(entries, childPath, childNorm, models.BodyDiffAdded, nil, child2)
			case !in2:
				d.appendEntry(entries, childPath, childNorm, models.BodyDiffRemoved, child1, nil)
			default:
				d.walk(child1, child2, childPath, childNorm, depth+1, entries)
			}
		}

	case []any:
		v2, ok := value2.([]any)
		if !ok {
			d.appendModified(entries, path, normalizedPath, value1, value2)
			return
		}
		shared := len(v1)
		if len(v2) < shared {
			shared = len(v2)
		}
		for i := 0; i < shared; i++ {
			d.walk(v1[i], v2[i], joinPath(path, strconv.Itoa(i)), joinPath(normalizedPath, "*"), depth+1, entries)
		}
		for i := shared; i < len(v1); i++ {
			d.appendEntry(entries, joinPath(path, strconv.Itoa(i)), joinPath(normalizedPath, "*"), models.BodyDiffRemoved, v1[i], nil)
		}
		for i := shared; i < len(v2); i++ {
			d.appendEntry(entries, joinPath(path, strconv.Itoa(i)), joinPath(normalizedPath, "*"), models.BodyDiffAdded, nil, v2[i])
		}

	default:
		if !scalarEqual(value1, value2) {
			d.appendModified(entries, path, normalizedPath, value1, value2)
		}
	}
}

func (d *bodyDiffer) appendModified(entries *[]*models.BodyDiffEntry, path, normalizedPath string, oldValue, newValue any) {
	d.appendEntry(entries, path, normalizedPath, models.BodyDiffModified, oldValue, newValue)
}

func (d *bodyDiffer) appendEntry(entries *[]*models.BodyDiffEntry, path, normalizedPath, entryType string, oldValue, newValue any) {
	entry := &models.BodyDiffEntry{
		Path:           path,
		NormalizedPath: normalizedPath,
		Type:           entryType,
	}
	switch entryType {
	case models.BodyDiffAdded:
		entry.Value = renderValue(newValue)
	case models.BodyDiffRemoved:
		entry.Value = renderValue(oldValue)
	default:
		entry.Old = renderValue(oldValue)
		entry.New = renderValue(newValue)
	}
	*entries = append(*entries, entry)
}

func scalarEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return renderValue(a) == renderValue(b) && fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

func renderValue(value any) string {
	if value == nil {
		return "null"
	}
	switch v := value.(type) {
	case string:
		return truncateValue(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return truncateValue(fmt.Sprintf("%v", v))
		}
		return truncateValue(string(data))
	}
}

func truncateValue(value string) string {
	if len(value) <= maxBodyValueLength {
		return value
	}
	return value[:maxBodyValueLength] + "..."
}

func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "." + segment
}

func unionMapKeys(m1, m2 map[string]any) []string {
	seen := make(map[string]bool, len(m1)+len(m2))
	var keys []string
	for key := range m1 {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key := range m2 {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
