package models

// InlineSegment is one run of a character-level inline diff.
type InlineSegment struct {
	Op   string `json:"op"` // "equal", "insert", "delete"
	Text string `json:"text"`
}

// TextChange describes an element whose text content changed.
type TextChange struct {
	Signature   string          `json:"signature"`
	Tag         string          `json:"tag"`
	ContentType string          `json:"contentType,omitempty"`
	OldText     string          `json:"oldText"`
	NewText     string          `json:"newText"`
	InlineDiff  []InlineSegment `json:"inlineDiff,omitempty"`
}

// StyleDelta describes one changed style/position/colour property of an element.
type StyleDelta struct {
	Signature string  `json:"signature"`
	Property  string  `json:"property"`
	Old       string  `json:"old"`
	New       string  `json:"new"`
	Delta     float64 `json:"delta,omitempty"`
}

// CSS walk delta categories.
const (
	CSSCategoryColor      = "color"
	CSSCategoryTypography = "typography"
	CSSCategorySpacing    = "spacing"
	CSSCategoryPosition   = "position"
	CSSCategoryBorder     = "border"
	CSSCategoryLayout     = "layout"
	CSSCategoryOther      = "other"
)

// CSSDelta is one difference found by the parallel CSS tree walk.
type CSSDelta struct {
	Path     string `json:"path"` // slash-joined child indices from the root
	Tag      string `json:"tag"`
	Property string `json:"property"`
	Category string `json:"category"`
	Old      string `json:"old"`
	New      string `json:"new"`
}

// CategoryCount tallies changes per content classification.
type CategoryCount struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Changed int `json:"changed"`
}

// DOMDiffResult is the structured output of the DOM differ.
type DOMDiffResult struct {
	Added           []*DOMElement             `json:"added,omitempty"`
	Removed         []*DOMElement             `json:"removed,omitempty"`
	Modified        []*TextChange             `json:"modified,omitempty"`
	PositionChanged []*StyleDelta             `json:"positionChanged,omitempty"`
	ColorChanged    []*StyleDelta             `json:"colorChanged,omitempty"`
	StyleChanged    []*StyleDelta             `json:"styleChanged,omitempty"`
	CSSDeltas       []*CSSDelta               `json:"cssDeltas,omitempty"`
	Categories      map[string]*CategoryCount `json:"categories,omitempty"`
	TotalElements1  int                       `json:"totalElements1"`
	TotalElements2  int                       `json:"totalElements2"`
	ChangedElements int                       `json:"changedElements"`
	Similarity      float64                   `json:"similarity"`
	HasChanges      bool                      `json:"hasChanges"`
	Summary         string                    `json:"summary"`
}

// CountCategory records a change against the element's content classification.
func (r *DOMDiffResult) CountCategory(contentType, kind string) {
	if contentType == "" {
		return
	}
	if r.Categories == nil {
		r.Categories = make(map[string]*CategoryCount)
	}
	bucket := r.Categories[categoryKey(contentType)]
	if bucket == nil {
		bucket = &CategoryCount{}
		r.Categories[categoryKey(contentType)] = bucket
	}
	switch kind {
	case "added":
		bucket.Added++
	case "removed":
		bucket.Removed++
	case "changed":
		bucket.Changed++
	}
}

// categoryKey pluralizes the content type for the report-facing category map.
func categoryKey(contentType string) string {
	switch contentType {
	case ContentTypeNumber:
		return "numbers"
	case ContentTypeDate:
		return "dates"
	case ContentTypeTime:
		return "times"
	case ContentTypeLabel:
		return "labels"
	default:
		return "texts"
	}
}
