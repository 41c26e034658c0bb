package models

// CompareStatus classifies one screen in a comparison result.
type CompareStatus string

const (
	StatusChanged   CompareStatus = "changed"
	StatusAdded     CompareStatus = "added"
	StatusRemoved   CompareStatus = "removed"
	StatusUnchanged CompareStatus = "unchanged"
)

// StatusRank orders statuses for result sorting: changed, added, removed, unchanged.
func StatusRank(s CompareStatus) int {
	switch s {
	case StatusChanged:
		return 0
	case StatusAdded:
		return 1
	case StatusRemoved:
		return 2
	default:
		return 3
	}
}

// ScreenInfo describes one side of a compared screen.
type ScreenInfo struct {
	Path          string `json:"path"`
	Name          string `json:"name"`
	URL           string `json:"url,omitempty"`
	Type          string `json:"type,omitempty"`
	SignatureHash string `json:"signatureHash,omitempty"`
	HasUI         bool   `json:"hasUI"`
	HasAPI        bool   `json:"hasAPI"`
	UISize        int64  `json:"uiSize,omitempty"`
	APISize       int64  `json:"apiSize,omitempty"`
}

// MatchInfo records how a shallow compare decided a screen's status.
type MatchInfo struct {
	Reason string `json:"reason,omitempty"`
	Note   string `json:"note,omitempty"`
}

// CompareItem is one screen row in a comparison result.
type CompareItem struct {
	Status    CompareStatus `json:"status"`
	Path      string        `json:"path"`
	Name      string        `json:"name"`
	Page1     *ScreenInfo   `json:"page1,omitempty"`
	Page2     *ScreenInfo   `json:"page2,omitempty"`
	Diff      *PageDiff     `json:"diff,omitempty"`
	Identity  string        `json:"identity"`
	MatchInfo *MatchInfo    `json:"matchInfo,omitempty"`
}

// CompareSummary aggregates a comparison result.
type CompareSummary struct {
	Total1    int `json:"total1"`
	Total2    int `json:"total2"`
	Matched   int `json:"matched"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
}

// CompareResult is the full output of comparing two sections.
type CompareResult struct {
	Section1 string         `json:"section1"`
	Section2 string         `json:"section2"`
	Summary  CompareSummary `json:"summary"`
	Items    []*CompareItem `json:"items"`
}

// PageDiff is the deep per-screen diff aggregating DOM/CSS and API sub-diffs.
type PageDiff struct {
	DOM        *DOMDiffResult `json:"domDiff,omitempty"`
	API        *APIDiffResult `json:"apiDiff,omitempty"`
	HasChanges bool           `json:"hasChanges"`
	Summary    string         `json:"summary"`
}
