package models

// Merge preview actions.
const (
	MergeActionCreate    = "create"
	MergeActionOverwrite = "overwrite"
)

// MergeFolderResult is the outcome for one merged folder.
type MergeFolderResult struct {
	Folder  string `json:"folder"`
	Path    string `json:"path"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// MergeResult is the outcome of a merge operation.
type MergeResult struct {
	Success        bool                 `json:"success"`
	Folders        []*MergeFolderResult `json:"folders"`
	NodesAdded     int                  `json:"nodesAdded"`
	NodesUpdated   int                  `json:"nodesUpdated"`
	EdgesAdded     int                  `json:"edgesAdded"`
	SectionDeleted bool                 `json:"sectionDeleted"`
}

// MergePreviewEntry is one folder's dry-run outcome.
type MergePreviewEntry struct {
	Folder     string `json:"folder"`
	Path       string `json:"path"`
	Action     string `json:"action"`
	SourceSize int64  `json:"sourceSize"`
	DestSize   *int64 `json:"destSize,omitempty"`
}
