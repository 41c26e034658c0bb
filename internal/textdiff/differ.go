package textdiff

import (
	"strings"

	"github.com/aleister1102/webdiff/internal/config"
)

// ChangeType classifies one line-level change.
type ChangeType string

const (
	ChangeEqual    ChangeType = "equal"
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// LineChange is one line of a line-level diff. Modified changes pair a
// removed line with its positional replacement and carry both texts.
type LineChange struct {
	Type     ChangeType `json:"type"`
	OldIndex int        `json:"oldIndex"` // -1 when not applicable
	NewIndex int        `json:"newIndex"` // -1 when not applicable
	OldText  string     `json:"oldText,omitempty"`
	NewText  string     `json:"newText,omitempty"`
}

// DiffStats aggregates a line diff.
type DiffStats struct {
	Total    int `json:"total"`
	Equal    int `json:"equal"`
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// LineDiffResult is the output of a line-level diff.
type LineDiffResult struct {
	Changes  []LineChange `json:"changes"`
	Stats    DiffStats    `json:"stats"`
	Degraded bool         `json:"degraded"` // length guard tripped
}

// TextDiffer produces Myers line/word diffs with a sequence-length guard.
type TextDiffer struct {
	maxSequenceLength int
	options           Options
}

// NewTextDiffer creates a text differ with the given differ configuration.
func NewTextDiffer(cfg config.DifferConfig) *TextDiffer {
	return &TextDiffer{
		maxSequenceLength: cfg.MaxSequenceLength,
		options:           DefaultOptions(),
	}
}

// NewTextDifferWithOptions creates a text differ with explicit normalization options.
func NewTextDifferWithOptions(cfg config.DifferConfig, opts Options) *TextDiffer {
	differ := NewTextDiffer(cfg)
	differ.options = opts
	return differ
}

// DiffText splits both inputs into lines and diffs them.
func (td *TextDiffer) DiffText(text1, text2 string) *LineDiffResult {
	return td.DiffLines(splitLines(text1), splitLines(text2))
}

// DiffLines diffs two line sequences. When either side exceeds the length
// cap, a length-only change report (one synthetic removal plus one synthetic
// addition) is returned instead of running Myers.
func (td *TextDiffer) DiffLines(lines1, lines2 []string) *LineDiffResult {
	if td.maxSequenceLength > 0 &&
		(len(lines1) > td.maxSequenceLength || len(lines2) > td.maxSequenceLength) {
		return td.degradedResult(lines1, lines2)
	}

	a := td.options.NormalizeAll(lines1)
	b := td.options.NormalizeAll(lines2)

	edits := myersDiff(a, b)
	changes := pairModifications(edits, lines1, lines2)

	result := &LineDiffResult{Changes: changes}
	for _, change := range changes {
		result.Stats.Total++
		switch change.Type {
		case ChangeEqual:
			result.Stats.Equal++
		case ChangeAdded:
			result.Stats.Added++
		case ChangeRemoved:
			result.Stats.Removed++
		case ChangeModified:
			result.Stats.Modified++
		}
	}
	return result
}

// degradedResult reports the two sides as wholesale removed/added content.
func (td *TextDiffer) degradedResult(lines1, lines2 []string) *LineDiffResult {
	changes := []LineChange{
		{Type: ChangeRemoved, OldIndex: 0, NewIndex: -1, OldText: joinPreview(lines1)},
		{Type: ChangeAdded, OldIndex: -1, NewIndex: 0, NewText: joinPreview(lines2)},
	}
	return &LineDiffResult{
		Changes:  changes,
		Stats:    DiffStats{Total: 2, Added: 1, Removed: 1},
		Degraded: true,
	}
}

// Similarity measures line overlap as 100·2·equal/(len1+len2), or 100 when
// both inputs are empty. The equal count is the number of lines a shortest
// edit script preserves, which is the same in both directions, so the score
// does not depend on argument order. Degraded diffs preserve nothing and
// score 0.
func (td *TextDiffer) Similarity(text1, text2 string) float64 {
	lines1 := splitLines(text1)
	lines2 := splitLines(text2)
	if len(lines1) == 0 && len(lines2) == 0 {
		return 100
	}
	result := td.DiffLines(lines1, lines2)
	return 100 * float64(2*result.Stats.Equal) / float64(len(lines1)+len(lines2))
}

// pairModifications converts an edit script to line changes, pairing each
// run of deletions with the insertions that immediately follow it.
func pairModifications(edits []edit, lines1, lines2 []string) []LineChange {
	var changes []LineChange

	for i := 0; i < len(edits); {
		e := edits[i]

		if e.op == opEqual {
			changes = append(changes, LineChange{
				Type:     ChangeEqual,
				OldIndex: e.oldIndex,
				NewIndex: e.newIndex,
				OldText:  lines1[e.oldIndex],
				NewText:  lines2[e.newIndex],
			})
			i++
			continue
		}

		var deletes, inserts []edit
		for i < len(edits) && edits[i].op == opDelete {
			deletes = append(deletes, edits[i])
			i++
		}
		for i < len(edits) && edits[i].op == opInsert {
			inserts = append(inserts, edits[i])
			i++
		}

		paired := len(deletes)
		if len(inserts) < paired {
			paired = len(inserts)
		}

		for j := 0; j < paired; j++ {
			changes = append(changes, LineChange{
				Type:     ChangeModified,
				OldIndex: deletes[j].oldIndex,
				NewIndex: inserts[j].newIndex,
				OldText:  lines1[deletes[j].oldIndex],
				NewText:  lines2[inserts[j].newIndex],
			})
		}
		for j := paired; j < len(deletes); j++ {
			changes = append(changes, LineChange{
				Type:     ChangeRemoved,
				OldIndex: deletes[j].oldIndex,
				NewIndex: -1,
				OldText:  lines1[deletes[j].oldIndex],
			})
		}
		for j := paired; j < len(inserts); j++ {
			changes = append(changes, LineChange{
				Type:     ChangeAdded,
				OldIndex: -1,
				NewIndex: inserts[j].newIndex,
				NewText:  lines2[inserts[j].newIndex],
			})
		}
	}

	return changes
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// joinPreview keeps degraded reports bounded.
func joinPreview(lines []string) string {
	const maxPreviewLines = 3
	if len(lines) <= maxPreviewLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:maxPreviewLines], "\n") + "\n..."
}
