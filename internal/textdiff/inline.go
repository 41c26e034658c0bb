package textdiff

import (
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// InlineDiff produces a character-level diff of two strings for inline
// highlighting on modified lines, with semantic cleanup applied.
func InlineDiff(oldText, newText string) []models.InlineSegment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	segments := make([]models.InlineSegment, 0, len(diffs))
	for _, diff := range diffs {
		var op string
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			op = "insert"
		case diffmatchpatch.DiffDelete:
			op = "delete"
		default:
			op = "equal"
		}
		segments = append(segments, models.InlineSegment{Op: op, Text: diff.Text})
	}
	return segments
}
