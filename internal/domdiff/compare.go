package domdiff

import (
	"fmt"
	"math"
	"strings"

	"github.com/aleister1102/webdiff/internal/colorparse"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/textdiff"
	"github.com/rs/zerolog"
)

// DOMDiffer compares two linearized element sequences and, when available,
// the raw DOM trees for CSS-level changes.
type DOMDiffer struct {
	logger    zerolog.Logger
	config    config.DifferConfig
	extractor *ElementExtractor
}

// NewDOMDiffer creates a new DOM differ.
func NewDOMDiffer(logger zerolog.Logger, cfg config.DifferConfig) *DOMDiffer {
	return &DOMDiffer{
		logger:    logger.With().Str("component", "DOMDiffer").Logger(),
		config:    cfg,
		extractor: NewElementExtractor(),
	}
}

// Extractor exposes the element extractor for callers that load artifacts.
func (d *DOMDiffer) Extractor() *ElementExtractor {
	return d.extractor
}

// CompareTrees diffs two captured dom.json trees: linearized element
// comparison plus the parallel CSS walk.
func (d *DOMDiffer) CompareTrees(tree1, tree2 *models.DOMNode) *models.DOMDiffResult {
	result := d.CompareElements(
		d.extractor.ExtractFromTree(tree1),
		d.extractor.ExtractFromTree(tree2),
	)

	result.CSSDeltas = d.walkCSS(tree1, tree2)
	if len(result.CSSDeltas) > 0 {
		result.HasChanges = true
	}
	result.Summary = d.buildSummary(result)
	return result
}

// CompareElements diffs two linearized element sequences into the five
// change bags.
func (d *DOMDiffer) CompareElements(elements1, elements2 []*models.DOMElement) *models.DOMDiffResult {
	result := &models.DOMDiffResult{
		TotalElements1: len(elements1),
		TotalElements2: len(elements2),
	}

	groups1, order1 := groupBySignature(elements1)
	groups2, order2 := groupBySignature(elements2)

	for _, signature := range order1 {
		list1 := groups1[signature]
		list2, shared := groups2[signature]
		if !shared {
			for _, element := range list1 {
				result.Removed = append(result.Removed, element)
				result.CountCategory(element.ContentType, "removed")
			}
			continue
		}
		d.compareSignatureGroup(result, list1, list2)
	}

	for _, signature := range order2 {
		if _, shared := groups1[signature]; shared {
			continue
		}
		for _, element := range groups2[signature] {
			result.Added = append(result.Added, element)
			result.CountCategory(element.ContentType, "added")
		}
	}

	result.ChangedElements = len(result.Added) + len(result.Removed) + len(result.Modified)
	result.Similarity = similarityScore(result.ChangedElements, result.TotalElements1)
	result.HasChanges = result.ChangedElements > 0 ||
		len(result.PositionChanged) > 0 || len(result.ColorChanged) > 0 || len(result.StyleChanged) > 0
	result.Summary = d.buildSummary(result)
	return result
}

// compareSignatureGroup matches elements sharing one signature. Exact text
// matches pair first; the remainder pairs by index as modifications, and the
// overflow becomes additions/removals.
func (d *DOMDiffer) compareSignatureGroup(result *models.DOMDiffResult, list1, list2 []*models.DOMElement) {
	matched2 := make([]bool, len(list2))
	var unmatched1 []*models.DOMElement

	for _, element1 := range list1 {
		found := -1
		for j, element2 := range list2 {
			if !matched2[j] && element1.NormalizedText == element2.NormalizedText {
				found = j
				break
			}
		}
		if found >= 0 {
			matched2[found] = true
			d.compareMatchedPair(result, element1, list2[found])
		} else {
			unmatched1 = append(unmatched1, element1)
		}
	}

	var unmatched2 []*models.DOMElement
	for j, element2 := range list2 {
		if !matched2[j] {
			unmatched2 = append(unmatched2, element2)
		}
	}

	paired := len(unmatched1)
	if len(unmatched2) < paired {
		paired = len(unmatched2)
	}

	for i := 0; i < paired; i++ {
		prev := unmatched1[i]
		curr := unmatched2[i]
		inline := textdiff.InlineDiff(prev.Text, curr.Text)
		contentType := classifyModification(prev, curr, inline)
		result.Modified = append(result.Modified, &models.TextChange{
			Signature:   prev.Signature,
			Tag:         prev.Tag,
			ContentType: contentType,
			OldText:     prev.Text,
			NewText:     curr.Text,
			InlineDiff:  inline,
		})
		result.CountCategory(contentType, "changed")
		d.compareMatchedPair(result, prev, curr)
	}
	for i := paired; i < len(unmatched1); i++ {
		result.Removed = append(result.Removed, unmatched1[i])
		result.CountCategory(unmatched1[i].ContentType, "removed")
	}
	for i := paired; i < len(unmatched2); i++ {
		result.Added = append(result.Added, unmatched2[i])
		result.CountCategory(unmatched2[i].ContentType, "added")
	}
}

// compareMatchedPair inspects position, colour and style deltas on a pair of
// elements that matched by identity.
func (d *DOMDiffer) compareMatchedPair(result *models.DOMDiffResult, prev, curr *models.DOMElement) {
	d.comparePositions(result, prev, curr)
	d.compareColors(result, prev, curr)
	d.compareStyles(result, prev, curr)
}

func (d *DOMDiffer) comparePositions(result *models.DOMDiffResult, prev, curr *models.DOMElement) {
	if prev.Position == nil || curr.Position == nil {
		return
	}

	dims := []struct {
		name     string
		old, new float64
	}{
		{"x", prev.Position.X, curr.Position.X},
		{"y", prev.Position.Y, curr.Position.Y},
		{"w", prev.Position.W, curr.Position.W},
		{"h", prev.Position.H, curr.Position.H},
	}

	for _, dim := range dims {
		delta := math.Abs(dim.old - dim.new)
		if delta > d.config.PositionTolerancePx {
			result.PositionChanged = append(result.PositionChanged, &models.StyleDelta{
				Signature: prev.Signature,
				Property:  dim.name,
				Old:       fmt.Sprintf("%g", dim.old),
				New:       fmt.Sprintf("%g", dim.new),
				Delta:     delta,
			})
		}
	}
}

func (d *DOMDiffer) compareColors(result *models.DOMDiffResult, prev, curr *models.DOMElement) {
	for property, oldValue := range prev.Colors {
		newValue, ok := curr.Colors[property]
		if !ok || oldValue == newValue {
			continue
		}
		if !colorparse.EqualStrings(oldValue, newValue, d.config.ColorChannelThreshold) {
			result.ColorChanged = append(result.ColorChanged, &models.StyleDelta{
				Signature: prev.Signature,
				Property:  property,
				Old:       oldValue,
				New:       newValue,
			})
		}
	}
}

func (d *DOMDiffer) compareStyles(result *models.DOMDiffResult, prev, curr *models.DOMElement) {
	for property, oldValue := range prev.Style {
		newValue, ok := curr.Style[property]
		if !ok || oldValue == newValue {
			continue
		}
		result.StyleChanged = append(result.StyleChanged, &models.StyleDelta{
			Signature: prev.Signature,
			Property:  property,
			Old:       oldValue,
			New:       newValue,
		})
	}
}

// buildSummary renders a short human-readable change summary.
func (d *DOMDiffer) buildSummary(result *models.DOMDiffResult) string {
	if !result.HasChanges {
		return "No DOM changes"
	}

	var parts []string
	if n := len(result.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(result.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if n := len(result.Modified); n > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", n))
	}
	if n := len(result.PositionChanged); n > 0 {
		parts = append(parts, fmt.Sprintf("%d moved", n))
	}
	if n := len(result.ColorChanged); n > 0 {
		parts = append(parts, fmt.Sprintf("%d recoloured", n))
	}
	if n := len(result.StyleChanged); n > 0 {
		parts = append(parts, fmt.Sprintf("%d restyled", n))
	}
	if n := len(result.CSSDeltas); n > 0 {
		parts = append(parts, fmt.Sprintf("%d css deltas", n))
	}
	return "DOM: " + strings.Join(parts, ", ")
}

// groupBySignature buckets elements by signature, preserving first-seen
// signature order so diff output stays deterministic.
func groupBySignature(elements []*models.DOMElement) (map[string][]*models.DOMElement, []string) {
	groups := make(map[string][]*models.DOMElement)
	var order []string
	for _, element := range elements {
		if _, seen := groups[element.Signature]; !seen {
			order = append(order, element.Signature)
		}
		groups[element.Signature] = append(groups[element.Signature], element)
	}
	return groups, order
}

func pickContentType(prev, curr *models.DOMElement) string {
	if curr.ContentType != "" {
		return curr.ContentType
	}
	return prev.ContentType
}

// classifyModification classifies a text change by the portion that actually
// changed, so "Balance: 1,000" vs "Balance: 1,200" counts as a number change
// even though the full text reads as prose.
func classifyModification(prev, curr *models.DOMElement, inline []models.InlineSegment) string {
	var deleted, inserted strings.Builder
	for _, segment := range inline {
		switch segment.Op {
		case "delete":
			deleted.WriteString(segment.Text)
		case "insert":
			inserted.WriteString(segment.Text)
		}
	}

	deletedType := ClassifyContent(NormalizeText(deleted.String()))
	insertedType := ClassifyContent(NormalizeText(inserted.String()))

	switch {
	case deletedType != "" && deletedType == insertedType:
		return deletedType
	case deletedType == "" && insertedType != "":
		return insertedType
	case insertedType == "" && deletedType != "":
		return deletedType
	default:
		return pickContentType(prev, curr)
	}
}

// similarityScore is 100 − changed/total·100, floored at zero.
func similarityScore(changed, total int) float64 {
	if total == 0 {
		if changed == 0 {
			return 100
		}
		return 0
	}
	score := 100 - float64(changed)/float64(total)*100
	if score < 0 {
		return 0
	}
	return score
}
