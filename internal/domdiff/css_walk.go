package domdiff

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aleister1102/webdiff/internal/colorparse"
	"github.com/aleister1102/webdiff/internal/models"
)

// cssWalkFrame is one pending node pair of the parallel tree walk.
type cssWalkFrame struct {
	node1 *models.DOMNode
	node2 *models.DOMNode
	path  string
	depth int
}

// walkCSS walks both trees in parallel (children matched by index), comparing
// css maps and rect dimensions. Depth beyond the configured bound reports no
// further differences. The walk uses an explicit stack.
func (d *DOMDiffer) walkCSS(tree1, tree2 *models.DOMNode) []*models.CSSDelta {
	if tree1 == nil || tree2 == nil {
		return nil
	}

	var deltas []*models.CSSDelta
	stack := []cssWalkFrame{{node1: tree1, node2: tree2, path: "0", depth: 1}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node1, node2 := frame.node1, frame.node2
		if node1 == nil || node2 == nil || node1.IsText() || node2.IsText() {
			continue
		}

		deltas = append(deltas, d.compareNodeCSS(node1, node2, frame.path)...)
		deltas = append(deltas, d.compareNodeRect(node1, node2, frame.path)...)

		if frame.depth >= d.config.MaxDOMWalkDepth {
			continue
		}

		shared := len(node1.Children)
		if len(node2.Children) < shared {
			shared = len(node2.Children)
		}
		for i := shared - 1; i >= 0; i-- {
			stack = append(stack, cssWalkFrame{
				node1: node1.Children[i],
				node2: node2.Children[i],
				path:  frame.path + "/" + strconv.Itoa(i),
				depth: frame.depth + 1,
			})
		}
	}

	return deltas
}

// compareNodeCSS diffs the css maps of one node pair.
func (d *DOMDiffer) compareNodeCSS(node1, node2 *models.DOMNode, path string) []*models.CSSDelta {
	if len(node1.CSS) == 0 && len(node2.CSS) == 0 {
		return nil
	}

	var deltas []*models.CSSDelta
	for _, property := range unionKeys(node1.CSS, node2.CSS) {
		value1 := node1.CSS[property]
		value2 := node2.CSS[property]
		if value1 == value2 {
			continue
		}

		category := classifyCSSProperty(property)
		if category == models.CSSCategoryColor &&
			colorparse.EqualStrings(value1, value2, d.config.ColorChannelThreshold) {
			continue
		}

		deltas = append(deltas, &models.CSSDelta{
			Path:     path,
			Tag:      node1.Tag,
			Property: property,
			Category: category,
			Old:      value1,
			New:      value2,
		})
	}
	return deltas
}

// compareNodeRect diffs rect dimensions of one node pair within tolerance.
func (d *DOMDiffer) compareNodeRect(node1, node2 *models.DOMNode, path string) []*models.CSSDelta {
	if node1.Rect == nil || node2.Rect == nil {
		return nil
	}

	dims := []struct {
		name           string
		value1, value2 float64
	}{
		{"x", node1.Rect.X, node2.Rect.X},
		{"y", node1.Rect.Y, node2.Rect.Y},
		{"w", node1.Rect.W, node2.Rect.W},
		{"h", node1.Rect.H, node2.Rect.H},
	}

	var deltas []*models.CSSDelta
	for _, dim := range dims {
		if math.Abs(dim.value1-dim.value2) > d.config.PositionTolerancePx {
			deltas = append(deltas, &models.CSSDelta{
				Path:     path,
				Tag:      node1.Tag,
				Property: "rect." + dim.name,
				Category: models.CSSCategoryPosition,
				Old:      fmt.Sprintf("%g", dim.value1),
				New:      fmt.Sprintf("%g", dim.value2),
			})
		}
	}
	return deltas
}

// classifyCSSProperty buckets a CSS property into a report category.
func classifyCSSProperty(property string) string {
	p := strings.ToLower(property)

	switch {
	case colorProperties[p] || strings.HasSuffix(p, "-color"):
		return models.CSSCategoryColor
	case strings.HasPrefix(p, "font") || strings.HasPrefix(p, "text-") ||
		p == "line-height" || p == "letter-spacing" || p == "word-spacing":
		return models.CSSCategoryTypography
	case strings.HasPrefix(p, "margin") || strings.HasPrefix(p, "padding") || p == "gap":
		return models.CSSCategorySpacing
	case p == "top" || p == "left" || p == "right" || p == "bottom" || p == "position":
		return models.CSSCategoryPosition
	case strings.HasPrefix(p, "border") || p == "outline" || strings.HasPrefix(p, "outline-"):
		return models.CSSCategoryBorder
	case p == "display" || p == "width" || p == "height" || p == "overflow" ||
		strings.HasPrefix(p, "flex") || strings.HasPrefix(p, "grid") ||
		p == "float" || p == "clear" || p == "z-index":
		return models.CSSCategoryLayout
	default:
		return models.CSSCategoryOther
	}
}

// unionKeys returns the sorted-stable union of both maps' keys.
func unionKeys(m1, m2 map[string]string) []string {
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
