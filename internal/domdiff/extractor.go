package domdiff

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/models"
	"golang.org/x/net/html"
)

// Tags that carry no visual content and are skipped wholesale.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"meta":     true,
	"link":     true,
	"noscript": true,
	"template": true,
}

// Colour-bearing CSS properties lifted into the element's colour map.
var colorProperties = map[string]bool{
	"color":            true,
	"background-color": true,
	"border-color":     true,
	"outline-color":    true,
}

// Style properties considered important for style-change detection.
var importantStyleProperties = []string{
	"font-family", "font-size", "font-weight", "font-style",
	"display", "opacity", "z-index", "visibility",
	"border-width", "border-style", "border-radius",
	"box-shadow", "transform", "text-decoration",
}

// ElementExtractor linearizes DOM trees and serialized HTML into element
// sequences for identity-based matching.
type ElementExtractor struct{}

// NewElementExtractor creates a new element extractor.
func NewElementExtractor() *ElementExtractor {
	return &ElementExtractor{}
}

// ExtractFromTree linearizes a captured dom.json tree.
func (ee *ElementExtractor) ExtractFromTree(root *models.DOMNode) []*models.DOMElement {
	if root == nil {
		return nil
	}

	var elements []*models.DOMElement

	// Explicit stack; capture depth is unbounded.
	stack := []*models.DOMNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node == nil || node.IsText() {
			continue
		}
		tag := strings.ToLower(node.Tag)
		if skippedTags[tag] {
			continue
		}

		if tag != "" {
			elements = append(elements, ee.buildElementFromNode(node))
		}

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}

	return elements
}

// buildElementFromNode converts one tree node into an element record.
func (ee *ElementExtractor) buildElementFromNode(node *models.DOMNode) *models.DOMElement {
	attrs := node.Attrs

	var text strings.Builder
	for _, child := range node.Children {
		if child != nil && child.IsText() {
			text.WriteString(child.Text())
			text.WriteString(" ")
		}
	}

	element := &models.DOMElement{
		Tag:            strings.ToLower(node.Tag),
		Attrs:          attrs,
		Text:           strings.TrimSpace(text.String()),
		NormalizedText: NormalizeText(text.String()),
		Position:       node.Rect,
		ID:             attrs["id"],
		ClassName:      attrs["class"],
		DataTestID:     attrs["data-testid"],
	}

	if len(node.CSS) > 0 {
		element.Colors = make(map[string]string)
		element.Style = make(map[string]string)
		for property, value := range node.CSS {
			if colorProperties[property] {
				element.Colors[property] = value
			}
		}
		for _, property := range importantStyleProperties {
			if value, ok := node.CSS[property]; ok {
				element.Style[property] = value
			}
		}
	}

	element.Signature = BuildSignature(element.Tag, element.ID, element.DataTestID, element.ClassName)
	element.ContentType = ClassifyContent(element.NormalizedText)
	return element
}

// ExtractFromHTML linearizes serialized DOM (screen.html) via goquery.
func (ee *ElementExtractor) ExtractFromHTML(htmlContent string) ([]*models.DOMElement, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse HTML document")
	}

	var elements []*models.DOMElement
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node == nil || node.Type != html.ElementNode {
			return
		}
		tag := strings.ToLower(node.Data)
		if skippedTags[tag] || tag == "html" || tag == "head" {
			return
		}
		if sel.ParentsFiltered("script,style,noscript,template").Length() > 0 {
			return
		}

		elements = append(elements, ee.buildElementFromSelection(tag, node, sel))
	})

	return elements, nil
}

// buildElementFromSelection converts one goquery node into an element record.
func (ee *ElementExtractor) buildElementFromSelection(tag string, node *html.Node, sel *goquery.Selection) *models.DOMElement {
	attrs := make(map[string]string, len(node.Attr))
	for _, attr := range node.Attr {
		attrs[attr.Key] = attr.Val
	}

	var text strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			text.WriteString(child.Data)
			text.WriteString(" ")
		}
	}

	element := &models.DOMElement{
		Tag:            tag,
		Attrs:          attrs,
		Text:           strings.TrimSpace(text.String()),
		NormalizedText: NormalizeText(text.String()),
		ID:             attrs["id"],
		ClassName:      attrs["class"],
		DataTestID:     attrs["data-testid"],
	}

	element.Signature = BuildSignature(tag, element.ID, element.DataTestID, element.ClassName)
	element.ContentType = ClassifyContent(element.NormalizedText)
	return element
}
