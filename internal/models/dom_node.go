package models

// TextNodeTag marks text nodes in the captured DOM tree.
const TextNodeTag = "#text"

// Rect holds a bounding box in CSS pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DOMNode is one node of the captured DOM tree (dom.json). Text nodes use
// tag "#text" and carry their content in the "a" map under key "text".
type DOMNode struct {
	Tag      string            `json:"t"`
	Attrs    map[string]string `json:"a,omitempty"`
	Children []*DOMNode        `json:"c,omitempty"`
	CSS      map[string]string `json:"css,omitempty"`
	Rect     *Rect             `json:"rect,omitempty"`
}

// IsText reports whether the node is a text node.
func (n *DOMNode) IsText() bool {
	return n.Tag == TextNodeTag
}

// Text returns the text content of a text node.
func (n *DOMNode) Text() string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs["text"]
}

// DOMElement is one element of the linearized DOM used for identity-based
// matching. Position and Colors are present only when the source carried
// layout/style information.
type DOMElement struct {
	Tag            string            `json:"tag"`
	Attrs          map[string]string `json:"attrs,omitempty"`
	Text           string            `json:"text,omitempty"`
	NormalizedText string            `json:"normalizedText,omitempty"`
	Position       *Rect             `json:"position,omitempty"`
	Colors         map[string]string `json:"colors,omitempty"`
	Style          map[string]string `json:"style,omitempty"`
	Signature      string            `json:"signature"`
	ClassName      string            `json:"className,omitempty"`
	ID             string            `json:"id,omitempty"`
	DataTestID     string            `json:"dataTestId,omitempty"`
	ContentType    string            `json:"contentType,omitempty"`
}

// Content classifier outcomes.
const (
	ContentTypeNumber = "number"
	ContentTypeDate   = "date"
	ContentTypeTime   = "time"
	ContentTypeLabel  = "label"
	ContentTypeText   = "text"
)
