package models

import "encoding/json"

// Screen types observed in captures. Anything else is carried through as-is.
const (
	ScreenTypePage   = "page"
	ScreenTypeTab    = "tab"
	ScreenTypeModal  = "modal"
	ScreenTypeDialog = "dialog"
	ScreenTypeUI     = "ui"
)

// ScreenMeta is the normalized shape of meta.json (preferred) and
// metadata.json (legacy). Unknown keys are preserved so rewrites do not
// drop fields owned by the capture layer.
type ScreenMeta struct {
	URL           string `json:"url,omitempty"`
	Type          string `json:"type,omitempty"`
	SignatureHash string `json:"signatureHash,omitempty"`
	Title         string `json:"title,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// screenMetaKnownKeys lists keys lifted into struct fields.
var screenMetaKnownKeys = map[string]bool{
	"url": true, "type": true, "signatureHash": true, "title": true,
}

// UnmarshalJSON decodes known fields and stashes the rest in Extra.
func (m *ScreenMeta) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type plain ScreenMeta
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = ScreenMeta(p)

	for key, value := range raw {
		if screenMetaKnownKeys[key] {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]json.RawMessage)
		}
		m.Extra[key] = value
	}
	return nil
}

// MarshalJSON emits known fields plus preserved extras.
func (m ScreenMeta) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+4)
	for key, value := range m.Extra {
		out[key] = value
	}

	type plain ScreenMeta
	base, err := json.Marshal(plain(m))
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(base, &known); err != nil {
		return nil, err
	}
	for key, value := range known {
		out[key] = value
	}
	return json.Marshal(out)
}

// IsModal reports whether the screen type is a modal-like overlay.
func (m *ScreenMeta) IsModal() bool {
	return m.Type == ScreenTypeModal || m.Type == ScreenTypeDialog
}
