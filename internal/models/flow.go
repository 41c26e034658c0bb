package models

import "encoding/json"

// FlowNodeTypeStart marks the synthetic entry node of a flow graph. It is
// never captured and never merged.
const FlowNodeTypeStart = "start"

// FlowNode is one screen node of a flow graph. NestedPath, when set, locates
// the screen directory under the section root; otherwise the directory name
// equals the node id (flat, legacy captures).
type FlowNode struct {
	ID         string `json:"id"`
	Type       string `json:"type,omitempty"`
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	Path       string `json:"path,omitempty"`
	NestedPath string `json:"nestedPath,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var flowNodeKnownKeys = map[string]bool{
	"id": true, "type": true, "name": true, "url": true, "path": true, "nestedPath": true,
}

// UnmarshalJSON preserves unknown node keys owned by the capture layer.
func (n *FlowNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type plain FlowNode
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*n = FlowNode(p)

	for key, value := range raw {
		if flowNodeKnownKeys[key] {
			continue
		}
		if n.Extra == nil {
			n.Extra = make(map[string]json.RawMessage)
		}
		n.Extra[key] = value
	}
	return nil
}

// MarshalJSON emits known fields plus preserved extras.
func (n FlowNode) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(n.Extra)+6)
	for key, value := range n.Extra {
		out[key] = value
	}

	type plain FlowNode
	base, err := json.Marshal(plain(n))
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

// ScreenPath resolves the directory path of the node under a section root.
func (n *FlowNode) ScreenPath() string {
	if n.NestedPath != "" {
		return n.NestedPath
	}
	return n.ID
}

// FlowEdge is a navigation edge between two flow nodes.
type FlowEdge struct {
	From string `json:"from"`
	To   string `json:"to"`

	Extra map[string]json.RawMessage `json:"-"`
}

var flowEdgeKnownKeys = map[string]bool{"from": true, "to": true}

// UnmarshalJSON preserves unknown edge keys.
func (e *FlowEdge) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type plain FlowEdge
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = FlowEdge(p)

	for key, value := range raw {
		if flowEdgeKnownKeys[key] {
			continue
		}
		if e.Extra == nil {
			e.Extra = make(map[string]json.RawMessage)
		}
		e.Extra[key] = value
	}
	return nil
}

// MarshalJSON emits known fields plus preserved extras.
func (e FlowEdge) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Extra)+2)
	for key, value := range e.Extra {
		out[key] = value
	}

	type plain FlowEdge
	base, err := json.Marshal(plain(e))
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

// FlowGraph is a project's (or section's) navigation graph.
type FlowGraph struct {
	Domain string      `json:"domain,omitempty"`
	Nodes  []*FlowNode `json:"nodes"`
	Edges  []*FlowEdge `json:"edges"`
}

// NodeByID returns the node with the given id, or nil.
func (g *FlowGraph) NodeByID(id string) *FlowNode {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node
		}
	}
	return nil
}

// HasNode reports whether a node with the given id exists.
func (g *FlowGraph) HasNode(id string) bool {
	return g.NodeByID(id) != nil
}
