package models

// Body diff entry types. The capture layer's consumers localize on these
// values, so they are part of the wire contract.
const (
	BodyDiffAdded    = "THÊM"
	BodyDiffRemoved  = "XOÁ"
	BodyDiffModified = "SỬA"
)

// BodyDiffEntry is one difference inside a request/response body.
type BodyDiffEntry struct {
	Path           string `json:"path"`
	NormalizedPath string `json:"normalizedPath"` // array indices collapsed to *
	Type           string `json:"type"`
	Old            string `json:"old,omitempty"`
	New            string `json:"new,omitempty"`
	Value          string `json:"value,omitempty"`
}

// StatusChange records an endpoint call whose HTTP status changed.
type StatusChange struct {
	Old int `json:"old"`
	New int `json:"new"`
}

// EndpointChange describes an endpoint present on only one side.
type EndpointChange struct {
	Endpoint    string `json:"endpoint"` // "<METHOD> <pathname>"
	Count       int    `json:"count"`
	StatusCodes []int  `json:"statusCodes,omitempty"`
}

// EndpointPairChange describes one index-paired call of a shared endpoint
// that differs between the two sides.
type EndpointPairChange struct {
	Endpoint            string           `json:"endpoint"`
	Index               int              `json:"index"`
	StatusChanged       *StatusChange    `json:"statusChanged,omitempty"`
	RequestBodyChanged  []*BodyDiffEntry `json:"requestBodyChanged,omitempty"`
	ResponseBodyChanged []*BodyDiffEntry `json:"responseBodyChanged,omitempty"`
}

// APIDiffResult is the structured output of the API differ.
type APIDiffResult struct {
	Added            []*EndpointChange     `json:"added,omitempty"`
	Removed          []*EndpointChange     `json:"removed,omitempty"`
	Changed          []*EndpointPairChange `json:"changed,omitempty"`
	TotalEndpoints1  int                   `json:"totalEndpoints1"`
	TotalEndpoints2  int                   `json:"totalEndpoints2"`
	MatchedEndpoints int                   `json:"matchedEndpoints"`
	HasChanges       bool                  `json:"hasChanges"`
	Summary          string                `json:"summary"`
}
