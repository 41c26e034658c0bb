package apidiff

import (
	"encoding/json"
	"testing"

	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPIDiffer() *APIDiffer {
	return NewAPIDiffer(zerolog.Nop(), config.NewDefaultDifferConfig())
}

func TestAPICall_UnmarshalUnions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"compact", `{"m":"get","u":"https://x/api/users","s":200,"d":12.5,"res":{"ok":true}}`},
		{"full", `{"method":"get","url":"https://x/api/users","status":200,"duration":12.5,"responseBody":{"ok":true}}`},
		{"legacy", `{"method":"get","url":"https://x/api/users","statusCode":200,"response":{"ok":true}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var call models.APICall
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &call))
			assert.Equal(t, "get", call.Method)
			assert.Equal(t, "https://x/api/users", call.URL)
			assert.Equal(t, 200, call.Status)
			assert.JSONEq(t, `{"ok":true}`, string(call.ResponseBody))
		})
	}
}

func TestEndpointKey(t *testing.T) {
	call := &models.APICall{Method: "get", URL: "https://x.example/api/users?page=2#frag"}
	assert.Equal(t, "GET /api/users", EndpointKey(call))

	call = &models.APICall{Method: "", URL: "/relative/path"}
	assert.Equal(t, "GET /relative/path", EndpointKey(call))
}

func TestCompare_Identical(t *testing.T) {
	differ := newTestAPIDiffer()
	calls := []*models.APICall{
		{Method: "GET", URL: "https://x/api/users", Status: 200},
		{Method: "POST", URL: "https://x/api/orders", Status: 201},
	}

	result := differ.Compare(calls, calls)

	assert.False(t, result.HasChanges)
	assert.Equal(t, 2, result.MatchedEndpoints)
	assert.Equal(t, "No API changes", result.Summary)
}

func TestCompare_AddedAndRemovedEndpoints(t *testing.T) {
	differ := newTestAPIDiffer()

	calls1 := []*models.APICall{
		{Method: "GET", URL: "https://x/api/users", Status: 200},
		{Method: "GET", URL: "https://x/api/legacy", Status: 200},
		{Method: "GET", URL: "https://x/api/legacy", Status: 404},
	}
	calls2 := []*models.APICall{
		{Method: "GET", URL: "https://x/api/users", Status: 200},
		{Method: "GET", URL: "https://x/api/fresh", Status: 200},
	}

	result := differ.Compare(calls1, calls2)

	require.Len(t, result.Removed, 1)
	assert.Equal(t, "GET /api/legacy", result.Removed[0].Endpoint)
	assert.Equal(t, 2, result.Removed[0].Count)
	assert.Equal(t, []int{200, 404}, result.Removed[0].StatusCodes)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "GET /api/fresh", result.Added[0].Endpoint)
	assert.Equal(t, 1, result.MatchedEndpoints)
}

func TestCompare_StatusRegression(t *testing.T) {
	differ := newTestAPIDiffer()

	calls1 := []*models.APICall{{Method: "GET", URL: "https://x/api/users", Status: 200}}
	calls2 := []*models.APICall{{Method: "GET", URL: "https://x/api/users", Status: 500}}

	result := differ.Compare(calls1, calls2)

	require.Len(t, result.Changed, 1)
	change := result.Changed[0]
	assert.Equal(t, "GET /api/users", change.Endpoint)
	assert.Equal(t, 0, change.Index)
	require.NotNil(t, change.StatusChanged)
	assert.Equal(t, 200, change.StatusChanged.Old)
	assert.Equal(t, 500, change.StatusChanged.New)
}

func TestDiffBodies_StructuralJSON(t *testing.T) {
	differ := &bodyDiffer{maxDepth: 5}

	body1 := json.RawMessage(`{"user":{"name":"An","age":30},"items":[{"id":1},{"id":2}]}`)
	body2 := json.RawMessage(`{"user":{"name":"Binh","age":30},"items":[{"id":1},{"id":3}],"total":2}`)

	entries := differ.DiffBodies(body1, body2)
	require.NotEmpty(t, entries)

	byPath := make(map[string]*models.BodyDiffEntry)
	for _, entry := range entries {
		byPath[entry.Path] = entry
	}

	require.Contains(t, byPath, "user.name")
	assert.Equal(t, models.BodyDiffModified, byPath["user.name"].Type)
	assert.Equal(t, "An", byPath["user.name"].Old)
	assert.Equal(t, "Binh", byPath["user.name"].New)
	assert.Equal(t, "user.name", byPath["user.name"].NormalizedPath)

	require.Contains(t, byPath, "items.1.id")
	assert.Equal(t, "items.*.id", byPath["items.1.id"].NormalizedPath)

	require.Contains(t, byPath, "total")
	assert.Equal(t, models.BodyDiffAdded, byPath["total"].Type)
	assert.Equal(t, "2", byPath["total"].Value)
}

func TestDiffBodies_DepthBound(t *testing.T) {
	differ := &bodyDiffer{maxDepth: 2}

	deep1 := json.RawMessage(`{"a":{"b":{"c":{"d":1}}}}`)
	deep2 := json.RawMessage(`{"a":{"b":{"c":{"d":2}}}}`)

	// The differing leaf sits below the depth bound: no further differences.
	assert.Empty(t, differ.DiffBodies(deep1, deep2))
}

func TestDiffBodies_OpaqueStrings(t *testing.T) {
	differ := &bodyDiffer{maxDepth: 5}

	entries := differ.DiffBodies(json.RawMessage("plain text body"), json.RawMessage("longer plain text body"))
	require.Len(t, entries, 1)
	assert.Equal(t, models.BodyDiffModified, entries[0].Type)
	assert.Contains(t, entries[0].Old, "length 15")
	assert.Contains(t, entries[0].New, "length 22")

	// Same length, different content.
	entries = differ.DiffBodies(json.RawMessage("body-aa"), json.RawMessage("body-bb"))
	require.Len(t, entries, 1)
	assert.Equal(t, "body-aa", entries[0].Old)
	assert.Equal(t, "body-bb", entries[0].New)
}

func TestDiffBodies_TruncatesLongValues(t *testing.T) {
	differ := &bodyDiffer{maxDepth: 5}

	long := make([]byte, 0, 220)
	for i := 0; i < 200; i++ {
		long = append(long, 'x')
	}
	body1 := json.RawMessage(`{"v":"short"}`)
	body2 := json.RawMessage(`{"v":"` + string(long) + `"}`)

	entries := differ.DiffBodies(body1, body2)
	require.Len(t, entries, 1)
	assert.LessOrEqual(t, len(entries[0].New), maxBodyValueLength+3)
	assert.Contains(t, entries[0].New, "...")
}
