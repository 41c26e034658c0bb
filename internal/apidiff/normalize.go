package apidiff

import (
	"net/url"
	"strings"

	"github.com/aleister1102/webdiff/internal/models"
)

// EndpointKey builds the "<METHOD> <pathname>" grouping key for one call.
// Unparseable URLs fall back to the raw string stripped of query/fragment.
func EndpointKey(call *models.APICall) string {
	method := strings.ToUpper(strings.TrimSpace(call.Method))
	if method == "" {
		method = "GET"
	}
	return method + " " + pathnameOf(call.URL)
}

func pathnameOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err == nil && parsed.Path != "" {
		return parsed.Path
	}

	trimmed := rawURL
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}

// groupByEndpoint buckets calls per endpoint key, preserving call order and
// first-seen key order.
func groupByEndpoint(calls []*models.APICall) (map[string][]*models.APICall, []string) {
	groups := make(map[string][]*models.APICall)
	var order []string
	for _, call := range calls {
		key := EndpointKey(call)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], call)
	}
	return groups, order
}

func statusCodesOf(calls []*models.APICall) []int {
	codes := make([]int, 0, len(calls))
	for _, call := range calls {
		codes = append(codes, call.Status)
	}
	return codes
}
