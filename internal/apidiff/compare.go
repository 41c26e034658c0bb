package apidiff

import (
	"fmt"
	"strings"

	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/rs/zerolog"
)

// APIDiffer compares two recorded API call lists endpoint by endpoint.
type APIDiffer struct {
	logger zerolog.Logger
	body   *bodyDiffer
}

// NewAPIDiffer creates a new API differ.
func NewAPIDiffer(logger zerolog.Logger, cfg config.DifferConfig) *APIDiffer {
	return &APIDiffer{
		logger: logger.With().Str("component", "APIDiffer").Logger(),
		body:   &bodyDiffer{maxDepth: cfg.MaxBodyDiffDepth},
	}
}

// Compare diffs two normalized API call lists. Calls sharing an endpoint key
// pair by index; order sensitivity within one endpoint is accepted.
func (ad *APIDiffer) Compare(calls1, calls2 []*models.APICall) *models.APIDiffResult {
	groups1, order1 := groupByEndpoint(calls1)
	groups2, order2 := groupByEndpoint(calls2)

	result := &models.APIDiffResult{
		TotalEndpoints1: len(groups1),
		TotalEndpoints2: len(groups2),
	}

	for _, key := range order1 {
		list1 := groups1[key]
		list2, shared := groups2[key]
		if !shared {
			result.Removed = append(result.Removed, &models.EndpointChange{
				Endpoint:    key,
				Count:       len(list1),
				StatusCodes: statusCodesOf(list1),
			})
			continue
		}
		result.MatchedEndpoints++
		result.Changed = append(result.Changed, ad.comparePairs(key, list1, list2)...)
	}

	for _, key := range order2 {
		if _, shared := groups1[key]; shared {
			continue
		}
		list2 := groups2[key]
		result.Added = append(result.Added, &models.EndpointChange{
			Endpoint:    key,
			Count:       len(list2),
			StatusCodes: statusCodesOf(list2),
		})
	}

	result.HasChanges = len(result.Added) > 0 || len(result.Removed) > 0 || len(result.Changed) > 0
	result.Summary = ad.buildSummary(result)
	return result
}

// comparePairs pairs the calls of one shared endpoint by index and reports
// status and body changes per pair.
func (ad *APIDiffer) comparePairs(key string, list1, list2 []*models.APICall) []*models.EndpointPairChange {
	shared := len(list1)
	if len(list2) < shared {
		shared = len(list2)
	}

	var changes []*models.EndpointPairChange
	for i := 0; i < shared; i++ {
		call1, call2 := list1[i], list2[i]
		change := &models.EndpointPairChange{Endpoint: key, Index: i}

		if call1.Status != call2.Status {
			change.StatusChanged = &models.StatusChange{Old: call1.Status, New: call2.Status}
		}
		change.RequestBodyChanged = ad.body.DiffBodies(call1.RequestBody, call2.RequestBody)
		change.ResponseBodyChanged = ad.body.DiffBodies(call1.ResponseBody, call2.ResponseBody)

		if change.StatusChanged != nil ||
			len(change.RequestBodyChanged) > 0 || len(change.ResponseBodyChanged) > 0 {
			changes = append(changes, change)
		}
	}
	return changes
}

// buildSummary renders a short human-readable change summary.
func (ad *APIDiffer) buildSummary(result *models.APIDiffResult) string {
	if !result.HasChanges {
		return "No API changes"
	}

	var parts []string
	if n := len(result.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d endpoints added", n))
	}
	if n := len(result.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d endpoints removed", n))
	}
	if n := len(result.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d calls changed", n))
	}
	return "API: " + strings.Join(parts, ", ")
}
