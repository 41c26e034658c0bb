package reporter

import (
	"time"

	"github.com/aleister1102/webdiff/internal/models"
)

// reportData is the root template context for every report type. Exactly one
// of Comparison/TestRun/Health is set.
type reportData struct {
	Project       string
	Type          string
	Title         string
	GeneratedAt   time.Time
	IncludeCharts bool
	Comparison    *comparisonView
	TestRun       *testRunView
	Health        *healthView
	Charts        []*chartBlock
}

// chartBlock is one Chart.js config consumed by the embedded script.
type chartBlock struct {
	ID     string
	Config map[string]interface{}
}

type comparisonView struct {
	Section1 string
	Section2 string
	Summary  models.CompareSummary
	PassRate float64
	Items    []*models.CompareItem
}

type testRunView struct {
	SectionTimestamp string
	ScreenCount      int
	APICount         int
	Size             int64
	Comparison       *comparisonView
}

type healthView struct {
	Trend    []*sectionTrendPoint
	Hotspots []*hotspot
}

// sectionTrendPoint is one section's footprint in the health trend.
type sectionTrendPoint struct {
	Timestamp   string
	ScreenCount int
	APICount    int
	Size        int64
}

// hotspot is a screen ranked by how often it changed across recent adjacent
// section pairs.
type hotspot struct {
	Path        string
	ChangeCount int
}

// passRate is the fraction of current-side screens the shallow compare left
// untouched.
func passRate(summary models.CompareSummary) float64 {
	if summary.Total2 == 0 {
		return 100
	}
	return 100 * float64(summary.Unchanged) / float64(summary.Total2)
}

func newComparisonView(result *models.CompareResult) *comparisonView {
	return &comparisonView{
		Section1: result.Section1,
		Section2: result.Section2,
		Summary:  result.Summary,
		PassRate: passRate(result.Summary),
		Items:    result.Items,
	}
}

// summaryChart builds the status-distribution doughnut for a comparison.
func summaryChart(id string, summary models.CompareSummary) *chartBlock {
	return &chartBlock{
		ID: id,
		Config: map[string]interface{}{
			"type": "doughnut",
			"data": map[string]interface{}{
				"labels": []string{"Changed", "Added", "Removed", "Unchanged"},
				"datasets": []map[string]interface{}{{
					"data":            []int{summary.Changed, summary.Added, summary.Removed, summary.Unchanged},
					"backgroundColor": []string{"#f59e0b", "#3b82f6", "#ef4444", "#22c55e"},
				}},
			},
			"options": map[string]interface{}{"responsive": true},
		},
	}
}

// trendChart builds the per-section screen/API line chart for health reports.
func trendChart(id string, trend []*sectionTrendPoint) *chartBlock {
	labels := make([]string, 0, len(trend))
	screens := make([]int, 0, len(trend))
	apis := make([]int, 0, len(trend))
	for _, point := range trend {
		labels = append(labels, point.Timestamp)
		screens = append(screens, point.ScreenCount)
		apis = append(apis, point.APICount)
	}
	return &chartBlock{
		ID: id,
		Config: map[string]interface{}{
			"type": "line",
			"data": map[string]interface{}{
				"labels": labels,
				"datasets": []map[string]interface{}{
					{"label": "Screens", "data": screens, "borderColor": "#3b82f6"},
					{"label": "API calls", "data": apis, "borderColor": "#f59e0b"},
				},
			},
			"options": map[string]interface{}{"responsive": true},
		},
	}
}

// hotspotChart builds the changed-count bar chart for health reports.
func hotspotChart(id string, hotspots []*hotspot) *chartBlock {
	labels := make([]string, 0, len(hotspots))
	counts := make([]int, 0, len(hotspots))
	for _, spot := range hotspots {
		labels = append(labels, spot.Path)
		counts = append(counts, spot.ChangeCount)
	}
	return &chartBlock{
		ID: id,
		Config: map[string]interface{}{
			"type": "bar",
			"data": map[string]interface{}{
				"labels": labels,
				"datasets": []map[string]interface{}{{
					"label":           "Changed occurrences",
					"data":            counts,
					"backgroundColor": "#ef4444",
				}},
			},
			"options": map[string]interface{}{"responsive": true, "indexAxis": "y"},
		},
	}
}
