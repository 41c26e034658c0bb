package models

import "time"

// TestThresholds are the pass thresholds applied to one run, persisted with
// the result so history stays reproducible.
type TestThresholds struct {
	DOM    float64 `json:"dom"`
	API    float64 `json:"api"`
	Visual float64 `json:"visual"`
}

// TestWeights control the overall-score weighted average. Equal by default.
type TestWeights struct {
	DOM    float64 `json:"dom"`
	API    float64 `json:"api"`
	Visual float64 `json:"visual"`
}

// DefaultTestWeights returns equal weighting across the three axes.
func DefaultTestWeights() TestWeights {
	return TestWeights{DOM: 1, API: 1, Visual: 1}
}

// TestScreenResult is one screen's scores within a run.
type TestScreenResult struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	DOMScore    float64 `json:"domScore"`
	APIScore    float64 `json:"apiScore"`
	VisualScore float64 `json:"visualScore"`
	Passed      bool    `json:"passed"`
	Note        string  `json:"note,omitempty"`
}

// TestResult is one persisted regression test run.
type TestResult struct {
	ID               string              `json:"id"`
	SectionTimestamp string              `json:"sectionTimestamp"`
	Passed           bool                `json:"passed"`
	DOMScore         float64             `json:"domScore"`
	APIScore         float64             `json:"apiScore"`
	VisualScore      float64             `json:"visualScore"`
	OverallScore     float64             `json:"overallScore"`
	Thresholds       TestThresholds      `json:"thresholds"`
	Weights          TestWeights         `json:"weights"`
	Screens          []*TestScreenResult `json:"screens"`
	CreatedAt        time.Time           `json:"createdAt"`
	DOMDiff          *DOMDiffResult      `json:"domDiff,omitempty"`
	APIDiff          *APIDiffResult      `json:"apiDiff,omitempty"`
	VisualDiff       string              `json:"visualDiff,omitempty"`
}

// TestStatistics folds a project's test history.
type TestStatistics struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}
