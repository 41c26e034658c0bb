package models

import "time"

// Report types.
const (
	ReportTypeComparison    = "comparison"
	ReportTypeTestRun       = "test-run"
	ReportTypeProjectHealth = "project-health"
)

// Report formats.
const (
	ReportFormatHTML = "html"
	ReportFormatPDF  = "pdf"
)

// ReportOptions capture the caller's generation request for the record.
type ReportOptions struct {
	Type          string `json:"type"`
	Section1      string `json:"section1,omitempty"`
	Section2      string `json:"section2,omitempty"`
	Format        string `json:"format"`
	IncludeCharts bool   `json:"includeCharts"`
}

// ReportRecord is one entry of .reports/reports.json. HTML and PDF files are
// siblings of the index; deleting a record must delete both sides.
type ReportRecord struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Format    string        `json:"format"`
	Section1  string        `json:"section1,omitempty"`
	Section2  string        `json:"section2,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	HTMLFile  string        `json:"htmlFile"`
	PDFFile   string        `json:"pdfFile,omitempty"`
	Options   ReportOptions `json:"options"`
}
