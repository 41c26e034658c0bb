package reporter

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"path/filepath"
	"time"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/compare"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

const reportTemplateName = "report.html.tmpl"

// PDFRenderer renders an HTML file to PDF.
type PDFRenderer interface {
	Render(ctx context.Context, htmlPath, pdfPath string) error
}

// Generator builds comparison, test-run, and project-health reports as HTML
// with optional PDF rendering.
type Generator struct {
	logger  zerolog.Logger
	gateway *storage.Gateway
	engine  *compare.Engine
	store   *ReportStore
	cfg     config.ReporterConfig
	pdf     PDFRenderer
	tmpl    *template.Template
}

// NewGenerator creates a report generator with the headless-browser PDF
// renderer.
func NewGenerator(gateway *storage.Gateway, engine *compare.Engine, store *ReportStore, cfg config.ReporterConfig, logger zerolog.Logger) (*Generator, error) {
	componentLogger := logger.With().Str("component", "ReportGenerator").Logger()

	tmpl, err := template.New(reportTemplateName).Funcs(reportTemplateFunctions()).ParseFS(templateFS, "templates/"+reportTemplateName)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse report template")
	}

	return &Generator{
		logger:  componentLogger,
		gateway: gateway,
		engine:  engine,
		store:   store,
		cfg:     cfg,
		pdf:     newRodRenderer(cfg, componentLogger),
		tmpl:    tmpl,
	}, nil
}

// WithPDFRenderer swaps the PDF renderer.
func (g *Generator) WithPDFRenderer(renderer PDFRenderer) *Generator {
	g.pdf = renderer
	return g
}

// Store exposes the underlying report store.
func (g *Generator) Store() *ReportStore {
	return g.store
}

// GenerateReport builds one report. Every call also collects expired report
// records. A failed PDF render keeps the HTML half and the record.
func (g *Generator) GenerateReport(ctx context.Context, project string, opts models.ReportOptions) (*models.ReportRecord, error) {
	if opts.Format == "" {
		opts.Format = models.ReportFormatHTML
	}
	if opts.Format != models.ReportFormatHTML && opts.Format != models.ReportFormatPDF {
		return nil, errorwrapper.NewValidationError("format", opts.Format, "unknown report format")
	}

	if err := g.store.CollectExpired(project, time.Now()); err != nil {
		g.logger.Warn().Str("project", project).Err(err).Msg("Report retention collection failed")
	}

	data, err := g.buildData(ctx, project, opts)
	if err != nil {
		return nil, err
	}

	var rendered bytes.Buffer
	if err := g.tmpl.Execute(&rendered, data); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to render report template")
	}

	dir, err := g.store.Dir(project)
	if err != nil {
		return nil, err
	}

	record := &models.ReportRecord{
		ID:        uuid.NewString(),
		Type:      opts.Type,
		Format:    opts.Format,
		Section1:  opts.Section1,
		Section2:  opts.Section2,
		CreatedAt: data.GeneratedAt,
		Options:   opts,
	}
	record.HTMLFile = "report-" + record.ID + ".html"

	if err := g.gateway.Files().WriteFileAtomic(filepath.Join(dir, record.HTMLFile), rendered.Bytes()); err != nil {
		return nil, err
	}

	if opts.Format == models.ReportFormatPDF {
		pdfFile := "report-" + record.ID + ".pdf"
		if err := g.pdf.Render(ctx, filepath.Join(dir, record.HTMLFile), filepath.Join(dir, pdfFile)); err != nil {
			g.logger.Warn().Str("project", project).Err(err).Msg("PDF render failed, keeping HTML report")
		} else {
			record.PDFFile = pdfFile
		}
	}

	if err := g.store.Append(project, record); err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("project", project).
		Str("type", opts.Type).
		Str("report", record.ID).
		Msg("Report generated")
	return record, nil
}

// buildData dispatches on the report type.
func (g *Generator) buildData(ctx context.Context, project string, opts models.ReportOptions) (*reportData, error) {
	data := &reportData{
		Project:       project,
		Type:          opts.Type,
		GeneratedAt:   time.Now().UTC(),
		IncludeCharts: opts.IncludeCharts,
	}

	switch opts.Type {
	case models.ReportTypeComparison:
		if opts.Section1 == "" || opts.Section2 == "" {
			return nil, errorwrapper.NewValidationError("sections", "", "comparison reports need section1 and section2")
		}
		result, err := g.engine.CompareSections(ctx, project, opts.Section1, opts.Section2)
		if err != nil {
			return nil, err
		}
		data.Title = "Comparison report"
		data.Comparison = newComparisonView(result)
		data.Charts = append(data.Charts, summaryChart("summary-chart", result.Summary))

	case models.ReportTypeTestRun:
		if opts.Section1 == "" {
			return nil, errorwrapper.NewValidationError("section1", "", "test-run reports need a section timestamp")
		}
		view, err := g.buildTestRunView(ctx, project, opts.Section1)
		if err != nil {
			return nil, err
		}
		data.Title = "Test run report"
		data.TestRun = view
		if view.Comparison != nil {
			data.Charts = append(data.Charts, summaryChart("summary-chart", view.Comparison.Summary))
		}

	case models.ReportTypeProjectHealth:
		view, err := g.buildHealthView(ctx, project)
		if err != nil {
			return nil, err
		}
		data.Title = "Project health report"
		data.Health = view
		data.Charts = append(data.Charts, trendChart("trend-chart", view.Trend))
		if len(view.Hotspots) > 0 {
			data.Charts = append(data.Charts, hotspotChart("hotspot-chart", view.Hotspots))
		}

	default:
		return nil, errorwrapper.NewValidationError("type", opts.Type, "unknown report type")
	}

	return data, nil
}

// buildTestRunView gathers one section's footprint plus a comparison against
// main when main holds any screens.
func (g *Generator) buildTestRunView(ctx context.Context, project, section string) (*testRunView, error) {
	sectionDir, err := g.gateway.RequireSection(project, section)
	if err != nil {
		return nil, err
	}

	view := &testRunView{SectionTimestamp: section}
	screens, err := g.gateway.EnumerateScreens(sectionDir)
	if err != nil {
		return nil, err
	}
	view.ScreenCount = len(screens)
	for _, screen := range screens {
		view.APICount += len(g.gateway.LoadAPICalls(screen.Dir))
	}
	if size, err := g.gateway.SectionSize(project, section); err == nil {
		view.Size = size
	}

	if g.mainHasScreens(project) {
		result, err := g.engine.CompareSections(ctx, project, config.MainSectionName, section)
		if err != nil {
			g.logger.Warn().Str("project", project).Err(err).Msg("Test-run report comparison skipped")
		} else {
			view.Comparison = newComparisonView(result)
		}
	}
	return view, nil
}

func (g *Generator) mainHasScreens(project string) bool {
	mainDir, err := g.gateway.SectionDir(project, config.MainSectionName)
	if err != nil {
		return false
	}
	screens, err := g.gateway.EnumerateScreens(mainDir)
	return err == nil && len(screens) > 0
}
