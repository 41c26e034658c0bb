package reporter

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// A4 paper dimensions in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// rodRenderer renders report HTML to PDF through a headless Chromium
// instance. Each render launches its own browser; PDF generation is rare
// enough that pooling is not worth the lifecycle management.
type rodRenderer struct {
	cfg    config.ReporterConfig
	logger zerolog.Logger
}

func newRodRenderer(cfg config.ReporterConfig, logger zerolog.Logger) *rodRenderer {
	return &rodRenderer{
		cfg:    cfg,
		logger: logger.With().Str("component", "PDFRenderer").Logger(),
	}
}

// Render loads the HTML into a fresh page and prints it as A4 with
// backgrounds. Browser launch failures surface as transient errors.
func (r *rodRenderer) Render(ctx context.Context, htmlPath, pdfPath string) error {
	html, err := os.ReadFile(htmlPath)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to read report HTML: "+htmlPath)
	}

	chromeLauncher := launcher.New().
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu")
	if r.cfg.ChromePath != "" {
		chromeLauncher = chromeLauncher.Bin(r.cfg.ChromePath)
	}

	controlURL, err := chromeLauncher.Launch()
	if err != nil {
		return errorwrapper.NewTransientError("pdf render", errorwrapper.WrapError(err, "failed to launch browser"))
	}
	defer chromeLauncher.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return errorwrapper.NewTransientError("pdf render", errorwrapper.WrapError(err, "failed to connect browser"))
	}
	defer func() {
		if err := browser.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("Browser close failed")
		}
	}()

	timeout := time.Duration(r.cfg.PDFTimeoutSeconds) * time.Second
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return errorwrapper.NewTransientError("pdf render", errorwrapper.WrapError(err, "failed to open page"))
	}
	page = page.Timeout(timeout)

	if err := page.SetDocumentContent(string(html)); err != nil {
		return errorwrapper.WrapError(err, "failed to set report content")
	}
	if err := page.WaitIdle(timeout); err != nil {
		r.logger.Warn().Err(err).Msg("Page never went idle, printing anyway")
	}

	paperWidth := a4WidthInches
	paperHeight := a4HeightInches
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      &paperWidth,
		PaperHeight:     &paperHeight,
	})
	if err != nil {
		return errorwrapper.WrapError(err, "failed to print pdf")
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to read pdf stream")
	}
	if err := os.WriteFile(pdfPath, pdf, reportFilePerms); err != nil {
		return errorwrapper.WrapError(err, "failed to write pdf: "+pdfPath)
	}

	r.logger.Info().Str("pdf", pdfPath).Int("bytes", len(pdf)).Msg("PDF rendered")
	return nil
}
