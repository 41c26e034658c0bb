package testrunner

import (
	"context"
	"time"

	"github.com/aleister1102/webdiff/internal/compare"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Runner scores sections against the main baseline along three axes and
// persists the pass/fail history.
type Runner struct {
	logger  zerolog.Logger
	gateway *storage.Gateway
	engine  *compare.Engine
	store   *ResultStore
	cfg     config.TestRunnerConfig
}

// NewRunner creates a regression test runner.
func NewRunner(gateway *storage.Gateway, engine *compare.Engine, store *ResultStore, cfg config.TestRunnerConfig, logger zerolog.Logger) *Runner {
	return &Runner{
		logger:  logger.With().Str("component", "TestRunner").Logger(),
		gateway: gateway,
		engine:  engine,
		store:   store,
		cfg:     cfg,
	}
}

// RunOptions parameterize one regression run.
type RunOptions struct {
	Project          string
	SectionTimestamp string
	// Thresholds default to the configured values when nil and are echoed
	// into the persisted result.
	Thresholds *models.TestThresholds
	// Weights default to equal when nil.
	Weights *models.TestWeights
	// VisualScores carries externally computed visual similarity per screen
	// path. Screens without an entry default to 100.
	VisualScores map[string]float64
}

// Store exposes the underlying result store.
func (r *Runner) Store() *ResultStore {
	return r.store
}

// DefaultPageSize returns the configured history page size.
func (r *Runner) DefaultPageSize() int {
	return r.cfg.ResultsPageSize
}

// Run scores one section against main and appends the result to the
// project's test history. Individual screen failures contribute a failing
// screen entry; they never abort the run.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*models.TestResult, error) {
	thresholds := r.resolveThresholds(opts.Thresholds)
	weights := resolveWeights(opts.Weights)

	comparison, err := r.engine.CompareSections(ctx, opts.Project, config.MainSectionName, opts.SectionTimestamp)
	if err != nil {
		return nil, err
	}

	result := &models.TestResult{
		ID:               uuid.NewString(),
		SectionTimestamp: opts.SectionTimestamp,
		Thresholds:       thresholds,
		Weights:          weights,
		CreatedAt:        time.Now().UTC(),
		Screens:          []*models.TestScreenResult{},
	}

	for _, item := range comparison.Items {
		if item.Page1 == nil || item.Page2 == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Screens = append(result.Screens, r.scoreScreen(ctx, opts, thresholds, item))
	}

	r.aggregate(result, weights, thresholds)

	if err := r.store.Append(opts.Project, result); err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("project", opts.Project).
		Str("section", opts.SectionTimestamp).
		Bool("passed", result.Passed).
		Float64("overall", result.OverallScore).
		Msg("Test run recorded")
	return result, nil
}

// RunAll scores every non-replay section sequentially. Per-section failures
// are logged and skipped so one broken section cannot sink the batch.
func (r *Runner) RunAll(ctx context.Context, project string, opts RunOptions) ([]*models.TestResult, error) {
	sections, err := r.gateway.ListSections(project)
	if err != nil {
		return nil, err
	}

	var results []*models.TestResult
	for _, section := range sections {
		if storage.IsReplaySection(section) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		sectionOpts := opts
		sectionOpts.Project = project
		sectionOpts.SectionTimestamp = section
		result, err := r.Run(ctx, sectionOpts)
		if err != nil {
			r.logger.Warn().Str("project", project).Str("section", section).Err(err).Msg("Batch test run skipped section")
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// scoreScreen runs the deep differ for one matched screen and derives its
// three scores.
func (r *Runner) scoreScreen(ctx context.Context, opts RunOptions, thresholds models.TestThresholds, item *models.CompareItem) *models.TestScreenResult {
	screen := &models.TestScreenResult{
		Name:        item.Name,
		Path:        item.Path,
		VisualScore: visualScoreFor(opts.VisualScores, item.Path),
	}

	diff, err := r.engine.ComparePage(ctx, opts.Project, config.MainSectionName, opts.SectionTimestamp, item.Page1.Path, item.Page2.Path)
	if err != nil {
		screen.Note = "screen could not be read: " + err.Error()
		screen.Passed = false
		return screen
	}

	screen.DOMScore = domScore(diff.DOM)
	screen.APIScore = apiScore(diff.API)
	screen.Passed = screen.DOMScore >= thresholds.DOM &&
		screen.APIScore >= thresholds.API &&
		screen.VisualScore >= thresholds.Visual
	return screen
}

// aggregate folds the per-screen scores into section-level scores and the
// pass verdict. A section with no comparable screens passes vacuously.
func (r *Runner) aggregate(result *models.TestResult, weights models.TestWeights, thresholds models.TestThresholds) {
	if len(result.Screens) == 0 {
		result.DOMScore, result.APIScore, result.VisualScore = 100, 100, 100
		result.OverallScore = 100
		result.Passed = true
		return
	}

	result.Passed = true
	var domSum, apiSum, visualSum float64
	for _, screen := range result.Screens {
		domSum += screen.DOMScore
		apiSum += screen.APIScore
		visualSum += screen.VisualScore
		if !screen.Passed {
			result.Passed = false
		}
	}

	n := float64(len(result.Screens))
	result.DOMScore = domSum / n
	result.APIScore = apiSum / n
	result.VisualScore = visualSum / n

	weightSum := weights.DOM + weights.API + weights.Visual
	result.OverallScore = (result.DOMScore*weights.DOM + result.APIScore*weights.API + result.VisualScore*weights.Visual) / weightSum
}

// domScore derives the DOM similarity percentage from a deep diff, measured
// against the baseline element count.
func domScore(diff *models.DOMDiffResult) float64 {
	if diff == nil || diff.TotalElements1 == 0 {
		return 100
	}
	score := 100 - float64(diff.ChangedElements)/float64(diff.TotalElements1)*100
	if score < 0 {
		return 0
	}
	return score
}

// apiScore is the fraction of baseline endpoints still matched cleanly.
// Endpoints with status or body changes do not count as matched.
func apiScore(diff *models.APIDiffResult) float64 {
	if diff == nil || diff.TotalEndpoints1 == 0 {
		return 100
	}

	changed := make(map[string]bool)
	for _, change := range diff.Changed {
		changed[change.Endpoint] = true
	}
	clean := diff.MatchedEndpoints - len(changed)
	if clean < 0 {
		clean = 0
	}
	return 100 * float64(clean) / float64(diff.TotalEndpoints1)
}

func visualScoreFor(scores map[string]float64, path string) float64 {
	if score, ok := scores[path]; ok {
		return score
	}
	return 100
}

func (r *Runner) resolveThresholds(overrides *models.TestThresholds) models.TestThresholds {
	if overrides != nil {
		return *overrides
	}
	return models.TestThresholds{
		DOM:    r.cfg.DefaultDOMThreshold,
		API:    r.cfg.DefaultAPIThreshold,
		Visual: r.cfg.DefaultVisualThreshold,
	}
}

// resolveWeights falls back to equal weighting when no override is given or
// the override sums to zero; the effective weights are persisted with the
// result.
func resolveWeights(overrides *models.TestWeights) models.TestWeights {
	if overrides == nil || overrides.DOM+overrides.API+overrides.Visual <= 0 {
		return models.DefaultTestWeights()
	}
	return *overrides
}
