package compare

import (
	"context"
	"sort"
	"sync"

	"github.com/aleister1102/webdiff/internal/apidiff"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/domdiff"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/rs/zerolog"
)

// Engine compares two sections of a project screen by screen. The top-level
// comparison is shallow; deep per-screen diffs run through ComparePage.
type Engine struct {
	logger      zerolog.Logger
	gateway     *storage.Gateway
	domDiffer   *domdiff.DOMDiffer
	apiDiffer   *apidiff.APIDiffer
	concurrency int
}

// NewEngine creates a compare engine on top of the storage gateway.
func NewEngine(gateway *storage.Gateway, logger zerolog.Logger, differCfg config.DifferConfig, compareCfg config.CompareConfig) *Engine {
	componentLogger := logger.With().Str("component", "CompareEngine").Logger()
	concurrency := compareCfg.ScreenConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		logger:      componentLogger,
		gateway:     gateway,
		domDiffer:   domdiff.NewDOMDiffer(componentLogger, differCfg),
		apiDiffer:   apidiff.NewAPIDiffer(componentLogger, differCfg),
		concurrency: concurrency,
	}
}

// CompareSections compares two sections in shallow mode. Matched screens
// that cheaply look unchanged are reported unchanged; anything else is
// changed without a diff body. When section1 is the main baseline, screens
// absent from it are never reported removed.
func (e *Engine) CompareSections(ctx context.Context, project, section1, section2 string) (*models.CompareResult, error) {
	dir1, err := e.gateway.RequireSection(project, section1)
	if err != nil {
		return nil, err
	}
	dir2, err := e.gateway.RequireSection(project, section2)
	if err != nil {
		return nil, err
	}

	entries1, err := e.loadEntries(ctx, dir1)
	if err != nil {
		return nil, err
	}
	entries2, err := e.loadEntries(ctx, dir2)
	if err != nil {
		return nil, err
	}

	side1 := dedupByIdentity(entries1)
	side2 := dedupByIdentity(entries2)

	result := &models.CompareResult{Section1: section1, Section2: section2}
	result.Summary.Total1 = len(side1.order)
	result.Summary.Total2 = len(side2.order)

	for _, identity := range side1.order {
		entry1 := side1.byIdentity[identity]
		entry2, matched := side2.byIdentity[identity]
		if !matched {
			// Main is a growing baseline: screens it has not absorbed yet
			// are not regressions of the compared section.
			if section1 == config.MainSectionName {
				continue
			}
			result.Items = append(result.Items, &models.CompareItem{
				Status:   models.StatusRemoved,
				Path:     entry1.info.Path,
				Name:     entry1.info.Name,
				Page1:    entry1.info,
				Identity: identity,
			})
			continue
		}

		result.Summary.Matched++
		status, matchInfo := shallowStatus(entry1, entry2)
		result.Items = append(result.Items, &models.CompareItem{
			Status:    status,
			Path:      entry2.info.Path,
			Name:      entry2.info.Name,
			Page1:     entry1.info,
			Page2:     entry2.info,
			Identity:  identity,
			MatchInfo: matchInfo,
		})
	}

	for _, identity := range side2.order {
		if _, matched := side1.byIdentity[identity]; matched {
			continue
		}
		entry2 := side2.byIdentity[identity]
		result.Items = append(result.Items, &models.CompareItem{
			Status:   models.StatusAdded,
			Path:     entry2.info.Path,
			Name:     entry2.info.Name,
			Page2:    entry2.info,
			Identity: identity,
		})
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		ri, rj := models.StatusRank(result.Items[i].Status), models.StatusRank(result.Items[j].Status)
		if ri != rj {
			return ri < rj
		}
		return result.Items[i].Path < result.Items[j].Path
	})

	for _, item := range result.Items {
		switch item.Status {
		case models.StatusChanged:
			result.Summary.Changed++
		case models.StatusAdded:
			result.Summary.Added++
		case models.StatusRemoved:
			result.Summary.Removed++
		case models.StatusUnchanged:
			result.Summary.Unchanged++
		}
	}

	e.logger.Info().
		Str("project", project).
		Str("section1", section1).
		Str("section2", section2).
		Int("matched", result.Summary.Matched).
		Int("changed", result.Summary.Changed).
		Msg("Sections compared")
	return result, nil
}

// loadEntries enumerates a section's screens and loads their metadata with
// bounded parallelism. Entry order follows the enumeration order.
func (e *Engine) loadEntries(ctx context.Context, sectionDir string) ([]*screenEntry, error) {
	refs, err := e.gateway.EnumerateScreens(sectionDir)
	if err != nil {
		return nil, err
	}

	entries := make([]*screenEntry, len(refs))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref *storage.ScreenRef) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			entries[i] = newScreenEntry(ref, e.gateway.LoadScreenMeta(ref.Dir))
		}(i, ref)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// shallowStatus decides unchanged/changed from artifact sizes and, when both
// sides carry one, the capture-layer signature hash.
func shallowStatus(entry1, entry2 *screenEntry) (models.CompareStatus, *models.MatchInfo) {
	info1, info2 := entry1.info, entry2.info

	if info1.SignatureHash != "" && info2.SignatureHash != "" && info1.SignatureHash != info2.SignatureHash {
		return models.StatusChanged, &models.MatchInfo{Reason: "signature hash mismatch"}
	}
	if info1.UISize != info2.UISize {
		return models.StatusChanged, &models.MatchInfo{Reason: "ui artifact size mismatch"}
	}
	if info1.APISize != info2.APISize {
		return models.StatusChanged, &models.MatchInfo{Reason: "api artifact size mismatch"}
	}

	if info1.SignatureHash != "" && info2.SignatureHash != "" {
		return models.StatusUnchanged, &models.MatchInfo{Reason: "signature hash and artifact sizes equal"}
	}
	return models.StatusUnchanged, &models.MatchInfo{Reason: "artifact sizes equal"}
}
