package compare

import (
	"context"
	"strings"

	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
)

// ComparePage runs the full DOM/CSS/API differ for one screen pair. Screen
// paths are section-relative; an unreadable artifact makes that side UI- or
// API-absent instead of failing the compare.
func (e *Engine) ComparePage(ctx context.Context, project, section1, section2, path1, path2 string) (*models.PageDiff, error) {
	dir1, err := e.gateway.RequireSection(project, section1)
	if err != nil {
		return nil, err
	}
	dir2, err := e.gateway.RequireSection(project, section2)
	if err != nil {
		return nil, err
	}

	screen1, err := storage.ResolveScreenDir(dir1, path1)
	if err != nil {
		return nil, err
	}
	screen2, err := storage.ResolveScreenDir(dir2, path2)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diff := &models.PageDiff{}
	diff.DOM = e.compareUI(screen1, screen2)
	diff.API = e.apiDiffer.Compare(e.gateway.LoadAPICalls(screen1), e.gateway.LoadAPICalls(screen2))

	diff.HasChanges = (diff.DOM != nil && diff.DOM.HasChanges) || (diff.API != nil && diff.API.HasChanges)
	diff.Summary = joinSummaries(diff)
	return diff, nil
}

// compareUI diffs the UI artifacts of two screen directories. Two structured
// trees get the full CSS walk; any HTML side degrades to element comparison.
func (e *Engine) compareUI(screen1, screen2 string) *models.DOMDiffResult {
	artifact1 := e.gateway.LoadUIArtifact(screen1)
	artifact2 := e.gateway.LoadUIArtifact(screen2)
	if artifact1 == nil && artifact2 == nil {
		return nil
	}

	if artifact1 != nil && artifact2 != nil && artifact1.Tree != nil && artifact2.Tree != nil {
		return e.domDiffer.CompareTrees(artifact1.Tree, artifact2.Tree)
	}
	return e.domDiffer.CompareElements(e.elementsOf(screen1, artifact1), e.elementsOf(screen2, artifact2))
}

// elementsOf linearizes one side's UI artifact into extracted elements.
func (e *Engine) elementsOf(screen string, artifact *storage.UIArtifact) []*models.DOMElement {
	if artifact == nil {
		return nil
	}
	if artifact.Tree != nil {
		return e.domDiffer.Extractor().ExtractFromTree(artifact.Tree)
	}
	elements, err := e.domDiffer.Extractor().ExtractFromHTML(artifact.HTML)
	if err != nil {
		e.logger.Warn().Str("screen", screen).Err(err).Msg("Unparseable HTML artifact, treating as UI-absent")
		return nil
	}
	return elements
}

func joinSummaries(diff *models.PageDiff) string {
	var parts []string
	if diff.DOM != nil && diff.DOM.Summary != "" {
		parts = append(parts, diff.DOM.Summary)
	}
	if diff.API != nil && diff.API.Summary != "" {
		parts = append(parts, diff.API.Summary)
	}
	if len(parts) == 0 {
		return "No changes"
	}
	return strings.Join(parts, "; ")
}
