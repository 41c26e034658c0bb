package reporter

import (
	"context"
	"sort"

	"github.com/aleister1102/webdiff/internal/models"
)

// buildHealthView assembles the per-section trend and the hotspot list.
// Broken sections are skipped, never fatal.
func (g *Generator) buildHealthView(ctx context.Context, project string) (*healthView, error) {
	sections, err := g.gateway.ListSections(project)
	if err != nil {
		return nil, err
	}

	view := &healthView{}

	trendSections := sections
	if len(trendSections) > g.cfg.HealthSectionLimit {
		trendSections = trendSections[len(trendSections)-g.cfg.HealthSectionLimit:]
	}
	for _, section := range trendSections {
		point, err := g.trendPoint(project, section)
		if err != nil {
			g.logger.Warn().Str("project", project).Str("section", section).Err(err).Msg("Health trend skipped section")
			continue
		}
		view.Trend = append(view.Trend, point)
	}

	view.Hotspots = g.collectHotspots(ctx, project, sections)
	return view, nil
}

func (g *Generator) trendPoint(project, section string) (*sectionTrendPoint, error) {
	sectionDir, err := g.gateway.RequireSection(project, section)
	if err != nil {
		return nil, err
	}
	screens, err := g.gateway.EnumerateScreens(sectionDir)
	if err != nil {
		return nil, err
	}

	point := &sectionTrendPoint{Timestamp: section, ScreenCount: len(screens)}
	for _, screen := range screens {
		point.APICount += len(g.gateway.LoadAPICalls(screen.Dir))
	}
	if size, err := g.gateway.SectionSize(project, section); err == nil {
		point.Size = size
	}
	return point, nil
}

// collectHotspots compares the most recent adjacent section pairs and ranks
// screens by how often they came back changed.
func (g *Generator) collectHotspots(ctx context.Context, project string, sections []string) []*hotspot {
	if len(sections) < 2 {
		return nil
	}

	pairs := len(sections) - 1
	if pairs > g.cfg.HotspotPairLimit {
		pairs = g.cfg.HotspotPairLimit
	}
	start := len(sections) - 1 - pairs

	counts := make(map[string]int)
	for i := start; i < len(sections)-1; i++ {
		result, err := g.engine.CompareSections(ctx, project, sections[i], sections[i+1])
		if err != nil {
			g.logger.Warn().
				Str("project", project).
				Str("section1", sections[i]).
				Str("section2", sections[i+1]).
				Err(err).
				Msg("Hotspot pair skipped")
			continue
		}
		for _, item := range result.Items {
			if item.Status == models.StatusChanged {
				counts[item.Path]++
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	hotspots := make([]*hotspot, 0, len(counts))
	for path, count := range counts {
		hotspots = append(hotspots, &hotspot{Path: path, ChangeCount: count})
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].ChangeCount != hotspots[j].ChangeCount {
			return hotspots[i].ChangeCount > hotspots[j].ChangeCount
		}
		return hotspots[i].Path < hotspots[j].Path
	})

	if len(hotspots) > g.cfg.HotspotScreenLimit {
		hotspots = hotspots[:g.cfg.HotspotScreenLimit]
	}
	return hotspots
}
