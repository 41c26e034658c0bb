package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/models"
)

// FlowFileName is the flow graph artifact inside a project or section root.
const FlowFileName = "flow.json"

// LoadProjectFlow reads a project's baseline flow graph. A missing file
// yields an empty graph, not an error.
func (g *Gateway) LoadProjectFlow(project string) (*models.FlowGraph, error) {
	projectDir, err := g.RequireProject(project)
	if err != nil {
		return nil, err
	}
	return g.loadFlow(filepath.Join(projectDir, FlowFileName))
}

// LoadSectionFlow reads a section's captured flow graph. A missing file
// yields an empty graph, not an error.
func (g *Gateway) LoadSectionFlow(project, section string) (*models.FlowGraph, error) {
	sectionDir, err := g.RequireSection(project, section)
	if err != nil {
		return nil, err
	}
	return g.loadFlow(filepath.Join(sectionDir, FlowFileName))
}

// SaveProjectFlow writes the project flow graph atomically so a crash
// mid-write never leaves a truncated flow.json behind.
func (g *Gateway) SaveProjectFlow(project string, flow *models.FlowGraph) error {
	projectDir, err := g.RequireProject(project)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(flow, "", "  ")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal flow graph")
	}
	return g.files.WriteFileAtomic(filepath.Join(projectDir, FlowFileName), data)
}

func (g *Gateway) loadFlow(path string) (*models.FlowGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.FlowGraph{}, nil
		}
		return nil, errorwrapper.WrapError(err, "failed to read flow graph: "+path)
	}

	var flow models.FlowGraph
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, errorwrapper.WrapError(err, "malformed flow graph: "+path)
	}
	return &flow, nil
}
