package server

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/merge"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/aleister1102/webdiff/internal/testrunner"
)

// --- projects and sections ---

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.gateway.ListProjects()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

type createProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.gateway.CreateProject(req.Name); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"project": req.Name})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.gateway.DeleteProject(r.PathValue("project")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.gateway.ListSections(r.PathValue("project"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := s.gateway.DeleteSection(r.PathValue("project"), r.PathValue("section")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- compare ---

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	result, err := s.engine.CompareSections(r.Context(), r.PathValue("project"), r.PathValue("s1"), r.PathValue("s2"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleComparePage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s1, s2 := query.Get("s1"), query.Get("s2")
	p1, p2 := query.Get("p1"), query.Get("p2")
	if s1 == "" || s2 == "" || p1 == "" || p2 == "" {
		s.writeError(w, errorwrapper.NewValidationError("query", "", "s1, s2, p1 and p2 are required"))
		return
	}

	diff, err := s.engine.ComparePage(r.Context(), r.PathValue("project"), s1, s2, p1, p2)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, diff)
}

// --- merge ---

type mergeRequest struct {
	SectionTimestamp string   `json:"sectionTimestamp" validate:"required"`
	Folders          []string `json:"folders"`
	DeleteAfter      bool     `json:"deleteAfter"`
}

func (s *Server) mergeOptions(r *http.Request) (merge.Options, error) {
	var req mergeRequest
	if err := s.decodeBody(r, &req); err != nil {
		return merge.Options{}, err
	}
	return merge.Options{
		Project:          r.PathValue("project"),
		SectionTimestamp: req.SectionTimestamp,
		Folders:          req.Folders,
		DeleteAfter:      req.DeleteAfter,
	}, nil
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	opts, err := s.mergeOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.merger.Merge(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// Partial failure still means the operation ran: 200 with success:false.
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMergePreview(w http.ResponseWriter, r *http.Request) {
	opts, err := s.mergeOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	entries, err := s.merger.Preview(opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"folders": entries})
}

// --- test runner ---

type thresholdRequest struct {
	DOM    float64 `json:"dom" validate:"gte=0,lte=100"`
	API    float64 `json:"api" validate:"gte=0,lte=100"`
	Visual float64 `json:"visual" validate:"gte=0,lte=100"`
}

type weightsRequest struct {
	DOM    float64 `json:"dom" validate:"gte=0"`
	API    float64 `json:"api" validate:"gte=0"`
	Visual float64 `json:"visual" validate:"gte=0"`
}

func (w *weightsRequest) toModel() *models.TestWeights {
	if w == nil {
		return nil
	}
	return &models.TestWeights{DOM: w.DOM, API: w.API, Visual: w.Visual}
}

type testRunRequest struct {
	ProjectName      string             `json:"projectName" validate:"required"`
	SectionTimestamp string             `json:"sectionTimestamp" validate:"required"`
	Threshold        *thresholdRequest  `json:"threshold"`
	Weights          *weightsRequest    `json:"weights"`
	VisualScores     map[string]float64 `json:"visualScores"`
}

func (s *Server) handleTestRun(w http.ResponseWriter, r *http.Request) {
	var req testRunRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	opts := testrunner.RunOptions{
		Project:          req.ProjectName,
		SectionTimestamp: req.SectionTimestamp,
		Weights:          req.Weights.toModel(),
		VisualScores:     req.VisualScores,
	}
	if req.Threshold != nil {
		opts.Thresholds = &models.TestThresholds{
			DOM:    req.Threshold.DOM,
			API:    req.Threshold.API,
			Visual: req.Threshold.Visual,
		}
	}

	result, err := s.runner.Run(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type testRunAllRequest struct {
	ProjectName string            `json:"projectName" validate:"required"`
	Threshold   *thresholdRequest `json:"threshold"`
	Weights     *weightsRequest   `json:"weights"`
}

func (s *Server) handleTestRunAll(w http.ResponseWriter, r *http.Request) {
	var req testRunAllRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	opts := testrunner.RunOptions{Weights: req.Weights.toModel()}
	if req.Threshold != nil {
		opts.Thresholds = &models.TestThresholds{
			DOM:    req.Threshold.DOM,
			API:    req.Threshold.API,
			Visual: req.Threshold.Visual,
		}
	}

	results, err := s.runner.RunAll(r.Context(), req.ProjectName, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (s *Server) handleTestResults(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", s.runner.DefaultPageSize())

	results, total, err := s.runner.Store().List(r.PathValue("project"), page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (s *Server) handleTestStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.runner.Store().Statistics(r.PathValue("project"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTestResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Store().Get(r.PathValue("project"), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTestResultDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Store().Delete(r.PathValue("project"), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- reports ---

type reportRequest struct {
	Type          string `json:"type" validate:"required,oneof=comparison test-run project-health"`
	Section1      string `json:"section1"`
	Section2      string `json:"section2"`
	Format        string `json:"format" validate:"omitempty,oneof=html pdf"`
	IncludeCharts bool   `json:"includeCharts"`
}

func (s *Server) handleReportGenerate(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	record, err := s.generator.GenerateReport(r.Context(), r.PathValue("project"), models.ReportOptions{
		Type:          req.Type,
		Section1:      req.Section1,
		Section2:      req.Section2,
		Format:        req.Format,
		IncludeCharts: req.IncludeCharts,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"reportId": record.ID,
		"htmlPath": record.HTMLFile,
		"pdfPath":  record.PDFFile,
	})
}

func (s *Server) handleReportList(w http.ResponseWriter, r *http.Request) {
	records, err := s.generator.Store().List(r.PathValue("project"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"reports": records})
}

func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")
	record, err := s.generator.Store().Get(project, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	dir, err := s.generator.Store().Dir(project)
	if err != nil {
		s.writeError(w, err)
		return
	}

	file := record.HTMLFile
	if r.URL.Query().Get("format") == models.ReportFormatPDF && record.PDFFile != "" {
		file = record.PDFFile
	}
	http.ServeFile(w, r, filepath.Join(dir, file))
}

func (s *Server) handleReportDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.generator.Store().Delete(r.PathValue("project"), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- capture preview ---

func (s *Server) handleCapturePreview(w http.ResponseWriter, r *http.Request) {
	sectionDir, err := s.gateway.RequireSection(r.PathValue("project"), r.PathValue("section"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	screenDir, err := storage.ResolveScreenDir(sectionDir, r.PathValue("screenPath"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	preview := s.gateway.PreviewPath(screenDir)
	if preview == "" {
		s.writeError(w, errorwrapper.NewNotFoundError("preview", r.PathValue("screenPath")))
		return
	}
	http.ServeFile(w, r, preview)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
