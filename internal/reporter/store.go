package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/rs/zerolog"
)

const (
	reportsDirName  = ".reports"
	reportsIndex    = "reports.json"
	reportFilePerms = 0o644
)

// ReportStore persists report records in the per-project .reports/ index.
// Report files live as siblings of the index; deleting a record removes both.
type ReportStore struct {
	mu        sync.Mutex
	gateway   *storage.Gateway
	retention time.Duration
	logger    zerolog.Logger
}

// NewReportStore creates a report store with the given retention window.
func NewReportStore(gateway *storage.Gateway, retentionDays int, logger zerolog.Logger) *ReportStore {
	return &ReportStore{
		gateway:   gateway,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger.With().Str("component", "ReportStore").Logger(),
	}
}

// Dir resolves (and creates) the project's .reports directory.
func (s *ReportStore) Dir(project string) (string, error) {
	projectDir, err := s.gateway.RequireProject(project)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(projectDir, reportsDirName)
	if err := s.gateway.Files().EnsureDirectory(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *ReportStore) load(project string) ([]*models.ReportRecord, string, error) {
	dir, err := s.Dir(project)
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir, reportsIndex)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.ReportRecord{}, path, nil
		}
		return nil, "", errorwrapper.WrapError(err, "failed to read reports index: "+path)
	}

	var records []*models.ReportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, "", errorwrapper.WrapError(err, "malformed reports index: "+path)
	}
	return records, path, nil
}

func (s *ReportStore) save(path string, records []*models.ReportRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal reports index")
	}
	return s.gateway.Files().WriteFileAtomic(path, data)
}

// Append adds one record to the index.
func (s *ReportStore) Append(project string, record *models.ReportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, path, err := s.load(project)
	if err != nil {
		return err
	}
	records = append(records, record)
	return s.save(path, records)
}

// List returns all records, newest first.
func (s *ReportStore) List(project string) ([]*models.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.load(project)
	if err != nil {
		return nil, err
	}

	reversed := make([]*models.ReportRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	return reversed, nil
}

// Get fetches one record by id.
func (s *ReportStore) Get(project, id string) (*models.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.load(project)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, errorwrapper.NewNotFoundError("report", id)
}

// Delete removes one record and its HTML/PDF files.
func (s *ReportStore) Delete(project, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, path, err := s.load(project)
	if err != nil {
		return err
	}

	kept := records[:0]
	var removed *models.ReportRecord
	for _, record := range records {
		if record.ID == id {
			removed = record
			continue
		}
		kept = append(kept, record)
	}
	if removed == nil {
		return errorwrapper.NewNotFoundError("report", id)
	}

	s.removeFiles(filepath.Dir(path), removed)
	return s.save(path, kept)
}

// CollectExpired drops every record older than the retention window together
// with its files. Runs on every report generation.
func (s *ReportStore) CollectExpired(project string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, path, err := s.load(project)
	if err != nil {
		return err
	}

	cutoff := now.Add(-s.retention)
	kept := records[:0]
	collected := 0
	for _, record := range records {
		if record.CreatedAt.Before(cutoff) {
			s.removeFiles(filepath.Dir(path), record)
			collected++
			continue
		}
		kept = append(kept, record)
	}
	if collected == 0 {
		return nil
	}

	s.logger.Info().Str("project", project).Int("collected", collected).Msg("Expired reports collected")
	return s.save(path, kept)
}

// removeFiles deletes the record's report files, tolerating files that are
// already gone.
func (s *ReportStore) removeFiles(dir string, record *models.ReportRecord) {
	for _, name := range []string{record.HTMLFile, record.PDFFile} {
		if name == "" {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Str("file", name).Err(err).Msg("Report file delete failed")
		}
	}
}
