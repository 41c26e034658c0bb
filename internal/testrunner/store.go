package testrunner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/aleister1102/webdiff/internal/models"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/rs/zerolog"
)

// resultsFileName is the per-project test history index under tests/.
const resultsFileName = "results.json"

// ResultStore persists test results in the per-project tests/results.json
// index, ordered by creation time.
type ResultStore struct {
	mu      sync.Mutex
	gateway *storage.Gateway
	logger  zerolog.Logger
}

// NewResultStore creates a test result store on top of the storage gateway.
func NewResultStore(gateway *storage.Gateway, logger zerolog.Logger) *ResultStore {
	return &ResultStore{
		gateway: gateway,
		logger:  logger.With().Str("component", "TestResultStore").Logger(),
	}
}

func (s *ResultStore) indexPath(project string) (string, error) {
	projectDir, err := s.gateway.RequireProject(project)
	if err != nil {
		return "", err
	}
	return filepath.Join(projectDir, "tests", resultsFileName), nil
}

func (s *ResultStore) load(project string) ([]*models.TestResult, string, error) {
	path, err := s.indexPath(project)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.TestResult{}, path, nil
		}
		return nil, "", errorwrapper.WrapError(err, "failed to read test index: "+path)
	}

	var results []*models.TestResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, "", errorwrapper.WrapError(err, "malformed test index: "+path)
	}
	return results, path, nil
}

func (s *ResultStore) save(path string, results []*models.TestResult) error {
	if err := s.gateway.Files().EnsureDirectory(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal test index")
	}
	return s.gateway.Files().WriteFileAtomic(path, data)
}

// Append adds one result to the project's history.
func (s *ResultStore) Append(project string, result *models.TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, path, err := s.load(project)
	if err != nil {
		return err
	}
	results = append(results, result)
	return s.save(path, results)
}

// List returns one page of the history, newest first. Page numbers are
// 1-based; out-of-range pages return an empty list.
func (s *ResultStore) List(project string, page, limit int) ([]*models.TestResult, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, _, err := s.load(project)
	if err != nil {
		return nil, 0, err
	}

	total := len(results)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = total
	}

	// Newest first: the index is append-ordered.
	reversed := make([]*models.TestResult, 0, total)
	for i := total - 1; i >= 0; i-- {
		reversed = append(reversed, results[i])
	}

	start := (page - 1) * limit
	if start >= total {
		return []*models.TestResult{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return reversed[start:end], total, nil
}

// Statistics folds the history into pass/fail counts.
func (s *ResultStore) Statistics(project string) (*models.TestStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, _, err := s.load(project)
	if err != nil {
		return nil, err
	}

	stats := &models.TestStatistics{Total: len(results)}
	for _, result := range results {
		if result.Passed {
			stats.Passed++
		}
	}
	stats.Failed = stats.Total - stats.Passed
	return stats, nil
}

// Get fetches one result by id.
func (s *ResultStore) Get(project, id string) (*models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, _, err := s.load(project)
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		if result.ID == id {
			return result, nil
		}
	}
	return nil, errorwrapper.NewNotFoundError("test result", id)
}

// Delete removes one result by id.
func (s *ResultStore) Delete(project, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, path, err := s.load(project)
	if err != nil {
		return err
	}

	kept := results[:0]
	found := false
	for _, result := range results {
		if result.ID == id {
			found = true
			continue
		}
		kept = append(kept, result)
	}
	if !found {
		return errorwrapper.NewNotFoundError("test result", id)
	}
	return s.save(path, kept)
}
