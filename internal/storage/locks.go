package storage

import "sync"

// ProjectLocks serializes mutations of a project's main/ tree and flow.json.
// The lock is held only during a merge's write phase; reads never take it.
type ProjectLocks struct {
	mu    sync.Mutex
	locks map[string]*projectLock
}

type projectLock struct {
	busy bool
}

// NewProjectLocks creates an empty lock map.
func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{locks: make(map[string]*projectLock)}
}

// TryAcquire attempts to take the write lock for a project without blocking.
// It returns false when another merge holds it.
func (pl *ProjectLocks) TryAcquire(project string) bool {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	lock := pl.locks[project]
	if lock == nil {
		lock = &projectLock{}
		pl.locks[project] = lock
	}
	if lock.busy {
		return false
	}
	lock.busy = true
	return true
}

// Release returns the write lock for a project.
func (pl *ProjectLocks) Release(project string) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if lock := pl.locks[project]; lock != nil {
		lock.busy = false
	}
}
