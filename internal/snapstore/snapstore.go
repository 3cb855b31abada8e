// Package snapstore persists project snapshots across scans. It backs the
// merge reconciliation with a point-in-time file map per project, stored
// in SQLite, MySQL or PostgreSQL.
package snapstore

import (
	"sync"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// SnapshotStoreManager hands out the configured snapshot store.
type SnapshotStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.SnapshotStore
}

var _ contract.SnapshotManager = &SnapshotStoreManager{} // Compile-time check

// NewManager opens the snapshot store for the configured backend. The
// NoneBackend yields a manager that hands out no store, which callers must
// treat as persistence disabled.
func NewManager(backend schema.DatabaseBackend, connStr string) (*SnapshotStoreManager, error) {
	mgr := &SnapshotStoreManager{}
	if backend == schema.NoneBackend {
		return mgr, nil
	}
	store, err := NewSnapshotStore(backend, connStr)
	if err != nil {
		return nil, err
	}
	mgr.store = store
	return mgr, nil
}

// GetSnapshotStore returns the snapshot store, nil when persistence is
// disabled.
func (mgr *SnapshotStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Close closes the underlying store if one is open.
func (mgr *SnapshotStoreManager) Close() error {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.store == nil {
		return nil
	}
	err := mgr.store.Close()
	mgr.store = nil
	return err
}
