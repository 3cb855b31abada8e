package snapstore

import (
	"github.com/stretchr/testify/mock"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// MockSnapshotManager is a mock implementation of SnapshotManager for testing.
type MockSnapshotManager struct {
	mock.Mock
}

var _ contract.SnapshotManager = &MockSnapshotManager{} // Compile-time check

// GetSnapshotStore implements the SnapshotManager interface.
func (m *MockSnapshotManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Snapshot implements the SnapshotStore interface.
func (m *MockSnapshotStore) Snapshot(projectID string) (map[string]schema.SnapshotEntry, error) {
	args := m.Called(projectID)
	snapshot, _ := args.Get(0).(map[string]schema.SnapshotEntry)
	return snapshot, args.Error(1)
}

// ApplyMerge implements the SnapshotStore interface.
func (m *MockSnapshotStore) ApplyMerge(projectID string, result *schema.MergeResult, records []schema.FileRecord) error {
	args := m.Called(projectID, result, records)
	return args.Error(0)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.SnapshotStatus)
	return status, args.Error(1)
}

// Clear implements the SnapshotStore interface.
func (m *MockSnapshotStore) Clear(projectID string) error {
	args := m.Called(projectID)
	return args.Error(0)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
