package core_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/snapstore"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

func mergeConfig(t *testing.T) *contract.Config {
	t.Helper()
	cfg := &contract.Config{
		ProjectID:          "demo",
		Workers:            2,
		ResultLimit:        25,
		Precision:          2,
		Width:              120,
		Output:             schema.TextOut,
		Strategy:           schema.BothStrategy,
		ConflictResolution: schema.NewerWins,
		OutputFile:         filepath.Join(t.TempDir(), "out.txt"),
	}
	cfg.Preferences.MaxFileSizeBytes = contract.DefaultMaxFileSizeBytes
	return cfg
}

func writeArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("src/app.py")
	require.NoError(t, err)
	_, err = w.Write([]byte("print('hi')\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExecuteMergeRequiresProject(t *testing.T) {
	cfg := mergeConfig(t)
	cfg.ProjectID = ""

	err := core.ExecuteMerge(context.Background(), cfg, &snapstore.SnapshotStoreManager{})
	assert.ErrorContains(t, err, "--project")
}

func TestExecuteMergeRequiresBackend(t *testing.T) {
	err := core.ExecuteMerge(context.Background(), mergeConfig(t), &snapstore.SnapshotStoreManager{})
	assert.ErrorContains(t, err, "--snapshot-backend")
}

func TestExecuteMergePersists(t *testing.T) {
	cfg := mergeConfig(t)
	cfg.ArchivePath = writeArchive(t)

	store := &snapstore.MockSnapshotStore{}
	store.On("Snapshot", "demo").Return(map[string]schema.SnapshotEntry{}, nil)
	store.On("ApplyMerge", "demo", mock.Anything, mock.Anything).Return(nil)
	mgr := &snapstore.MockSnapshotManager{}
	mgr.On("GetSnapshotStore").Return(store)

	require.NoError(t, core.ExecuteMerge(context.Background(), cfg, mgr))
	store.AssertExpectations(t)

	out, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "src/app.py")
	assert.Contains(t, string(out), "new_file")
}

func TestExecuteMergeDryRun(t *testing.T) {
	cfg := mergeConfig(t)
	cfg.ArchivePath = writeArchive(t)
	cfg.DryRun = true

	store := &snapstore.MockSnapshotStore{}
	store.On("Snapshot", "demo").Return(map[string]schema.SnapshotEntry{}, nil)
	mgr := &snapstore.MockSnapshotManager{}
	mgr.On("GetSnapshotStore").Return(store)

	require.NoError(t, core.ExecuteMerge(context.Background(), cfg, mgr))
	store.AssertNotCalled(t, "ApplyMerge")
}

func TestExecuteSnapshotStatus(t *testing.T) {
	cfg := mergeConfig(t)

	store := &snapstore.MockSnapshotStore{}
	store.On("GetStatus").Return(schema.SnapshotStatus{
		Backend:   schema.SQLiteBackend,
		Connected: true,
		FileCount: 3,
	}, nil)
	mgr := &snapstore.MockSnapshotManager{}
	mgr.On("GetSnapshotStore").Return(store)

	require.NoError(t, core.ExecuteSnapshotStatus(cfg, mgr))

	out, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Snapshot Backend: sqlite")
	assert.Contains(t, string(out), "Files: 3")
}

func TestExecuteSnapshotStatusWithoutBackend(t *testing.T) {
	err := core.ExecuteSnapshotStatus(mergeConfig(t), &snapstore.SnapshotStoreManager{})
	assert.ErrorContains(t, err, "no snapshot backend configured")
}

func TestExecuteScanMissingArchive(t *testing.T) {
	cfg := mergeConfig(t)
	cfg.ArchivePath = filepath.Join(t.TempDir(), "missing.zip")

	err := core.ExecuteScan(context.Background(), cfg)
	assert.Error(t, err)
}
