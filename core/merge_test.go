package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

var (
	older = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

// entry builds a snapshot entry for merge tests.
func entry(hash string, modified time.Time) schema.SnapshotEntry {
	return schema.SnapshotEntry{ContentHash: hash, SizeBytes: 100, LastSeenModifiedAt: modified}
}

// incoming builds an incoming file record for merge tests.
func incoming(path, hash string, modified time.Time) schema.FileRecord {
	return schema.FileRecord{Path: path, ContentHash: hash, SizeBytes: 100, ModifiedAt: modified}
}

// candidateFor finds the candidate for a path, failing the test when absent.
func candidateFor(t *testing.T, result *schema.MergeResult, path string) schema.MergeCandidate {
	t.Helper()
	for _, c := range result.Candidates {
		if c.FilePath == path {
			return c
		}
	}
	t.Fatalf("no candidate for path %q", path)
	return schema.MergeCandidate{}
}

func TestReconcileMergeInvalidInputs(t *testing.T) {
	_, err := ReconcileMerge(nil, nil, "merge-all", schema.NewerWins)
	assert.Error(t, err)

	_, err = ReconcileMerge(nil, nil, schema.BothStrategy, "oldest")
	assert.Error(t, err)
}

func TestReconcileMergeBothStrategy(t *testing.T) {
	snapshot := map[string]schema.SnapshotEntry{
		"src/app.go":   entry("hash-app", older),
		"docs/old.md":  entry("hash-doc", older),
		"assets/a.png": entry("hash-img", older),
	}
	records := []schema.FileRecord{
		incoming("src/app.go", "hash-app", newer),    // Same path, same hash
		incoming("docs/new.md", "hash-doc", newer),   // New path, known hash
		incoming("assets/a.png", "hash-diff", newer), // Same path, new content
		incoming("lib/util.go", "hash-util", newer),  // Entirely new
	}

	result, err := ReconcileMerge(snapshot, records, schema.BothStrategy, schema.NewerWins)
	require.NoError(t, err)

	same := candidateFor(t, result, "src/app.go")
	assert.Equal(t, schema.ResolutionSkip, same.Resolution)
	assert.Equal(t, schema.ReasonIdenticalHashAndPath, same.Reason)
	assert.True(t, same.IsDuplicate)

	// Hash match anywhere wins over everything but the exact pair
	moved := candidateFor(t, result, "docs/new.md")
	assert.Equal(t, schema.ResolutionSkip, moved.Resolution)
	assert.Equal(t, schema.ReasonIdenticalHash, moved.Reason)
	assert.Equal(t, "docs/old.md", moved.DuplicateOf)

	changed := candidateFor(t, result, "assets/a.png")
	assert.Equal(t, schema.ResolutionUpdate, changed.Resolution)
	assert.Equal(t, schema.ReasonNewerVersion, changed.Reason)

	added := candidateFor(t, result, "lib/util.go")
	assert.Equal(t, schema.ResolutionAdd, added.Resolution)
	assert.Equal(t, schema.ReasonNewFile, added.Reason)

	assert.Equal(t, 1, result.FilesAdded)
	assert.Equal(t, 1, result.FilesUpdated)
	assert.Equal(t, 2, result.DuplicatesSkipped)
	assert.Equal(t, len(snapshot)+result.FilesAdded, result.TotalProjectFiles)
}

func TestReconcileMergeHashStrategy(t *testing.T) {
	snapshot := map[string]schema.SnapshotEntry{
		"a.txt": entry("hash-a", older),
	}
	records := []schema.FileRecord{
		incoming("renamed.txt", "hash-a", newer), // Known content under a new path
		incoming("a.txt", "hash-changed", newer), // Path collision is ignored by hash strategy
	}

	result, err := ReconcileMerge(snapshot, records, schema.HashStrategy, schema.NewerWins)
	require.NoError(t, err)

	renamed := candidateFor(t, result, "renamed.txt")
	assert.Equal(t, schema.ResolutionSkip, renamed.Resolution)
	assert.Equal(t, "a.txt", renamed.DuplicateOf)

	collided := candidateFor(t, result, "a.txt")
	assert.Equal(t, schema.ResolutionAdd, collided.Resolution)

	assert.Equal(t, 2, result.TotalProjectFiles)
}

func TestReconcileMergePathStrategyResolutions(t *testing.T) {
	tests := []struct {
		name               string
		resolution         schema.ConflictResolution
		incomingModified   time.Time
		expectedResolution schema.Resolution
		expectedReason     schema.MergeReason
		expectedSkipped    int
	}{
		{"newer wins with newer incoming", schema.NewerWins, newer, schema.ResolutionUpdate, schema.ReasonNewerVersion, 0},
		{"newer wins with older incoming", schema.NewerWins, older.Add(-time.Hour), schema.ResolutionSkip, schema.ReasonExistingIsNewer, 1},
		{"newer wins with equal times keeps existing", schema.NewerWins, older, schema.ResolutionSkip, schema.ReasonExistingIsNewer, 1},
		{"keep existing", schema.KeepExisting, newer, schema.ResolutionSkip, schema.ReasonKeepExisting, 1},
		{"replace", schema.Replace, older.Add(-time.Hour), schema.ResolutionUpdate, schema.ReasonReplaceExisting, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := map[string]schema.SnapshotEntry{
				"conf.yml": entry("hash-old", older),
			}
			records := []schema.FileRecord{
				incoming("conf.yml", "hash-new", tt.incomingModified),
			}

			result, err := ReconcileMerge(snapshot, records, schema.PathStrategy, tt.resolution)
			require.NoError(t, err)

			c := candidateFor(t, result, "conf.yml")
			assert.Equal(t, tt.expectedResolution, c.Resolution)
			assert.Equal(t, tt.expectedReason, c.Reason)
			// Conflict skips count even though the content is not a duplicate.
			assert.Equal(t, tt.expectedSkipped, result.DuplicatesSkipped)
			assert.Equal(t, len(snapshot)+result.FilesAdded, result.TotalProjectFiles)
		})
	}
}

func TestReconcileMergePathStrategyIdenticalContent(t *testing.T) {
	snapshot := map[string]schema.SnapshotEntry{
		"same.txt": entry("hash-same", older),
	}
	records := []schema.FileRecord{
		incoming("same.txt", "hash-same", newer),
	}

	// Identical content under the same path is a no-op regardless of resolution.
	for _, res := range []schema.ConflictResolution{schema.NewerWins, schema.KeepExisting, schema.Replace} {
		result, err := ReconcileMerge(snapshot, records, schema.PathStrategy, res)
		require.NoError(t, err)
		c := candidateFor(t, result, "same.txt")
		assert.Equal(t, schema.ResolutionSkip, c.Resolution, string(res))
		assert.Equal(t, schema.ReasonIdenticalHashAndPath, c.Reason, string(res))
	}
}

func TestReconcileMergeDuplicateWithinScan(t *testing.T) {
	// Two new files with identical content: the first is added, the second
	// points at the accepted copy.
	records := []schema.FileRecord{
		incoming("first.bin", "hash-dup", newer),
		incoming("second.bin", "hash-dup", newer),
	}

	result, err := ReconcileMerge(map[string]schema.SnapshotEntry{}, records, schema.BothStrategy, schema.NewerWins)
	require.NoError(t, err)

	first := candidateFor(t, result, "first.bin")
	assert.Equal(t, schema.ResolutionAdd, first.Resolution)

	second := candidateFor(t, result, "second.bin")
	assert.Equal(t, schema.ResolutionSkip, second.Resolution)
	assert.Equal(t, "first.bin", second.DuplicateOf)

	assert.Equal(t, 1, result.FilesAdded)
	assert.Equal(t, 1, result.TotalProjectFiles)
}

func TestReconcileMergeDeterministicHashOwner(t *testing.T) {
	// Several snapshot paths share a hash; the owner must be the smallest path.
	snapshot := map[string]schema.SnapshotEntry{
		"z/copy.txt": entry("hash-shared", older),
		"a/orig.txt": entry("hash-shared", older),
		"m/mid.txt":  entry("hash-shared", older),
	}
	records := []schema.FileRecord{
		incoming("incoming.txt", "hash-shared", newer),
	}

	result, err := ReconcileMerge(snapshot, records, schema.HashStrategy, schema.NewerWins)
	require.NoError(t, err)

	c := candidateFor(t, result, "incoming.txt")
	assert.Equal(t, "a/orig.txt", c.DuplicateOf)
}

func TestReconcileMergeEmptyInputs(t *testing.T) {
	result, err := ReconcileMerge(map[string]schema.SnapshotEntry{}, nil, schema.BothStrategy, schema.NewerWins)
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 0, result.TotalProjectFiles)

	snapshot := map[string]schema.SnapshotEntry{"kept.txt": entry("h", older)}
	result, err = ReconcileMerge(snapshot, nil, schema.BothStrategy, schema.NewerWins)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalProjectFiles)
}
