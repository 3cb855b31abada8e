package core

import (
	"fmt"
	"sort"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// ReconcileMerge classifies each incoming record against the stored
// snapshot and decides add, update or skip per file. The snapshot itself
// is never mutated; persisting the decisions is the store's job.
//
// Matching depends on the strategy: "path" compares paths only, "hash"
// compares content hashes only, and "both" checks the exact pair first,
// then the path, then the hash. Path conflicts with differing content are
// settled by the conflict resolution. The returned counters always satisfy
// TotalProjectFiles == len(snapshot) + FilesAdded.
func ReconcileMerge(
	snapshot map[string]schema.SnapshotEntry,
	incoming []schema.FileRecord,
	strategy schema.MergeStrategy,
	resolution schema.ConflictResolution,
) (*schema.MergeResult, error) {
	if _, ok := schema.ValidMergeStrategies[strategy]; !ok {
		return nil, fmt.Errorf("invalid merge strategy %q", strategy)
	}
	if _, ok := schema.ValidConflictResolutions[resolution]; !ok {
		return nil, fmt.Errorf("invalid conflict resolution %q", resolution)
	}

	result := &schema.MergeResult{}

	// The hash index maps content hashes to the lexicographically smallest
	// snapshot path carrying them, so hash matches are deterministic no
	// matter the map iteration order. Added files join the index as they
	// are accepted, letting later duplicates inside the same scan point at
	// the first accepted copy.
	hashIndex := buildHashIndex(snapshot)

	for _, record := range incoming {
		candidate := classifyRecord(snapshot, hashIndex, record, strategy, resolution)
		result.Candidates = append(result.Candidates, candidate)

		switch candidate.Resolution {
		case schema.ResolutionAdd:
			result.FilesAdded++
			if record.ContentHash != "" {
				if existing, ok := hashIndex[record.ContentHash]; !ok || record.Path < existing {
					hashIndex[record.ContentHash] = record.Path
				}
			}
		case schema.ResolutionUpdate:
			result.FilesUpdated++
		case schema.ResolutionSkip:
			// Every skip counts, conflict skips included, so the counters
			// always add up: len(incoming) == added + updated + skipped.
			result.DuplicatesSkipped++
		}
	}

	sort.Slice(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].FilePath < result.Candidates[j].FilePath
	})
	result.TotalProjectFiles = len(snapshot) + result.FilesAdded
	return result, nil
}

// classifyRecord decides the resolution for one incoming record.
func classifyRecord(
	snapshot map[string]schema.SnapshotEntry,
	hashIndex map[string]string,
	record schema.FileRecord,
	strategy schema.MergeStrategy,
	resolution schema.ConflictResolution,
) schema.MergeCandidate {
	existing, pathMatch := snapshot[record.Path]
	hashOwner, hashMatch := "", false
	if record.ContentHash != "" {
		hashOwner, hashMatch = hashIndex[record.ContentHash]
	}

	switch strategy {
	case schema.PathStrategy:
		if !pathMatch {
			return addCandidate(record)
		}
		return resolvePathConflict(record, existing, resolution)

	case schema.HashStrategy:
		if hashMatch {
			return schema.MergeCandidate{
				FilePath:    record.Path,
				DuplicateOf: hashOwner,
				IsDuplicate: true,
				Resolution:  schema.ResolutionSkip,
				Reason:      schema.ReasonIdenticalHash,
			}
		}
		return addCandidate(record)

	default: // BothStrategy
		if pathMatch && existing.ContentHash == record.ContentHash && record.ContentHash != "" {
			return schema.MergeCandidate{
				FilePath:    record.Path,
				DuplicateOf: record.Path,
				IsDuplicate: true,
				Resolution:  schema.ResolutionSkip,
				Reason:      schema.ReasonIdenticalHashAndPath,
			}
		}
		// A hash match anywhere wins over a path conflict: the content
		// already exists and is never added under a second path.
		if hashMatch {
			return schema.MergeCandidate{
				FilePath:    record.Path,
				DuplicateOf: hashOwner,
				IsDuplicate: true,
				Resolution:  schema.ResolutionSkip,
				Reason:      schema.ReasonIdenticalHash,
			}
		}
		if pathMatch {
			return resolvePathConflict(record, existing, resolution)
		}
		return addCandidate(record)
	}
}

// resolvePathConflict settles a same-path, different-content conflict.
// Equal content under the path strategy also lands here and resolves as an
// identical skip, since rewriting identical bytes is a no-op.
func resolvePathConflict(record schema.FileRecord, existing schema.SnapshotEntry, resolution schema.ConflictResolution) schema.MergeCandidate {
	if existing.ContentHash == record.ContentHash && record.ContentHash != "" {
		return schema.MergeCandidate{
			FilePath:    record.Path,
			DuplicateOf: record.Path,
			IsDuplicate: true,
			Resolution:  schema.ResolutionSkip,
			Reason:      schema.ReasonIdenticalHashAndPath,
		}
	}

	candidate := schema.MergeCandidate{
		FilePath:    record.Path,
		DuplicateOf: record.Path,
	}
	switch resolution {
	case schema.KeepExisting:
		candidate.Resolution = schema.ResolutionSkip
		candidate.Reason = schema.ReasonKeepExisting
	case schema.Replace:
		candidate.Resolution = schema.ResolutionUpdate
		candidate.Reason = schema.ReasonReplaceExisting
	default: // NewerWins
		if record.ModifiedAt.After(existing.LastSeenModifiedAt) {
			candidate.Resolution = schema.ResolutionUpdate
			candidate.Reason = schema.ReasonNewerVersion
		} else {
			candidate.Resolution = schema.ResolutionSkip
			candidate.Reason = schema.ReasonExistingIsNewer
		}
	}
	return candidate
}

// addCandidate builds the candidate for a file with no snapshot match.
func addCandidate(record schema.FileRecord) schema.MergeCandidate {
	return schema.MergeCandidate{
		FilePath:   record.Path,
		Resolution: schema.ResolutionAdd,
		Reason:     schema.ReasonNewFile,
	}
}

// buildHashIndex maps each snapshot content hash to its lexicographically
// smallest path.
func buildHashIndex(snapshot map[string]schema.SnapshotEntry) map[string]string {
	index := make(map[string]string, len(snapshot))
	paths := make([]string, 0, len(snapshot))
	for p := range snapshot {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		hash := snapshot[p].ContentHash
		if hash == "" {
			continue
		}
		if _, ok := index[hash]; !ok {
			index[hash] = p
		}
	}
	return index
}
