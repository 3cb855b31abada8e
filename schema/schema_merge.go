package schema

import "time"

// SnapshotEntry is the stored view of one previously known project file,
// supplied by the persistence collaborator. Missing fields are defaulted
// at the boundary, never inside the reconciliation algorithm.
type SnapshotEntry struct {
	ContentHash        string    `json:"content_hash"`
	SizeBytes          int64     `json:"size_bytes"`
	LastSeenModifiedAt time.Time `json:"last_seen_modified_at"`
}

// MergeCandidate classifies one new file against the stored snapshot.
type MergeCandidate struct {
	FilePath    string      `json:"file_path"`
	DuplicateOf string      `json:"duplicate_of,omitempty"` // Existing path matched by hash or path, empty when none
	IsDuplicate bool        `json:"is_duplicate"`
	Resolution  Resolution  `json:"resolution"`
	Reason      MergeReason `json:"reason"`
}

// MergeResult is the outcome of reconciling one scan against a snapshot.
// Invariant: TotalProjectFiles == len(existing snapshot) + FilesAdded;
// updates replace in place and skips never add.
type MergeResult struct {
	Candidates        []MergeCandidate `json:"candidates"`
	FilesAdded        int              `json:"files_added"`
	FilesUpdated      int              `json:"files_updated"`
	DuplicatesSkipped int              `json:"duplicates_skipped"`
	TotalProjectFiles int              `json:"total_project_files"`
}

// byResolution returns a read-only projection of the candidates with the
// given resolution, preserving candidate order.
func (m *MergeResult) byResolution(res Resolution) []MergeCandidate {
	var out []MergeCandidate
	for _, c := range m.Candidates {
		if c.Resolution == res {
			out = append(out, c)
		}
	}
	return out
}

// Added returns the candidates resolved as add.
func (m *MergeResult) Added() []MergeCandidate { return m.byResolution(ResolutionAdd) }

// Updated returns the candidates resolved as update.
func (m *MergeResult) Updated() []MergeCandidate { return m.byResolution(ResolutionUpdate) }

// Skipped returns the candidates resolved as skip.
func (m *MergeResult) Skipped() []MergeCandidate { return m.byResolution(ResolutionSkip) }
