package schema

// DuplicateGroup is a set of file records sharing one content hash.
// Groups always contain at least two members. The first member, in original
// ingestion order, is treated as the kept copy; WastedBytes sums the sizes
// of every other member.
type DuplicateGroup struct {
	ContentHash    string       `json:"content_hash"`
	Files          []FileRecord `json:"files"`
	TotalSizeBytes int64        `json:"total_size_bytes"`
	WastedBytes    int64        `json:"wasted_bytes"`
}

// DuplicateAnalysisResult is the outcome of one duplicate detection run
// over a single scan's file set. Groups are sorted by WastedBytes
// descending so the most impactful groups come first.
type DuplicateAnalysisResult struct {
	TotalFilesAnalyzed  int              `json:"total_files_analyzed"`
	FilesWithHash       int              `json:"files_with_hash"`
	DuplicateGroups     []DuplicateGroup `json:"duplicate_groups"`
	TotalDuplicateFiles int              `json:"total_duplicate_files"`
	TotalWastedBytes    int64            `json:"total_wasted_bytes"`
	SpaceSavingsPercent float64          `json:"space_savings_percent"`
}
