package schema

// IngestPreferences narrows which archive entries are materialized into
// file records. A nil preferences value accepts every regular entry.
type IngestPreferences struct {
	AllowedExtensions []string `json:"allowed_extensions,omitempty"` // Lowercase extensions with leading dot; empty allows all
	ExcludedDirs      []string `json:"excluded_dirs,omitempty"`      // Directory names matched against any path segment
	MaxFileSizeBytes  int64    `json:"max_file_size_bytes,omitempty"`
	FollowSymlinks    bool     `json:"follow_symlinks,omitempty"`
}

// ParseIssue records a non-fatal per-entry problem. Issues accumulate in
// the ParseResult and never abort a scan.
type ParseIssue struct {
	Path    string    `json:"path"`
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// ParseSummary aggregates counters for one ingestion call.
type ParseSummary struct {
	FilesProcessed int   `json:"files_processed"`
	BytesProcessed int64 `json:"bytes_processed"`
	FilteredOut    int   `json:"filtered_out"`
}

// ParseResult is the immutable outcome of one archive ingestion. A fatal
// archive error produces no ParseResult at all; a result with issues still
// carries the full list of successfully extracted files.
type ParseResult struct {
	Files   []FileRecord `json:"files"`
	Issues  []ParseIssue `json:"issues"`
	Summary ParseSummary `json:"summary"`
}
