// Package schema has configs, models and shared constants for all parts of projscan.
package schema

import "time"

// FileRecord is the normalized, post-extraction representation of one file
// inside an uploaded project archive. Paths are archive-relative, cleaned,
// and forward-slash separated; they never contain ".." segments and are
// never absolute.
type FileRecord struct {
	Path        string         `json:"path"`                 // Archive-relative, normalized path
	SizeBytes   int64          `json:"size_bytes"`           // Size of the extracted content
	MimeType    string         `json:"mime_type"`            // Best-effort MIME type (extension + content sniffing)
	CreatedAt   time.Time      `json:"created_at"`           // UTC; falls back to ingestion time
	ModifiedAt  time.Time      `json:"modified_at"`          // UTC; falls back to ingestion time
	ContentHash string         `json:"content_hash"`         // Hex SHA-256 digest of the full content
	MediaInfo   map[string]any `json:"media_info,omitempty"` // Opaque payload from the media collaborator
}

// HashPrefix returns a short prefix of the content hash for display.
func (r *FileRecord) HashPrefix() string {
	const n = 12
	if len(r.ContentHash) <= n {
		return r.ContentHash
	}
	return r.ContentHash[:n]
}
