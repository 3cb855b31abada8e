package schema

import "time"

// SnapshotStatus reports the state of the snapshot store backend.
type SnapshotStatus struct {
	Backend        DatabaseBackend `json:"backend"`
	Connected      bool            `json:"connected"`
	ProjectCount   int             `json:"project_count"`
	FileCount      int             `json:"file_count"`
	LastUpdated    time.Time       `json:"last_updated,omitempty"`
	TableSizeBytes int64           `json:"table_size_bytes,omitempty"`
}
