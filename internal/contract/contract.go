// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// SyntaxNode is one node of a parsed syntax tree. Rows are 0-based and
// EndRow is inclusive. Children preserve source order.
type SyntaxNode struct {
	Type     string
	StartRow int
	EndRow   int
	Text     string // Node-local text, set only where analysis needs it (names, params)
	Children []*SyntaxNode
}

// SyntaxTree is the result of parsing one source file.
type SyntaxTree struct {
	Root     *SyntaxNode
	HasError bool // True when the parser hit constructs it could not fully resolve
}

// SyntaxParser turns source bytes into a SyntaxTree for one language.
// Implementations are resolved per file extension; the analyzer never
// dispatches on language directly.
type SyntaxParser interface {
	Language() schema.Language
	Parse(src []byte) (*SyntaxTree, error)
}

// ParserResolver resolves a SyntaxParser for a file path. The second return
// is false when the extension maps to no supported language.
type ParserResolver interface {
	ResolveParser(path string) (SyntaxParser, bool)
}

// MediaProber extracts media-specific metadata from file content. It is an
// optional collaborator; a nil prober disables media probing entirely.
type MediaProber interface {
	Probe(content []byte, mimeType string) (map[string]any, error)
}

// SnapshotStore is the persistence collaborator for project snapshots.
// Snapshot must return a stable point-in-time view: no partial updates may
// be observed during one merge call.
type SnapshotStore interface {
	// Snapshot returns the stored file map for a project, keyed by
	// archive-relative path.
	Snapshot(projectID string) (map[string]schema.SnapshotEntry, error)

	// ApplyMerge persists the add and update candidates of a merge result,
	// taking the concrete records from the new scan. Skipped paths are
	// untouched.
	ApplyMerge(projectID string, result *schema.MergeResult, records []schema.FileRecord) error

	// GetStatus returns status information about the snapshot store.
	GetStatus() (schema.SnapshotStatus, error)

	// Clear removes all stored files for a project. An empty projectID
	// clears every project.
	Clear(projectID string) error

	// Close closes the underlying connection.
	Close() error
}

// SnapshotManager hands out the configured snapshot store. It exists so the
// CLI wiring can be mocked in tests.
type SnapshotManager interface {
	GetSnapshotStore() SnapshotStore
}
