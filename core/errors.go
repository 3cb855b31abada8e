package core

import (
	"fmt"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// UnsupportedArchiveError is returned when the input is not a well-formed
// archive of a supported container type. It is fatal for the whole archive;
// no partial ParseResult accompanies it.
type UnsupportedArchiveError struct {
	Path   string
	Code   schema.FatalCode
	Detail string
}

// Error implements the error interface.
func (e *UnsupportedArchiveError) Error() string {
	return fmt.Sprintf("%s: unsupported archive %q: %s", e.Code, e.Path, e.Detail)
}

// NewUnsupportedArchiveError builds an UnsupportedArchiveError for a path.
func NewUnsupportedArchiveError(path, detail string) *UnsupportedArchiveError {
	return &UnsupportedArchiveError{Path: path, Code: schema.CodeUnsupportedFileType, Detail: detail}
}

// CorruptArchiveError is returned when a well-typed archive cannot be
// trusted: truncated or corrupted container data, or any entry whose
// normalized path would resolve outside the archive root. A single
// malicious entry invalidates the entire archive, since a legitimate
// archive never contains such entries.
type CorruptArchiveError struct {
	Path   string
	Entry  string // Offending entry, empty for container-level corruption
	Code   schema.FatalCode
	Detail string
}

// Error implements the error interface.
func (e *CorruptArchiveError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("%s: archive %q entry %q: %s", e.Code, e.Path, e.Entry, e.Detail)
	}
	return fmt.Sprintf("%s: archive %q: %s", e.Code, e.Path, e.Detail)
}

// NewCorruptArchiveError builds a CorruptArchiveError for a container-level problem.
func NewCorruptArchiveError(path, detail string) *CorruptArchiveError {
	return &CorruptArchiveError{Path: path, Code: schema.CodeCorruptOrUnzip, Detail: detail}
}

// NewCorruptEntryError builds a CorruptArchiveError for a rejected entry.
func NewCorruptEntryError(path, entry, detail string) *CorruptArchiveError {
	return &CorruptArchiveError{Path: path, Entry: entry, Code: schema.CodeCorruptOrUnzip, Detail: detail}
}
