package schema

import "strings"

// Custom string types for type safety.
type (
	// IssueCode identifies a class of non-fatal per-entry problem.
	IssueCode string

	// FatalCode identifies a class of whole-archive failure.
	FatalCode string

	// Resolution represents the outcome decided for one merge candidate.
	Resolution string

	// MergeReason explains why a resolution was chosen.
	MergeReason string

	// MergeStrategy selects how new files are matched against the snapshot.
	MergeStrategy string

	// ConflictResolution selects how path conflicts are resolved.
	ConflictResolution string

	// RefactorPriority buckets a file by how urgently it needs attention.
	RefactorPriority string

	// Language represents a supported source language.
	Language string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for snapshot storage.
	DatabaseBackend string
)

// Non-fatal issue codes recorded in ParseIssue entries.
const (
	IssueUnreadableEntry IssueCode = "UNREADABLE_ENTRY"
	IssueSymlinkSkipped  IssueCode = "SYMLINK_SKIPPED"
)

// Fatal whole-archive failure codes.
const (
	CodeUnsupportedFileType FatalCode = "UNSUPPORTED_FILE_TYPE"
	CodeCorruptOrUnzip      FatalCode = "CORRUPT_OR_UNZIP_ERROR"
)

// All merge resolutions supported.
const (
	ResolutionAdd    Resolution = "add"
	ResolutionUpdate Resolution = "update"
	ResolutionSkip   Resolution = "skip"
)

// Symbolic reasons attached to merge candidates.
const (
	ReasonNewFile              MergeReason = "new_file"
	ReasonIdenticalHashAndPath MergeReason = "identical_hash_and_path"
	ReasonIdenticalHash        MergeReason = "identical_hash"
	ReasonNewerVersion         MergeReason = "newer_version"
	ReasonExistingIsNewer      MergeReason = "existing_is_newer"
	ReasonKeepExisting         MergeReason = "keep_existing"
	ReasonReplaceExisting      MergeReason = "replace_existing"
)

// All merge strategies supported.
const (
	HashStrategy MergeStrategy = "hash"
	PathStrategy MergeStrategy = "path"
	BothStrategy MergeStrategy = "both" // default
)

// All conflict resolutions supported.
const (
	NewerWins    ConflictResolution = "newer" // default
	KeepExisting ConflictResolution = "keep_existing"
	Replace      ConflictResolution = "replace"
)

// All refactor priorities supported.
const (
	PriorityLow    RefactorPriority = "LOW"
	PriorityMedium RefactorPriority = "MEDIUM"
	PriorityHigh   RefactorPriority = "HIGH"
)

// All languages the quality analyzer knows how to parse. The set is closed:
// unknown extensions map to LangUnknown and are reported as a non-fatal
// per-file error instead of a missing-key failure.
const (
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangRuby       Language = "ruby"
	LangUnknown    Language = "unknown"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All snapshot backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidMergeStrategies is the set of accepted merge strategies.
var ValidMergeStrategies = map[MergeStrategy]struct{}{
	HashStrategy: {},
	PathStrategy: {},
	BothStrategy: {},
}

// ValidConflictResolutions is the set of accepted conflict resolutions.
var ValidConflictResolutions = map[ConflictResolution]struct{}{
	NewerWins:    {},
	KeepExisting: {},
	Replace:      {},
}

// ValidOutputModes is the set of accepted output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends is the set of accepted snapshot backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// languageByExtension binds each supported extension to its language.
// Lookup is by lowercase extension including the leading dot.
var languageByExtension = map[string]Language{
	".py":   LangPython,
	".pyw":  LangPython,
	".go":   LangGo,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".mjs":  LangJavaScript,
	".ts":   LangTypeScript,
	".tsx":  LangTypeScript,
	".java": LangJava,
	".c":    LangC,
	".h":    LangC,
	".cc":   LangCPP,
	".cpp":  LangCPP,
	".cxx":  LangCPP,
	".hpp":  LangCPP,
	".rb":   LangRuby,
	".rake": LangRuby,
}

// LanguageForExtension maps a file extension to its Language.
// Unknown extensions return LangUnknown.
func LanguageForExtension(ext string) Language {
	if lang, ok := languageByExtension[strings.ToLower(ext)]; ok {
		return lang
	}
	return LangUnknown
}
