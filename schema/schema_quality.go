package schema

// FunctionMetrics holds per-function quality measurements derived from the
// syntax tree.
type FunctionMetrics struct {
	Name          string `json:"name"`
	StartLine     int    `json:"start_line"` // 1-based
	EndLine       int    `json:"end_line"`   // 1-based, inclusive
	Lines         int    `json:"lines"`      // EndLine - StartLine + 1
	Complexity    int    `json:"cyclomatic_complexity"`
	ParamCount    int    `json:"param_count"`
	NeedsRefactor bool   `json:"needs_refactor"` // lines>50 or complexity>10 or params>5
}

// TodoMarker is one TODO-class marker found during line scanning.
type TodoMarker struct {
	Line    int    `json:"line"`
	Marker  string `json:"marker"` // TODO, FIXME, HACK, XXX
	Context string `json:"context"`
}

// FileQualityMetrics holds the full quality profile of one source file.
type FileQualityMetrics struct {
	Path                 string            `json:"path"`
	Language             Language          `json:"language"`
	TotalLines           int               `json:"total_lines"`
	CodeLines            int               `json:"code_lines"`
	CommentLines         int               `json:"comment_lines"`
	BlankLines           int               `json:"blank_lines"`
	FunctionCount        int               `json:"function_count"`
	ClassCount           int               `json:"class_count"`
	AggregateComplexity  int               `json:"aggregate_complexity"`
	TopFunctions         []FunctionMetrics `json:"top_functions"` // Top 5 by complexity*2+lines, descending
	SecurityIssues       []string          `json:"security_issues"`
	TodoMarkers          []TodoMarker      `json:"todo_markers"`
	Warnings             []string          `json:"warnings"`
	MaintainabilityScore float64           `json:"maintainability_score"` // 0-100
	RefactorPriority     RefactorPriority  `json:"refactor_priority"`
}

// FileError is a non-fatal per-file failure during directory analysis.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// QualitySummary aggregates a directory analysis run.
type QualitySummary struct {
	TotalFiles               int              `json:"total_files"`    // Candidates seen, including failed ones
	AnalyzedFiles            int              `json:"analyzed_files"` // Successfully analyzed
	TotalLines               int              `json:"total_lines"`
	TotalFunctions           int              `json:"total_functions"`
	TotalClasses             int              `json:"total_classes"`
	FilesByLanguage          map[Language]int `json:"files_by_language"`
	AvgComplexity            float64          `json:"avg_complexity"`
	AvgMaintainability       float64          `json:"avg_maintainability"`
	HighPriorityFiles        int              `json:"high_priority_files"`
	FunctionsNeedingRefactor int              `json:"functions_needing_refactor"`
}

// DirectoryQualityResult is the aggregate outcome of analyzing a directory
// tree. Files are sorted by path; Errors carries the per-file failures that
// did not abort the batch.
type DirectoryQualityResult struct {
	Files   []FileQualityMetrics `json:"files"`
	Errors  []FileError          `json:"errors"`
	Summary QualitySummary       `json:"summary"`
}
