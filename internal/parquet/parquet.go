// Package parquet provides data structures and functions for exporting
// projscan results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// FileRecordRow is the flat Parquet form of one scanned file.
type FileRecordRow struct {
	Path        string    `parquet:"path,snappy"`
	SizeBytes   int64     `parquet:"size_bytes,snappy"`
	MimeType    string    `parquet:"mime_type,snappy"`
	ContentHash string    `parquet:"content_hash,snappy"`
	CreatedAt   time.Time `parquet:"created_at,snappy"`
	ModifiedAt  time.Time `parquet:"modified_at,snappy"`
}

// DuplicateFileRow is one duplicate-group member with its group context.
type DuplicateFileRow struct {
	ContentHash    string `parquet:"content_hash,snappy"`
	Path           string `parquet:"path,snappy"`
	SizeBytes      int64  `parquet:"size_bytes,snappy"`
	GroupSize      int32  `parquet:"group_size,snappy"`
	GroupWasted    int64  `parquet:"group_wasted_bytes,snappy"`
	GroupTotalSize int64  `parquet:"group_total_size_bytes,snappy"`
	IsCanonical    bool   `parquet:"is_canonical,snappy"`
}

// MergeCandidateRow is the flat Parquet form of one merge decision.
type MergeCandidateRow struct {
	FilePath    string `parquet:"file_path,snappy"`
	Resolution  string `parquet:"resolution,snappy"`
	Reason      string `parquet:"reason,snappy"`
	DuplicateOf string `parquet:"duplicate_of,snappy"`
	IsDuplicate bool   `parquet:"is_duplicate,snappy"`
}

// FileQualityRow is the flat Parquet form of one file's quality profile.
type FileQualityRow struct {
	Path                 string  `parquet:"path,snappy"`
	Language             string  `parquet:"language,snappy"`
	TotalLines           int32   `parquet:"total_lines,snappy"`
	CodeLines            int32   `parquet:"code_lines,snappy"`
	CommentLines         int32   `parquet:"comment_lines,snappy"`
	BlankLines           int32   `parquet:"blank_lines,snappy"`
	FunctionCount        int32   `parquet:"function_count,snappy"`
	ClassCount           int32   `parquet:"class_count,snappy"`
	AggregateComplexity  int32   `parquet:"aggregate_complexity,snappy"`
	SecurityIssueCount   int32   `parquet:"security_issue_count,snappy"`
	TodoMarkerCount      int32   `parquet:"todo_marker_count,snappy"`
	MaintainabilityScore float64 `parquet:"maintainability_score,snappy"`
	RefactorPriority     string  `parquet:"refactor_priority,snappy"`
}

// FileRecordRows flattens scan records into Parquet rows.
func FileRecordRows(records []schema.FileRecord) []FileRecordRow {
	rows := make([]FileRecordRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, FileRecordRow{
			Path:        r.Path,
			SizeBytes:   r.SizeBytes,
			MimeType:    r.MimeType,
			ContentHash: r.ContentHash,
			CreatedAt:   r.CreatedAt,
			ModifiedAt:  r.ModifiedAt,
		})
	}
	return rows
}

// DuplicateFileRows flattens duplicate groups into per-member rows.
func DuplicateFileRows(groups []schema.DuplicateGroup) []DuplicateFileRow {
	var rows []DuplicateFileRow
	for _, g := range groups {
		for i, f := range g.Files {
			rows = append(rows, DuplicateFileRow{
				ContentHash:    g.ContentHash,
				Path:           f.Path,
				SizeBytes:      f.SizeBytes,
				GroupSize:      int32(len(g.Files)),
				GroupWasted:    g.WastedBytes,
				GroupTotalSize: g.TotalSizeBytes,
				IsCanonical:    i == 0,
			})
		}
	}
	return rows
}

// MergeCandidateRows flattens merge candidates into Parquet rows.
func MergeCandidateRows(candidates []schema.MergeCandidate) []MergeCandidateRow {
	rows := make([]MergeCandidateRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, MergeCandidateRow{
			FilePath:    c.FilePath,
			Resolution:  string(c.Resolution),
			Reason:      string(c.Reason),
			DuplicateOf: c.DuplicateOf,
			IsDuplicate: c.IsDuplicate,
		})
	}
	return rows
}

// FileQualityRows flattens quality metrics into Parquet rows.
func FileQualityRows(files []schema.FileQualityMetrics) []FileQualityRow {
	rows := make([]FileQualityRow, 0, len(files))
	for _, f := range files {
		rows = append(rows, FileQualityRow{
			Path:                 f.Path,
			Language:             string(f.Language),
			TotalLines:           int32(f.TotalLines),
			CodeLines:            int32(f.CodeLines),
			CommentLines:         int32(f.CommentLines),
			BlankLines:           int32(f.BlankLines),
			FunctionCount:        int32(f.FunctionCount),
			ClassCount:           int32(f.ClassCount),
			AggregateComplexity:  int32(f.AggregateComplexity),
			SecurityIssueCount:   int32(len(f.SecurityIssues)),
			TodoMarkerCount:      int32(len(f.TodoMarkers)),
			MaintainabilityScore: f.MaintainabilityScore,
			RefactorPriority:     string(f.RefactorPriority),
		})
	}
	return rows
}

// WriteParquet writes rows of any supported type to a Parquet file. The
// schema is inferred from the row struct tags.
func WriteParquet[T any](rows []T, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
