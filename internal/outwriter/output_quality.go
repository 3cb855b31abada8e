package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/parquet"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// PrintQualityResult outputs a directory quality analysis, dispatching
// based on the output format configured.
func PrintQualityResult(result *schema.DirectoryQualityResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQualityCSV(w, result.Files, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteParquet(parquet.FileQualityRows(result.Files), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQualityTable(result, cfg, duration, w)
		}, "Wrote table")
	}
}

// worstFirst orders analyzed files ascending by maintainability score so
// refactor candidates surface at the top of the table.
func worstFirst(files []schema.FileQualityMetrics) []schema.FileQualityMetrics {
	ranked := append([]schema.FileQualityMetrics(nil), files...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MaintainabilityScore != ranked[j].MaintainabilityScore {
			return ranked[i].MaintainabilityScore < ranked[j].MaintainabilityScore
		}
		return ranked[i].Path < ranked[j].Path
	})
	return ranked
}

// writeQualityTable generates and writes the human-readable quality table.
func writeQualityTable(result *schema.DirectoryQualityResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Path", "Lang", "Lines", "Funcs", "Cmplx", "Issues", "Score", "Priority"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := getMaxTablePathWidth(cfg, 70)
	ranked := worstFirst(result.Files)
	if len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}

	var data [][]string
	for i, f := range ranked {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, pathWidth),
			string(f.Language),
			fmt.Sprintf(intFmt, f.TotalLines),
			fmt.Sprintf(intFmt, f.FunctionCount),
			fmt.Sprintf(intFmt, f.AggregateComplexity),
			fmt.Sprintf(intFmt, len(f.SecurityIssues)+len(f.TodoMarkers)),
			fmtFloat(f.MaintainabilityScore),
			priorityLabel(f.RefactorPriority, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, ferr := range result.Errors {
		if _, err := fmt.Fprintf(writer, "Skipped %s: %s\n", ferr.Path, ferr.Message); err != nil {
			return err
		}
	}

	s := result.Summary
	if _, err := fmt.Fprintf(writer, "Analyzed %d of %d files: %d lines, %d functions, %d classes\n",
		s.AnalyzedFiles, s.TotalFiles, s.TotalLines, s.TotalFunctions, s.TotalClasses); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Avg complexity %s, avg maintainability %s; %d high-priority files, %d functions need refactoring\n",
		fmtFloat(s.AvgComplexity), fmtFloat(s.AvgMaintainability), s.HighPriorityFiles, s.FunctionsNeedingRefactor); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Quality analysis completed in %v with %d workers\n", duration, cfg.Workers)
	return err
}

// writeQualityCSV writes per-file quality rows in CSV format, worst first.
func writeQualityCSV(w io.Writer, files []schema.FileQualityMetrics, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	header := []string{
		"path", "language", "total_lines", "code_lines", "comment_lines", "blank_lines",
		"function_count", "class_count", "aggregate_complexity",
		"security_issues", "todo_markers", "maintainability_score", "refactor_priority",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, f := range worstFirst(files) {
			row := []string{
				f.Path,
				string(f.Language),
				strconv.Itoa(f.TotalLines),
				strconv.Itoa(f.CodeLines),
				strconv.Itoa(f.CommentLines),
				strconv.Itoa(f.BlankLines),
				strconv.Itoa(f.FunctionCount),
				strconv.Itoa(f.ClassCount),
				strconv.Itoa(f.AggregateComplexity),
				strconv.Itoa(len(f.SecurityIssues)),
				strconv.Itoa(len(f.TodoMarkers)),
				fmtFloat(f.MaintainabilityScore),
				contract.GetPlainPriorityLabel(f.RefactorPriority),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// PrintSnapshotStatus prints snapshot store status information.
func PrintSnapshotStatus(status *schema.SnapshotStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Snapshot Backend: %s\n", status.Backend); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Connected: %t\n", status.Connected); err != nil {
			return err
		}
		if !status.Connected {
			return nil
		}
		if _, err := fmt.Fprintf(w, "Projects: %d\n", status.ProjectCount); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Files: %d\n", status.FileCount); err != nil {
			return err
		}
		if status.FileCount > 0 {
			if _, err := fmt.Fprintf(w, "Last Updated: %s\n", status.LastUpdated.Format("2006-01-02 15:04:05")); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
		return err
	}, "Wrote status")
}
