package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/parquet"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// PrintMergeResult outputs a merge reconciliation, dispatching based on
// the output format configured.
func PrintMergeResult(result *schema.MergeResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMergeCSV(w, result.Candidates)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteParquet(parquet.MergeCandidateRows(result.Candidates), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMergeTable(result, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeMergeTable generates and writes the human-readable decision table.
func writeMergeTable(result *schema.MergeResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Path", "Resolution", "Reason", "Duplicate Of"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := getMaxTablePathWidth(cfg, 55)
	shown := result.Candidates
	if len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}

	var data [][]string
	for i, c := range shown {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(c.FilePath, pathWidth),
			resolutionLabel(c.Resolution, cfg.UseColors),
			string(c.Reason),
			contract.TruncatePath(c.DuplicateOf, pathWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	mode := ""
	if cfg.DryRun {
		mode = " (dry run, nothing persisted)"
	}
	if _, err := fmt.Fprintf(writer, "Added %d, updated %d, skipped %d duplicates; project now tracks %d files%s\n",
		result.FilesAdded, result.FilesUpdated, result.DuplicatesSkipped, result.TotalProjectFiles, mode); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Merge completed in %v using strategy %s with %s conflict resolution\n",
		duration, cfg.Strategy, cfg.ConflictResolution)
	return err
}

// writeMergeCSV writes the merge decisions in CSV format.
func writeMergeCSV(w io.Writer, candidates []schema.MergeCandidate) error {
	header := []string{"file_path", "resolution", "reason", "duplicate_of", "is_duplicate"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, c := range candidates {
			row := []string{
				c.FilePath,
				string(c.Resolution),
				string(c.Reason),
				c.DuplicateOf,
				strconv.FormatBool(c.IsDuplicate),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
