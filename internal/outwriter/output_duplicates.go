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

// PrintDuplicateResult outputs a duplicate analysis, dispatching based on
// the output format configured.
func PrintDuplicateResult(result *schema.DuplicateAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDuplicateCSV(w, result.DuplicateGroups)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteParquet(parquet.DuplicateFileRows(result.DuplicateGroups), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDuplicateTable(result, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeDuplicateTable generates and writes the human-readable group table.
func writeDuplicateTable(result *schema.DuplicateAnalysisResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Hash", "Copies", "Canonical", "Total Size", "Wasted"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := getMaxTablePathWidth(cfg, 60)
	shown := result.DuplicateGroups
	if len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}

	var data [][]string
	for i, g := range shown {
		canonical := ""
		if len(g.Files) > 0 {
			canonical = contract.TruncatePath(g.Files[0].Path, pathWidth)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			g.ContentHash[:min(12, len(g.ContentHash))],
			strconv.Itoa(len(g.Files)),
			canonical,
			schema.FormatBytes(g.TotalSizeBytes),
			schema.FormatBytes(g.WastedBytes),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Analyzed %d files (%d hashed): %d duplicates in %d groups, %s wasted (%s%% of duplicated bytes)\n",
		result.TotalFilesAnalyzed, result.FilesWithHash, result.TotalDuplicateFiles, len(result.DuplicateGroups),
		schema.FormatBytes(result.TotalWastedBytes), fmtFloat(result.SpaceSavingsPercent)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Duplicate analysis completed in %v with %d workers\n", duration, cfg.Workers)
	return err
}

// writeDuplicateCSV writes per-member duplicate rows in CSV format.
func writeDuplicateCSV(w io.Writer, groups []schema.DuplicateGroup) error {
	header := []string{"content_hash", "path", "size_bytes", "group_size", "group_wasted_bytes", "is_canonical"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, g := range groups {
			for i, f := range g.Files {
				row := []string{
					g.ContentHash,
					f.Path,
					strconv.FormatInt(f.SizeBytes, 10),
					strconv.Itoa(len(g.Files)),
					strconv.FormatInt(g.WastedBytes, 10),
					strconv.FormatBool(i == 0),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}
