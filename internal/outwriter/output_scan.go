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

// PrintScanResult outputs an ingestion result, dispatching based on the
// output format configured.
func PrintScanResult(result *schema.ParseResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanCSV(w, result.Files)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteParquet(parquet.FileRecordRows(result.Files), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanTable(result, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeScanTable generates and writes the human-readable file table.
func writeScanTable(result *schema.ParseResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Path", "Size", "MIME", "Hash", "Modified"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := getMaxTablePathWidth(cfg, 60)
	shown := result.Files
	if len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}

	var data [][]string
	for i, f := range shown {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, pathWidth),
			schema.FormatBytes(f.SizeBytes),
			f.MimeType,
			f.HashPrefix(),
			f.ModifiedAt.Format("2006-01-02 15:04:05"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, issue := range result.Issues {
		if _, err := fmt.Fprintf(writer, "Issue [%s] %s: %s\n", issue.Code, issue.Path, issue.Message); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "Processed %d files (%s), filtered out %d\n",
		result.Summary.FilesProcessed, schema.FormatBytes(result.Summary.BytesProcessed), result.Summary.FilteredOut); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Scan completed in %v with %d workers\n", duration, cfg.Workers)
	return err
}

// writeScanCSV writes the scanned files in CSV format.
func writeScanCSV(w io.Writer, files []schema.FileRecord) error {
	header := []string{"path", "size_bytes", "mime_type", "content_hash", "created_at", "modified_at"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, f := range files {
			row := []string{
				f.Path,
				strconv.FormatInt(f.SizeBytes, 10),
				f.MimeType,
				f.ContentHash,
				f.CreatedAt.Format(time.RFC3339),
				f.ModifiedAt.Format(time.RFC3339),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
