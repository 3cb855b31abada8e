package core

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// archiveKind identifies the container type detected from the signature.
type archiveKind int

const (
	kindUnknown archiveKind = iota
	kindZip
	kindTarGz
	kindTar
)

// maxSymlinkTargetBytes bounds how much of a symlink entry is read when
// resolving its target.
const maxSymlinkTargetBytes = 4096

// IngestArchive validates and safely extracts an archive, producing a
// ParseResult with one FileRecord per accepted entry.
//
// The whole container is validated before any entry is materialized:
// signature mismatch fails with *UnsupportedArchiveError, and truncated
// containers or entries escaping the archive root fail with
// *CorruptArchiveError. Both are fatal; no partial result is returned.
// Per-entry read failures are recorded as ParseIssues and never abort
// the batch.
func IngestArchive(ctx context.Context, archivePath string, prefs *schema.IngestPreferences, workers int, prober contract.MediaProber) (*schema.ParseResult, error) {
	if prefs == nil {
		prefs = &schema.IngestPreferences{}
	}
	if workers <= 0 {
		workers = 1
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("cannot stat archive: %w", err)
	}
	if info.Size() > contract.MaxArchiveSizeBytes {
		return nil, fmt.Errorf("archive exceeds the maximum archive size of %d bytes (got %d)", int64(contract.MaxArchiveSizeBytes), info.Size())
	}

	kind, err := detectArchiveKind(archivePath)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindZip:
		return ingestZip(ctx, archivePath, prefs, workers, prober)
	case kindTarGz, kindTar:
		return ingestTar(ctx, archivePath, kind == kindTarGz, prefs, prober)
	default:
		return nil, NewUnsupportedArchiveError(archivePath, "unrecognized container signature; expected zip, tar or tar.gz")
	}
}

// detectArchiveKind checks the container signature without parsing the
// full archive.
func detectArchiveKind(archivePath string) (archiveKind, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return kindUnknown, fmt.Errorf("cannot open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, 512)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return kindUnknown, fmt.Errorf("cannot read archive header: %w", err)
	}
	header = header[:n]

	switch {
	case bytes.HasPrefix(header, []byte{0x50, 0x4B, 0x03, 0x04}),
		bytes.HasPrefix(header, []byte{0x50, 0x4B, 0x05, 0x06}): // Empty zip
		return kindZip, nil
	case bytes.HasPrefix(header, []byte{0x1F, 0x8B}):
		return kindTarGz, nil
	case len(header) >= 263 && (string(header[257:262]) == "ustar"):
		return kindTar, nil
	default:
		return kindUnknown, NewUnsupportedArchiveError(archivePath, "unrecognized container signature; expected zip, tar or tar.gz")
	}
}

// normalizeEntryPath converts an archive entry name to a clean,
// forward-slash separated, archive-relative path. Absolute paths and
// paths resolving outside the archive root are rejected.
func normalizeEntryPath(name string) (string, error) {
	cleaned := strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(cleaned, "/") {
		return "", fmt.Errorf("absolute entry path %q", name)
	}
	if len(cleaned) >= 2 && cleaned[1] == ':' {
		return "", fmt.Errorf("absolute entry path %q", name)
	}
	normalized := path.Clean(cleaned)
	if normalized == "." || normalized == "" {
		return "", fmt.Errorf("empty entry path %q", name)
	}
	if normalized == ".." || strings.HasPrefix(normalized, "../") {
		return "", fmt.Errorf("entry path %q resolves outside the archive root", name)
	}
	return normalized, nil
}

// resolveSymlinkTarget resolves a symlink target relative to the entry's
// directory and reports whether it stays inside the archive root.
func resolveSymlinkTarget(entryPath, target string) (string, bool) {
	if strings.HasPrefix(target, "/") {
		return "", false
	}
	resolved := path.Clean(path.Join(path.Dir(entryPath), strings.ReplaceAll(target, "\\", "/")))
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return "", false
	}
	return resolved, true
}

// includeEntry applies the preference filters to an already-validated
// entry, using only header information.
func includeEntry(entryPath string, size int64, prefs *schema.IngestPreferences) bool {
	if contract.HasAnyPathSegment(path.Dir(entryPath), prefs.ExcludedDirs) {
		return false
	}
	if len(prefs.AllowedExtensions) > 0 {
		ext := strings.ToLower(path.Ext(entryPath))
		found := false
		for _, allowed := range prefs.AllowedExtensions {
			if ext == allowed {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if prefs.MaxFileSizeBytes > 0 && size > prefs.MaxFileSizeBytes {
		return false
	}
	return true
}

// collectOutcome carries either a record or a non-fatal issue out of the
// per-entry collection phase.
type collectOutcome struct {
	record schema.FileRecord
	issue  *schema.ParseIssue
	ok     bool
}

// ingestZip validates and extracts a zip archive. Entry extraction is
// parallelized across a worker pool once the whole-archive validation
// pass has succeeded.
func ingestZip(ctx context.Context, archivePath string, prefs *schema.IngestPreferences, workers int, prober contract.MediaProber) (*schema.ParseResult, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, NewCorruptArchiveError(archivePath, fmt.Sprintf("cannot parse zip container: %v", err))
	}
	defer func() { _ = reader.Close() }()

	// --- 1. Whole-archive validation pass ---
	type zipEntry struct {
		file *zip.File
		path string
	}
	var issues []schema.ParseIssue
	filteredOut := 0
	var totalDeclared int64

	// Later entries with the same normalized path win, matching unzip
	// semantics; the map tracks the winning entry per path.
	winner := make(map[string]zipEntry)
	var order []string

	for _, f := range reader.File {
		name := f.Name
		if strings.HasSuffix(name, "/") || f.FileInfo().IsDir() {
			continue
		}

		entryPath, err := normalizeEntryPath(name)
		if err != nil {
			return nil, NewCorruptEntryError(archivePath, name, err.Error())
		}

		if f.Mode()&os.ModeSymlink != 0 {
			target, rerr := readZipSymlinkTarget(f)
			if rerr != nil {
				return nil, NewCorruptEntryError(archivePath, name, fmt.Sprintf("cannot read symlink target: %v", rerr))
			}
			if prefs.FollowSymlinks {
				if _, inside := resolveSymlinkTarget(entryPath, target); !inside {
					return nil, NewCorruptEntryError(archivePath, name, fmt.Sprintf("symlink target %q escapes the archive root", target))
				}
			}
			issues = append(issues, schema.ParseIssue{
				Path:    entryPath,
				Code:    schema.IssueSymlinkSkipped,
				Message: fmt.Sprintf("symlink to %q not materialized", target),
			})
			continue
		}

		size := int64(f.UncompressedSize64)
		totalDeclared += size
		if totalDeclared > contract.MaxArchiveSizeBytes {
			return nil, fmt.Errorf("archive contents exceed the maximum archive size of %d bytes", int64(contract.MaxArchiveSizeBytes))
		}

		if !includeEntry(entryPath, size, prefs) {
			filteredOut++
			continue
		}

		if _, seen := winner[entryPath]; !seen {
			order = append(order, entryPath)
		}
		winner[entryPath] = zipEntry{file: f, path: entryPath}
	}

	// --- 2. Parallel collection phase ---
	entryCh := make(chan zipEntry, len(order))
	outcomeCh := make(chan collectOutcome, len(order))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for e := range entryCh {
				outcomeCh <- collectZipEntry(e.file, e.path, prober)
			}
		})
	}

	for _, p := range order {
		entryCh <- winner[p]
	}
	close(entryCh)
	wg.Wait()
	close(outcomeCh)

	// --- 3. Deterministic assembly ---
	records := make([]schema.FileRecord, 0, len(order))
	for outcome := range outcomeCh {
		if outcome.ok {
			records = append(records, outcome.record)
		} else if outcome.issue != nil {
			issues = append(issues, *outcome.issue)
		}
	}

	return assembleParseResult(records, issues, filteredOut), nil
}

// readZipSymlinkTarget reads the link target stored as the entry content.
func readZipSymlinkTarget(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(io.LimitReader(rc, maxSymlinkTargetBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// collectZipEntry opens one zip entry and collects its metadata.
// Failures are non-fatal and become UNREADABLE_ENTRY issues.
func collectZipEntry(f *zip.File, entryPath string, prober contract.MediaProber) collectOutcome {
	rc, err := f.Open()
	if err != nil {
		return unreadableOutcome(entryPath, err)
	}
	defer func() { _ = rc.Close() }()

	record, err := CollectMetadata(RawEntry{Path: entryPath, ModTime: f.Modified}, rc, prober)
	if err != nil {
		return unreadableOutcome(entryPath, err)
	}
	return collectOutcome{record: record, ok: true}
}

// unreadableOutcome wraps a per-entry failure as an UNREADABLE_ENTRY issue.
func unreadableOutcome(entryPath string, err error) collectOutcome {
	return collectOutcome{issue: &schema.ParseIssue{
		Path:    entryPath,
		Code:    schema.IssueUnreadableEntry,
		Message: err.Error(),
	}}
}

// tarEntryPlan is the outcome of the tar validation pass for one path.
type tarEntryPlan struct {
	path     string
	sequence int // Sequence number of the winning occurrence
}

// ingestTar validates and extracts a tar or tar.gz archive. Tar data is
// sequential, so the archive is walked twice: a header-only validation
// pass, then a collection pass over the accepted entries.
func ingestTar(ctx context.Context, archivePath string, gzipped bool, prefs *schema.IngestPreferences, prober contract.MediaProber) (*schema.ParseResult, error) {
	// --- 1. Whole-archive validation pass ---
	var issues []schema.ParseIssue
	filteredOut := 0
	var totalDeclared int64

	winner := make(map[string]tarEntryPlan)
	var order []string

	err := walkTar(archivePath, gzipped, func(sequence int, hdr *tar.Header) error {
		switch hdr.Typeflag {
		case tar.TypeDir:
			return nil
		case tar.TypeSymlink, tar.TypeLink:
			entryPath, perr := normalizeEntryPath(hdr.Name)
			if perr != nil {
				return NewCorruptEntryError(archivePath, hdr.Name, perr.Error())
			}
			if prefs.FollowSymlinks {
				if _, inside := resolveSymlinkTarget(entryPath, hdr.Linkname); !inside {
					return NewCorruptEntryError(archivePath, hdr.Name, fmt.Sprintf("symlink target %q escapes the archive root", hdr.Linkname))
				}
			}
			issues = append(issues, schema.ParseIssue{
				Path:    entryPath,
				Code:    schema.IssueSymlinkSkipped,
				Message: fmt.Sprintf("symlink to %q not materialized", hdr.Linkname),
			})
			return nil
		case tar.TypeReg:
			entryPath, perr := normalizeEntryPath(hdr.Name)
			if perr != nil {
				return NewCorruptEntryError(archivePath, hdr.Name, perr.Error())
			}

			totalDeclared += hdr.Size
			if totalDeclared > contract.MaxArchiveSizeBytes {
				return fmt.Errorf("archive contents exceed the maximum archive size of %d bytes", int64(contract.MaxArchiveSizeBytes))
			}

			if !includeEntry(entryPath, hdr.Size, prefs) {
				filteredOut++
				return nil
			}
			if _, seen := winner[entryPath]; !seen {
				order = append(order, entryPath)
			}
			winner[entryPath] = tarEntryPlan{path: entryPath, sequence: sequence}
			return nil
		default:
			// Device nodes, FIFOs and other special entries are skipped.
			return nil
		}
	}, nil)
	if err != nil {
		return nil, err
	}

	// --- 2. Sequential collection pass ---
	records := make([]schema.FileRecord, 0, len(order))
	err = walkTar(archivePath, gzipped, nil, func(sequence int, hdr *tar.Header, r io.Reader) error {
		entryPath, perr := normalizeEntryPath(hdr.Name)
		if perr != nil {
			return nil // Already rejected in pass 1; unreachable in practice
		}
		plan, ok := winner[entryPath]
		if !ok || plan.sequence != sequence {
			return nil
		}
		record, cerr := CollectMetadata(RawEntry{Path: entryPath, ModTime: hdr.ModTime}, r, prober)
		if cerr != nil {
			issues = append(issues, schema.ParseIssue{
				Path:    entryPath,
				Code:    schema.IssueUnreadableEntry,
				Message: cerr.Error(),
			})
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assembleParseResult(records, issues, filteredOut), nil
}

// walkTar iterates a tar archive. headerFn, when set, is invoked per
// header; contentFn, when set, is additionally given the entry reader for
// regular files. Container-level failures surface as CorruptArchiveError.
func walkTar(
	archivePath string,
	gzipped bool,
	headerFn func(sequence int, hdr *tar.Header) error,
	contentFn func(sequence int, hdr *tar.Header, r io.Reader) error,
) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("cannot open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	var source io.Reader = f
	if gzipped {
		gz, gerr := gzip.NewReader(f)
		if gerr != nil {
			return NewCorruptArchiveError(archivePath, fmt.Sprintf("cannot parse gzip container: %v", gerr))
		}
		defer func() { _ = gz.Close() }()
		source = gz
	}

	tr := tar.NewReader(source)
	sequence := 0
	for {
		hdr, nerr := tr.Next()
		if errors.Is(nerr, io.EOF) {
			return nil
		}
		if nerr != nil {
			return NewCorruptArchiveError(archivePath, fmt.Sprintf("cannot parse tar container: %v", nerr))
		}

		if headerFn != nil {
			if herr := headerFn(sequence, hdr); herr != nil {
				return herr
			}
		}
		if contentFn != nil && hdr.Typeflag == tar.TypeReg {
			if cerr := contentFn(sequence, hdr, tr); cerr != nil {
				return cerr
			}
		}
		sequence++
	}
}

// assembleParseResult sorts records and issues by path and computes the
// summary counters. Sorting here keeps results deterministic regardless of
// worker completion order.
func assembleParseResult(records []schema.FileRecord, issues []schema.ParseIssue, filteredOut int) *schema.ParseResult {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Code < issues[j].Code
	})

	var bytesProcessed int64
	for _, r := range records {
		bytesProcessed += r.SizeBytes
	}

	return &schema.ParseResult{
		Files:  records,
		Issues: issues,
		Summary: schema.ParseSummary{
			FilesProcessed: len(records),
			BytesProcessed: bytesProcessed,
			FilteredOut:    filteredOut,
		},
	}
}
