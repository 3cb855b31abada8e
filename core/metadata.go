package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

const (
	// hashChunkSize is the read granularity for content hashing. Entries are
	// never buffered whole for hashing purposes.
	hashChunkSize = 64 * 1024

	// sniffSize is how many leading bytes feed content-based MIME detection.
	sniffSize = 512
)

// RawEntry is the header-level view of one archive entry handed to
// metadata collection.
type RawEntry struct {
	Path    string
	ModTime time.Time
}

// CollectMetadata reads one entry to the end and produces its FileRecord:
// streamed SHA-256 content hash, MIME type from extension with content
// sniffing as fallback, and normalized UTC timestamps. When a prober is
// set, media entries are additionally probed; probe failures are
// best-effort and never fail the record.
func CollectMetadata(entry RawEntry, r io.Reader, prober contract.MediaProber) (schema.FileRecord, error) {
	sniff := make([]byte, sniffSize)
	n, err := io.ReadFull(r, sniff)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return schema.FileRecord{}, fmt.Errorf("read entry: %w", err)
	}
	sniff = sniff[:n]

	hasher := sha256.New()
	hasher.Write(sniff)
	size := int64(n)

	// Content is retained only when a prober may want it.
	var content []byte
	if prober != nil {
		content = append(content, sniff...)
	}

	buf := make([]byte, hashChunkSize)
	for {
		m, rerr := r.Read(buf)
		if m > 0 {
			hasher.Write(buf[:m])
			size += int64(m)
			if prober != nil {
				content = append(content, buf[:m]...)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return schema.FileRecord{}, fmt.Errorf("read entry: %w", rerr)
		}
	}

	modified := entry.ModTime
	if modified.IsZero() {
		modified = time.Now()
	}
	modified = modified.UTC()

	record := schema.FileRecord{
		Path:        entry.Path,
		SizeBytes:   size,
		MimeType:    DetectMimeType(entry.Path, sniff),
		CreatedAt:   modified, // Archives carry a single timestamp per entry
		ModifiedAt:  modified,
		ContentHash: hex.EncodeToString(hasher.Sum(nil)),
	}

	if prober != nil && isMediaMime(record.MimeType) {
		if info, perr := prober.Probe(content, record.MimeType); perr == nil && len(info) > 0 {
			record.MediaInfo = info
		}
	}

	return record, nil
}

// DetectMimeType resolves a MIME type for an entry, preferring the file
// extension and falling back to content sniffing of the leading bytes.
func DetectMimeType(entryPath string, sniff []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(entryPath))); byExt != "" {
		return stripMimeParams(byExt)
	}
	if len(sniff) == 0 {
		return "application/octet-stream"
	}
	return stripMimeParams(http.DetectContentType(sniff))
}

// stripMimeParams drops parameters like "; charset=utf-8" from a MIME type.
func stripMimeParams(mimeType string) string {
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		return parsed
	}
	return mimeType
}

// isMediaMime reports whether a MIME type is worth handing to a media prober.
func isMediaMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") ||
		strings.HasPrefix(mimeType, "audio/") ||
		strings.HasPrefix(mimeType, "video/")
}

// HashBytes returns the hex SHA-256 of a byte slice. It exists so callers
// building synthetic records agree with the streaming hasher.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
