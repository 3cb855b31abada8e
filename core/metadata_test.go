package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectMetadata(t *testing.T) {
	content := strings.Repeat("line of text\n", 100) // Larger than the sniff window
	modTime := time.Date(2024, 5, 10, 8, 30, 0, 0, time.FixedZone("PST", -8*3600))

	record, err := CollectMetadata(RawEntry{Path: "docs/readme.txt", ModTime: modTime}, strings.NewReader(content), nil)
	require.NoError(t, err)

	assert.Equal(t, "docs/readme.txt", record.Path)
	assert.Equal(t, int64(len(content)), record.SizeBytes)
	assert.Equal(t, "text/plain", record.MimeType)
	assert.Equal(t, HashBytes([]byte(content)), record.ContentHash)
	assert.Equal(t, time.UTC, record.ModifiedAt.Location())
	assert.True(t, record.ModifiedAt.Equal(modTime))
	assert.Equal(t, record.ModifiedAt, record.CreatedAt)
	assert.Nil(t, record.MediaInfo)
}

func TestCollectMetadataEmptyFile(t *testing.T) {
	record, err := CollectMetadata(RawEntry{Path: "empty.bin"}, bytes.NewReader(nil), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), record.SizeBytes)
	assert.Equal(t, HashBytes(nil), record.ContentHash)
	assert.False(t, record.ModifiedAt.IsZero(), "zero mod times fall back to ingestion time")
}

func TestCollectMetadataDeterministicHash(t *testing.T) {
	content := strings.Repeat("abc123", 50_000) // Forces multiple hash chunks

	first, err := CollectMetadata(RawEntry{Path: "a.dat"}, strings.NewReader(content), nil)
	require.NoError(t, err)
	second, err := CollectMetadata(RawEntry{Path: "b.dat"}, strings.NewReader(content), nil)
	require.NoError(t, err)

	assert.Equal(t, first.ContentHash, second.ContentHash)
	assert.Equal(t, HashBytes([]byte(content)), first.ContentHash)
}

// failingReader errors after its prefix is consumed.
type failingReader struct {
	prefix *strings.Reader
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.prefix.Len() > 0 {
		return f.prefix.Read(p)
	}
	return 0, errors.New("disk error")
}

func TestCollectMetadataReadFailure(t *testing.T) {
	r := &failingReader{prefix: strings.NewReader(strings.Repeat("x", 1024))}
	_, err := CollectMetadata(RawEntry{Path: "bad.txt"}, r, nil)
	assert.Error(t, err)
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		sniff    []byte
		expected string
	}{
		{"extension wins", "photo.png", []byte("not really a png"), "image/png"},
		{"extension case-insensitive", "PHOTO.PNG", nil, "image/png"},
		{"html by extension", "index.html", nil, "text/html"},
		{"sniffed text", "LICENSE", []byte("Copyright (c) 2024"), "text/plain"},
		{"sniffed pdf", "document", []byte("%PDF-1.7 rest of header"), "application/pdf"},
		{"unknown empty content", "mystery", nil, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectMimeType(tt.path, tt.sniff))
		})
	}
}

// stubProber records what it was probed with.
type stubProber struct {
	calls int
	info  map[string]any
}

func (s *stubProber) Probe(content []byte, mimeType string) (map[string]any, error) {
	s.calls++
	return s.info, nil
}

func TestCollectMetadataProbesMediaOnly(t *testing.T) {
	prober := &stubProber{info: map[string]any{"width": 10}}

	record, err := CollectMetadata(RawEntry{Path: "img.png"}, strings.NewReader("fake png bytes"), prober)
	require.NoError(t, err)
	assert.Equal(t, 1, prober.calls)
	assert.Equal(t, map[string]any{"width": 10}, record.MediaInfo)

	record, err = CollectMetadata(RawEntry{Path: "notes.txt"}, strings.NewReader("plain text"), prober)
	require.NoError(t, err)
	assert.Equal(t, 1, prober.calls, "non-media entries are never probed")
	assert.Nil(t, record.MediaInfo)
}
