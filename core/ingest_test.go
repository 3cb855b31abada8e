package core

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// zipSpec describes one entry for the zip test helper.
type zipSpec struct {
	name    string
	body    string
	symlink bool // body holds the link target
}

// writeTestZip creates a zip archive in a temp dir and returns its path.
func writeTestZip(t *testing.T, entries []zipSpec) string {
	t.Helper()
	archivePath := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		hdr.Modified = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		if e.symlink {
			hdr.SetMode(os.ModeSymlink | 0o777)
		} else {
			hdr.SetMode(0o644)
		}
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return archivePath
}

// tarSpec describes one entry for the tar test helper.
type tarSpec struct {
	name     string
	body     string
	typeflag byte
	linkname string
}

// writeTestTar creates a tar (optionally gzipped) archive and returns its path.
func writeTestTar(t *testing.T, gzipped bool, entries []tarSpec) string {
	t.Helper()
	name := "test.tar"
	if gzipped {
		name = "test.tar.gz"
	}
	archivePath := filepath.Join(t.TempDir(), name)
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	var tw *tar.Writer
	if gzipped {
		gz := gzip.NewWriter(f)
		defer func() { require.NoError(t, gz.Close()) }()
		tw = tar.NewWriter(gz)
	} else {
		tw = tar.NewWriter(f)
	}

	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.name,
			Mode:     0o644,
			Size:     int64(len(e.body)),
			ModTime:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Typeflag: e.typeflag,
			Linkname: e.linkname,
			Format:   tar.FormatUSTAR,
		}
		if e.typeflag == 0 {
			hdr.Typeflag = tar.TypeReg
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return archivePath
}

func TestIngestArchiveZip(t *testing.T) {
	archivePath := writeTestZip(t, []zipSpec{
		{name: "readme.md", body: "# hello"},
		{name: "src/main.go", body: "package main"},
		{name: "src/", body: ""}, // Directory entry
		{name: "link.txt", body: "readme.md", symlink: true},
		{name: "notes.txt", body: "first"},
		{name: "notes.txt", body: "second version"}, // Later entry wins
	})

	result, err := IngestArchive(context.Background(), archivePath, nil, 4, nil)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, "notes.txt", result.Files[0].Path)
	assert.Equal(t, "readme.md", result.Files[1].Path)
	assert.Equal(t, "src/main.go", result.Files[2].Path)

	// Later duplicate entry wins, matching unzip behavior
	assert.Equal(t, int64(len("second version")), result.Files[0].SizeBytes)
	assert.Equal(t, HashBytes([]byte("second version")), result.Files[0].ContentHash)

	assert.Equal(t, HashBytes([]byte("# hello")), result.Files[1].ContentHash)
	assert.True(t, result.Files[1].ModifiedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	require.Len(t, result.Issues, 1)
	assert.Equal(t, schema.IssueSymlinkSkipped, result.Issues[0].Code)
	assert.Equal(t, "link.txt", result.Issues[0].Path)

	assert.Equal(t, 3, result.Summary.FilesProcessed)
	assert.Equal(t, 0, result.Summary.FilteredOut)
}

func TestIngestArchiveZipPathTraversal(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"parent traversal", "../evil.txt"},
		{"nested traversal", "a/../../evil.txt"},
		{"absolute path", "/etc/passwd"},
		{"windows drive", "C:\\windows\\system32\\evil.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := writeTestZip(t, []zipSpec{
				{name: "safe.txt", body: "ok"},
				{name: tt.entry, body: "payload"},
			})

			result, err := IngestArchive(context.Background(), archivePath, nil, 2, nil)
			require.Error(t, err)
			assert.Nil(t, result, "a fatal error must produce no partial result")

			var corrupt *CorruptArchiveError
			assert.ErrorAs(t, err, &corrupt)
		})
	}
}

func TestIngestArchiveZipSymlinkEscape(t *testing.T) {
	entries := []zipSpec{
		{name: "safe.txt", body: "ok"},
		{name: "escape", body: "../../outside", symlink: true},
	}

	// Without symlink following the entry is skipped with an issue.
	archivePath := writeTestZip(t, entries)
	result, err := IngestArchive(context.Background(), archivePath, nil, 2, nil)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, schema.IssueSymlinkSkipped, result.Issues[0].Code)

	// With symlink following an escaping target is fatal.
	prefs := &schema.IngestPreferences{FollowSymlinks: true}
	result, err = IngestArchive(context.Background(), archivePath, prefs, 2, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var corrupt *CorruptArchiveError
	assert.ErrorAs(t, err, &corrupt)
}

func TestIngestArchivePreferenceFilters(t *testing.T) {
	archivePath := writeTestZip(t, []zipSpec{
		{name: "main.go", body: "package main"},
		{name: "app.py", body: "print('x')"},
		{name: "node_modules/lib/index.js", body: "module.exports = {}"},
		{name: "big.go", body: "package big // padded to exceed the cap......."},
	})

	prefs := &schema.IngestPreferences{
		AllowedExtensions: []string{".go", ".js"},
		ExcludedDirs:      []string{"node_modules"},
		MaxFileSizeBytes:  20,
	}
	result, err := IngestArchive(context.Background(), archivePath, prefs, 2, nil)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "main.go", result.Files[0].Path)
	assert.Equal(t, 3, result.Summary.FilteredOut)
}

func TestIngestArchiveUnsupportedSignature(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(archivePath, []byte("not an archive at all"), 0o644))

	result, err := IngestArchive(context.Background(), archivePath, nil, 2, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var unsupported *UnsupportedArchiveError
	assert.ErrorAs(t, err, &unsupported)
}

func TestIngestArchiveMissingFile(t *testing.T) {
	_, err := IngestArchive(context.Background(), filepath.Join(t.TempDir(), "absent.zip"), nil, 2, nil)
	assert.Error(t, err)
}

func TestIngestArchiveTruncatedZip(t *testing.T) {
	archivePath := writeTestZip(t, []zipSpec{{name: "a.txt", body: "content"}})
	data, err := os.ReadFile(archivePath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(archivePath, data[:len(data)/2], 0o644))

	result, err := IngestArchive(context.Background(), archivePath, nil, 2, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var corrupt *CorruptArchiveError
	assert.ErrorAs(t, err, &corrupt)
}

func TestIngestArchiveTar(t *testing.T) {
	for _, gzipped := range []bool{false, true} {
		name := "tar"
		if gzipped {
			name = "tar.gz"
		}
		t.Run(name, func(t *testing.T) {
			archivePath := writeTestTar(t, gzipped, []tarSpec{
				{name: "docs/guide.md", body: "guide"},
				{name: "config.yml", body: "a: 1"},
				{name: "config.yml", body: "a: 2\nb: 3"}, // Later entry wins
				{name: "ln", typeflag: tar.TypeSymlink, linkname: "config.yml"},
			})

			result, err := IngestArchive(context.Background(), archivePath, nil, 2, nil)
			require.NoError(t, err)

			require.Len(t, result.Files, 2)
			assert.Equal(t, "config.yml", result.Files[0].Path)
			assert.Equal(t, "docs/guide.md", result.Files[1].Path)
			assert.Equal(t, HashBytes([]byte("a: 2\nb: 3")), result.Files[0].ContentHash)

			require.Len(t, result.Issues, 1)
			assert.Equal(t, schema.IssueSymlinkSkipped, result.Issues[0].Code)
		})
	}
}

func TestIngestArchiveTarTraversal(t *testing.T) {
	archivePath := writeTestTar(t, false, []tarSpec{
		{name: "ok.txt", body: "fine"},
		{name: "../../escape.txt", body: "payload"},
	})

	result, err := IngestArchive(context.Background(), archivePath, nil, 2, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var corrupt *CorruptArchiveError
	assert.ErrorAs(t, err, &corrupt)
}

func TestIngestArchiveTarSymlinkEscapeWithFollow(t *testing.T) {
	archivePath := writeTestTar(t, false, []tarSpec{
		{name: "dir/link", typeflag: tar.TypeSymlink, linkname: "../../outside"},
	})

	prefs := &schema.IngestPreferences{FollowSymlinks: true}
	_, err := IngestArchive(context.Background(), archivePath, prefs, 2, nil)
	require.Error(t, err)

	var corrupt *CorruptArchiveError
	assert.ErrorAs(t, err, &corrupt)
}

func TestNormalizeEntryPath(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{"simple", "a.txt", "a.txt", false},
		{"nested", "a/b/c.txt", "a/b/c.txt", false},
		{"backslashes normalized", "a\\b\\c.txt", "a/b/c.txt", false},
		{"redundant segments cleaned", "a/./b//c.txt", "a/b/c.txt", false},
		{"internal dotdot that stays inside", "a/b/../c.txt", "a/c.txt", false},
		{"escaping dotdot", "../x", "", true},
		{"nested escape", "a/../../x", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"drive letter", "C:/temp/x", "", true},
		{"empty", "", "", true},
		{"dot only", ".", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeEntryPath(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveSymlinkTarget(t *testing.T) {
	tests := []struct {
		name      string
		entryPath string
		target    string
		resolved  string
		inside    bool
	}{
		{"sibling", "dir/link", "file.txt", "dir/file.txt", true},
		{"up one inside root", "dir/link", "../other.txt", "other.txt", true},
		{"escape", "link", "../outside", "", false},
		{"absolute", "dir/link", "/etc/passwd", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, inside := resolveSymlinkTarget(tt.entryPath, tt.target)
			assert.Equal(t, tt.inside, inside)
			assert.Equal(t, tt.resolved, resolved)
		})
	}
}
