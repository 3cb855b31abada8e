package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // highColor flags files needing immediate attention.
	MediumColor = color.New(color.FgYellow)          // mediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.
	AddColor    = color.New(color.FgGreen)           // addColor marks files entering the snapshot.
)

// GetColorResolutionLabel returns a colored merge resolution for console output.
func GetColorResolutionLabel(r schema.Resolution) string {
	switch r {
	case schema.ResolutionAdd:
		return AddColor.Sprint(string(r))
	case schema.ResolutionUpdate:
		return MediumColor.Sprint(string(r))
	default: // skip
		return LowColor.Sprint(string(r))
	}
}

// GetPlainPriorityLabel returns the plain text form of a refactor priority.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainPriorityLabel(p schema.RefactorPriority) string {
	return string(p)
}

// GetColorPriorityLabel returns a colored priority label for console output.
func GetColorPriorityLabel(p schema.RefactorPriority) string {
	switch p {
	case schema.PriorityHigh:
		return HighColor.Sprint(string(p))
	case schema.PriorityMedium:
		return MediumColor.Sprint(string(p))
	default: // LOW
		return LowColor.Sprint(string(p))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".projscan_snapshot.db"
	}
	return filepath.Join(homeDir, ".projscan_snapshot.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and at least
// one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// SplitCSVList splits a comma-separated flag value into trimmed non-empty parts.
func SplitCSVList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// HasAnyPathSegment reports whether any forward-slash segment of path
// matches one of the given directory names exactly.
func HasAnyPathSegment(path string, names []string) bool {
	if len(names) == 0 {
		return false
	}
	for segment := range strings.SplitSeq(path, "/") {
		for _, name := range names {
			if segment == name {
				return true
			}
		}
	}
	return false
}
