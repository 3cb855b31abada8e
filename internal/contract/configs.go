package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit      = 25
	MaxResultLimit          = 1000
	DefaultPrecision        = 1
	DefaultMaxFileSizeBytes = 50 * 1024 * 1024       // Per-file preference cap
	MaxArchiveSizeBytes     = 2 * 1024 * 1024 * 1024 // Whole-archive policy limit
	DefaultMaxDepth         = 20                     // Directory analysis recursion bound
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for a pipeline invocation.
// This struct remains the "final, validated" config.
type Config struct {
	ArchivePath string
	TargetPath  string // Directory target for quality analysis
	ProjectID   string

	Preferences schema.IngestPreferences

	Workers     int
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Strategy           schema.MergeStrategy
	ConflictResolution schema.ConflictResolution
	DryRun             bool // Preview merge decisions without persisting

	MinDuplicateSize int64
	DupIncludeExts   []string
	DupExcludeExts   []string

	MaxDepth int

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	ArchivePathStr string
	TargetPathStr  string

	// --- Fields from rootCmd.PersistentFlags() ---
	Project           string `mapstructure:"project"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`

	// --- Fields from scanCmd.Flags() ---
	Extensions     string `mapstructure:"extensions"`
	ExcludeDirs    string `mapstructure:"exclude-dirs"`
	MaxFileSize    int64  `mapstructure:"max-file-size"`
	FollowSymlinks bool   `mapstructure:"follow-symlinks"`

	// --- Fields from mergeCmd.Flags() ---
	Strategy           string `mapstructure:"strategy"`
	ConflictResolution string `mapstructure:"conflict-resolution"`
	DryRun             bool   `mapstructure:"dry-run"`

	// --- Fields from duplicatesCmd.Flags() ---
	MinSize     int64  `mapstructure:"min-size"`
	IncludeExts string `mapstructure:"include-exts"`
	ExcludeExts string `mapstructure:"exclude-exts"`

	// --- Fields from qualityCmd.Flags() ---
	MaxDepth int `mapstructure:"max-depth"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Preferences.AllowedExtensions = append([]string(nil), c.Preferences.AllowedExtensions...)
	clone.Preferences.ExcludedDirs = append([]string(nil), c.Preferences.ExcludedDirs...)
	clone.DupIncludeExts = append([]string(nil), c.DupIncludeExts...)
	clone.DupExcludeExts = append([]string(nil), c.DupExcludeExts...)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPreferences(cfg, input); err != nil {
		return err
	}
	if err := processMergeInputs(cfg, input); err != nil {
		return err
	}
	if err := processDuplicateInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-domain fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ArchivePath = input.ArchivePathStr
	cfg.TargetPath = input.TargetPathStr
	cfg.ProjectID = strings.TrimSpace(input.Project)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 4. Depth Validation ---
	if input.MaxDepth < 0 {
		return fmt.Errorf("max-depth cannot be negative (received %d)", input.MaxDepth)
	}
	cfg.MaxDepth = input.MaxDepth
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	return nil
}

// processPreferences builds the ingestion preferences from raw inputs.
func processPreferences(cfg *Config, input *ConfigRawInput) error {
	if input.MaxFileSize < 0 {
		return fmt.Errorf("max-file-size cannot be negative (received %d)", input.MaxFileSize)
	}
	cfg.Preferences.MaxFileSizeBytes = input.MaxFileSize
	if cfg.Preferences.MaxFileSizeBytes == 0 {
		cfg.Preferences.MaxFileSizeBytes = DefaultMaxFileSizeBytes
	}
	cfg.Preferences.FollowSymlinks = input.FollowSymlinks

	cfg.Preferences.AllowedExtensions = normalizeExtensions(SplitCSVList(input.Extensions))
	cfg.Preferences.ExcludedDirs = SplitCSVList(input.ExcludeDirs)

	return nil
}

// processMergeInputs validates the merge strategy and conflict resolution.
func processMergeInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Strategy = schema.MergeStrategy(strings.ToLower(input.Strategy))
	if _, ok := schema.ValidMergeStrategies[cfg.Strategy]; !ok {
		return fmt.Errorf("invalid strategy '%s'. must be hash, path, both", input.Strategy)
	}

	cfg.ConflictResolution = schema.ConflictResolution(strings.ToLower(input.ConflictResolution))
	if _, ok := schema.ValidConflictResolutions[cfg.ConflictResolution]; !ok {
		return fmt.Errorf("invalid conflict resolution '%s'. must be newer, keep_existing, replace", input.ConflictResolution)
	}

	cfg.DryRun = input.DryRun
	return nil
}

// processDuplicateInputs validates the duplicate detection filters.
func processDuplicateInputs(cfg *Config, input *ConfigRawInput) error {
	if input.MinSize < 0 {
		return fmt.Errorf("min-size cannot be negative (received %d)", input.MinSize)
	}
	cfg.MinDuplicateSize = input.MinSize
	cfg.DupIncludeExts = normalizeExtensions(SplitCSVList(input.IncludeExts))
	cfg.DupExcludeExts = normalizeExtensions(SplitCSVList(input.ExcludeExts))
	return nil
}

// validateBackendConfig validates the snapshot backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	return ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	}
	return nil
}

// normalizeExtensions lowercases extensions and guarantees a leading dot.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
