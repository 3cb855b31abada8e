// Package cmd defines the command-line interface for projscan.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(qualityCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotStatusCmd)
	snapshotCmd.AddCommand(snapshotClearCmd)
	snapshotCmd.AddCommand(snapshotMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project identifier for snapshot persistence")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.SQLiteBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("extensions", "", "Comma-separated list of file extensions to keep (empty keeps all)")
	rootCmd.PersistentFlags().String("exclude-dirs", "", "Comma-separated list of directory names to skip")
	rootCmd.PersistentFlags().Int64("max-file-size", 0, "Per-file size cap in bytes (0 = default 50MB)")
	rootCmd.PersistentFlags().Bool("follow-symlinks", false, "Validate symlink targets instead of skipping silently")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of duplicatesCmd to Viper
	duplicatesCmd.Flags().Int64("min-size", 0, "Ignore files smaller than this many bytes")
	duplicatesCmd.Flags().String("include-exts", "", "Comma-separated list of extensions to consider (empty considers all)")
	duplicatesCmd.Flags().String("exclude-exts", "", "Comma-separated list of extensions to ignore")
	if err := viper.BindPFlags(duplicatesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding duplicates flags", err)
	}

	// Bind all flags of mergeCmd to Viper
	mergeCmd.Flags().String("strategy", string(schema.BothStrategy), "Merge strategy: hash or path or both")
	mergeCmd.Flags().String("conflict-resolution", string(schema.NewerWins), "Path conflict resolution: newer or keep_existing or replace")
	mergeCmd.Flags().Bool("dry-run", false, "Print merge decisions without persisting them")
	if err := viper.BindPFlags(mergeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding merge flags", err)
	}

	// Bind all flags of qualityCmd to Viper
	qualityCmd.Flags().Int("max-depth", 0, "Directory recursion depth bound (0 = default)")
	if err := viper.BindPFlags(qualityCmd.Flags()); err != nil {
		contract.LogFatal("Error binding quality flags", err)
	}

	// Bind all flags of snapshotMigrateCmd to Viper
	snapshotMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(snapshotMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot migrate flags", err)
	}
}
