package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/snapstore"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need store access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.DatabaseBackend(viper.GetString("snapshot-backend"))
	connStr := viper.GetString("snapshot-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the store with the loaded config
	mgr, err := snapstore.NewManager(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	snapshotManager = mgr

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	cfg.ProjectID = viper.GetString("project")
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func snapshotMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.DatabaseBackend(viper.GetString("snapshot-backend"))
	connStr := viper.GetString("snapshot-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetSnapshotDBFilePath()
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotMigrateSetupWrapper wraps snapshotMigrateSetup to provide PreRunE for migrate command.
func snapshotMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotMigrateSetup()
}

// snapshotCmd focused on snapshot data management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead
// of the full sharedSetup used by pipeline commands. This avoids archive path
// handling and complex config processing for simple store operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored project snapshots",
	Long: `Manage the snapshot store that merge reconciliation runs against.

Each merge persists a per-project file map: archive-relative paths with
content hashes, sizes, MIME types and timestamps. Later merges compare
new scans against this map to decide what changed.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection health
  clear   - Remove stored files for one project or all projects
  migrate - Run database schema migrations

Examples:
  # Check store status
  projscan snapshot status

  # Remove one project's snapshot
  projscan snapshot clear --project website`,
}

// snapshotStatusCmd shows snapshot store status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot store statistics and connection details",
	Long: `Show detailed information about the snapshot store.

Displays:
- Backend type and connection status
- Number of tracked projects and files
- Last update timestamp
- Storage size of the snapshot table

Examples:
  # Check snapshot store status
  projscan snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshotStatus(cfg, snapshotManager); err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
	},
}

// snapshotClearCmd clears stored snapshot data.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove stored snapshot files",
	Long: `Delete stored snapshot files for a project, or for every project when
no --project is given.

WARNING: This action cannot be undone. The next merge against a cleared
project treats every file as new.

Examples:
  # Clear one project
  projscan snapshot clear --project website

  # Clear everything
  projscan snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := snapshotManager.GetSnapshotStore()
		if store == nil {
			contract.LogFatal("Failed to clear snapshot data", snapstore.ErrNoStore)
		}
		if err := store.Clear(cfg.ProjectID); err != nil {
			contract.LogFatal("Failed to clear snapshot data", err)
		}
		fmt.Println("Snapshot data cleared successfully.")
	},
}

// snapshotMigrateCmd runs database migrations for the snapshot store.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  projscan snapshot migrate

  # Rollback to initial state
  projscan snapshot migrate --target-version 0`,
	PreRunE: snapshotMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapstore.MigrateSnapshot(cfg.SnapshotBackend, cfg.SnapshotDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
