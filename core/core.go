// Package core has core logic for ingestion, deduplication, merge
// reconciliation and code quality analysis.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core/quality"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing pipeline commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteScan ingests an archive and prints the parse result.
// It serves as the main entry point for the 'scan' command.
func ExecuteScan(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := IngestArchive(ctx, cfg.ArchivePath, &cfg.Preferences, cfg.Workers, NewImageProber())
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintScanResult(result, cfg, duration)
}

// ExecuteDuplicates ingests an archive, groups its files by content hash
// and prints the duplicate analysis. It serves as the main entry point for
// the 'duplicates' command.
func ExecuteDuplicates(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := IngestArchive(ctx, cfg.ArchivePath, &cfg.Preferences, cfg.Workers, nil)
	if err != nil {
		return err
	}
	analysis := DetectDuplicates(result.Files, DuplicateOptions{
		MinSizeBytes: cfg.MinDuplicateSize,
		IncludeExts:  cfg.DupIncludeExts,
		ExcludeExts:  cfg.DupExcludeExts,
	})
	duration := time.Since(start)
	return outwriter.PrintDuplicateResult(analysis, cfg, duration)
}

// ExecuteMerge ingests an archive, reconciles it against the stored
// project snapshot and persists the accepted decisions. With DryRun set
// the decisions are printed but nothing is written. It serves as the main
// entry point for the 'merge' command.
func ExecuteMerge(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()
	if cfg.ProjectID == "" {
		return errors.New("merge requires a project; set --project")
	}
	store := mgr.GetSnapshotStore()
	if store == nil {
		return errors.New("merge requires a snapshot backend; set --snapshot-backend")
	}

	result, err := IngestArchive(ctx, cfg.ArchivePath, &cfg.Preferences, cfg.Workers, nil)
	if err != nil {
		return err
	}

	snapshot, err := store.Snapshot(cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot for project %s: %w", cfg.ProjectID, err)
	}

	mergeResult, err := ReconcileMerge(snapshot, result.Files, cfg.Strategy, cfg.ConflictResolution)
	if err != nil {
		return err
	}

	if !cfg.DryRun {
		if err := store.ApplyMerge(cfg.ProjectID, mergeResult, result.Files); err != nil {
			return fmt.Errorf("failed to persist merge for project %s: %w", cfg.ProjectID, err)
		}
	}

	duration := time.Since(start)
	return outwriter.PrintMergeResult(mergeResult, cfg, duration)
}

// ExecuteQuality analyzes a source directory and prints per-file quality
// metrics with the aggregate summary. It serves as the main entry point
// for the 'quality' command.
func ExecuteQuality(ctx context.Context, cfg *contract.Config, resolver contract.ParserResolver) error {
	start := time.Now()
	result, err := quality.AnalyzeDirectory(ctx, cfg, resolver)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintQualityResult(result, cfg, duration)
}

// ExecuteSnapshotStatus prints status information for the configured
// snapshot backend.
func ExecuteSnapshotStatus(cfg *contract.Config, mgr contract.SnapshotManager) error {
	store := mgr.GetSnapshotStore()
	if store == nil {
		return errors.New("no snapshot backend configured; set --snapshot-backend")
	}
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to read snapshot status: %w", err)
	}
	return outwriter.PrintSnapshotStatus(&status, cfg)
}
