package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core/quality"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/treeparse"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.SnapshotManager
}

func (h *toolHandler) handleScanArchive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ArchivePath = request.GetString("archive_path", "")
	if exts := request.GetString("extensions", ""); exts != "" {
		cfg.Preferences.AllowedExtensions = contract.SplitCSVList(exts)
	}
	if dirs := request.GetString("exclude_dirs", ""); dirs != "" {
		cfg.Preferences.ExcludedDirs = contract.SplitCSVList(dirs)
	}
	limit := request.GetInt("limit", 0)

	result, err := core.IngestArchive(ctx, cfg.ArchivePath, &cfg.Preferences, cfg.Workers, core.NewImageProber())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}
	if limit > 0 && len(result.Files) > limit {
		result.Files = result.Files[:limit]
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFindDuplicates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ArchivePath = request.GetString("archive_path", "")

	result, err := core.IngestArchive(ctx, cfg.ArchivePath, &cfg.Preferences, cfg.Workers, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	analysis := core.DetectDuplicates(result.Files, core.DuplicateOptions{
		MinSizeBytes: int64(request.GetInt("min_size", 0)),
		IncludeExts:  contract.SplitCSVList(request.GetString("include_exts", "")),
		ExcludeExts:  contract.SplitCSVList(request.GetString("exclude_exts", "")),
	})

	jsonData, _ := json.MarshalIndent(analysis, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleMergePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ArchivePath = request.GetString("archive_path", "")
	cfg.ProjectID = request.GetString("project", "")
	if s := request.GetString("strategy", ""); s != "" {
		cfg.Strategy = schema.MergeStrategy(s)
	}
	if r := request.GetString("conflict_resolution", ""); r != "" {
		cfg.ConflictResolution = schema.ConflictResolution(r)
	}

	store := h.mgr.GetSnapshotStore()
	if store == nil {
		return mcp.NewToolResultError("no snapshot backend configured"), nil
	}

	result, err := core.IngestArchive(ctx, cfg.ArchivePath, &cfg.Preferences, cfg.Workers, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	snapshot, err := store.Snapshot(cfg.ProjectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load snapshot: %v", err)), nil
	}

	mergeResult, err := core.ReconcileMerge(snapshot, result.Files, cfg.Strategy, cfg.ConflictResolution)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("merge preview failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(mergeResult, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeQuality(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("target_dir", ""); d != "" {
		cfg.TargetPath = d
	}
	if cfg.TargetPath == "" {
		cfg.TargetPath = "."
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := quality.AnalyzeDirectory(ctx, cfg, treeparse.NewRegistry())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("quality analysis failed: %v", err)), nil
	}
	result.Files = quality.RefactorCandidates(result, cfg.ResultLimit)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
