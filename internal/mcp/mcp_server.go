// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
)

// NewMCPServer initializes and configures the projscan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.SnapshotManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Projscan Archive Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: scan_archive ---
	s.AddTool(mcp.NewTool("scan_archive",
		mcp.WithDescription("Extract and validate file metadata (paths, sizes, MIME types, content hashes) from a ZIP, TAR or TAR.GZ archive."),
		mcp.WithString("archive_path", mcp.Description("Path to the archive file."), mcp.Required()),
		mcp.WithString("extensions", mcp.Description("Comma-separated list of file extensions to keep (empty keeps all).")),
		mcp.WithString("exclude_dirs", mcp.Description("Comma-separated list of directory names to skip.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of file records returned.")),
	), h.handleScanArchive)

	// --- 2. Tool: find_duplicates ---
	s.AddTool(mcp.NewTool("find_duplicates",
		mcp.WithDescription("Group the files of an archive by content hash and report duplicate groups with wasted bytes."),
		mcp.WithString("archive_path", mcp.Description("Path to the archive file."), mcp.Required()),
		mcp.WithNumber("min_size", mcp.Description("Ignore files smaller than this many bytes.")),
		mcp.WithString("include_exts", mcp.Description("Comma-separated list of extensions to consider (empty considers all).")),
		mcp.WithString("exclude_exts", mcp.Description("Comma-separated list of extensions to ignore.")),
	), h.handleFindDuplicates)

	// --- 3. Tool: merge_preview ---
	s.AddTool(mcp.NewTool("merge_preview",
		mcp.WithDescription("Reconcile an archive scan against a stored project snapshot and return the per-file merge decisions without persisting them."),
		mcp.WithString("archive_path", mcp.Description("Path to the archive file."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Project identifier whose snapshot to merge against."), mcp.Required()),
		mcp.WithString("strategy", mcp.Description("Merge strategy. Defaults to 'both'."), mcp.Enum("hash", "path", "both")),
		mcp.WithString("conflict_resolution", mcp.Description("Path conflict resolution. Defaults to 'newer'."), mcp.Enum("newer", "keep_existing", "replace")),
	), h.handleMergePreview)

	// --- 4. Tool: analyze_quality ---
	s.AddTool(mcp.NewTool("analyze_quality",
		mcp.WithDescription("Analyze source files under a directory and return per-file maintainability metrics with refactor priorities."),
		mcp.WithString("target_dir", mcp.Description("Directory to analyze (defaults to current directory if not specified).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of files returned.")),
	), h.handleAnalyzeQuality)

	return s
}

// StartMCPServer starts the projscan MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.SnapshotManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
