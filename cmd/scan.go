package cmd

import (
	"github.com/spf13/cobra"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
)

// scanCmd ingests an archive and lists validated file metadata.
var scanCmd = &cobra.Command{
	Use:   "scan <archive-path>",
	Short: "Extract and validate file metadata from a project archive.",
	Long: `Unpack a ZIP, TAR or TAR.GZ archive in memory and collect metadata for
every regular file it contains.

For each file the scan records:
- Archive-relative path, normalized to forward slashes
- Size in bytes and MIME type (extension first, then content sniffing)
- SHA-256 content hash, computed while streaming
- Modification timestamp in UTC
- Image dimensions for media files

Unsafe entries never reach the results: paths escaping the extraction
root abort the whole scan, and unreadable entries or symlinks are
reported as per-entry issues.

Examples:
  # Scan an archive and print the file table
  projscan scan project.zip

  # Keep only source files, skipping dependency directories
  projscan scan project.tar.gz --extensions .go,.py --exclude-dirs node_modules,vendor

  # Export the full metadata for downstream tooling
  projscan scan project.zip --output parquet --output-file files.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScan(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot scan archive", err)
		}
	},
}
