package cmd

import (
	"github.com/spf13/cobra"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
)

// mergeCmd reconciles a new scan against the stored project snapshot.
var mergeCmd = &cobra.Command{
	Use:   "merge <archive-path>",
	Short: "Reconcile a new archive scan against a stored project snapshot.",
	Long: `Scan an archive and merge its files into the snapshot stored for a
project, deciding per file whether to add, update or skip.

Strategies:
  hash  - match by content hash only; identical content is skipped
  path  - match by path only; conflicts follow --conflict-resolution
  both  - match by hash and path; a hash match anywhere wins (default)

Conflict resolutions for path matches with different content:
  newer         - keep whichever side has the later modification time (default)
  keep_existing - always keep the snapshot version
  replace       - always take the incoming version

Accepted decisions are persisted to the snapshot backend unless
--dry-run is set.

Examples:
  # Merge a new scan into a project snapshot
  projscan merge project-v2.zip --project website

  # Preview the decisions without writing anything
  projscan merge project-v2.zip --project website --dry-run

  # Conservative merge that never overwrites stored files
  projscan merge project-v2.zip --project website --strategy path --conflict-resolution keep_existing`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMerge(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot merge archive", err)
		}
	},
}
