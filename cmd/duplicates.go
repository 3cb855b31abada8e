package cmd

import (
	"github.com/spf13/cobra"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
)

// duplicatesCmd groups archive files by content hash.
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <archive-path>",
	Short: "Find files with identical content inside an archive.",
	Long: `Group the files of an archive by SHA-256 content hash and report every
group with more than one member.

Groups are ordered by wasted bytes so the most redundant content
surfaces first. The first file of each group, in archive order, is the
canonical copy; the rest count as waste.

Examples:
  # Show duplicate groups in an archive
  projscan duplicates project.zip

  # Ignore small files and focus on media assets
  projscan duplicates assets.tar.gz --min-size 4096 --include-exts .png,.jpg

  # Export per-member rows for a dedup report
  projscan duplicates project.zip --output csv --output-file dupes.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDuplicates(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run duplicate analysis", err)
		}
	},
}
