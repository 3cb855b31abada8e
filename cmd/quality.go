package cmd

import (
	"github.com/spf13/cobra"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/core"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/treeparse"
)

// qualityCmd analyzes source files under a directory.
var qualityCmd = &cobra.Command{
	Use:   "quality [target-dir]",
	Short: "Score source files for maintainability and flag refactor candidates.",
	Long: `Walk a directory tree, parse every supported source file and compute
per-file quality metrics.

For each file the analysis reports:
- Line counts split into code, comments and blanks
- Function and class counts with per-function complexity
- Security-sensitive patterns and TODO/FIXME markers
- A 0-100 maintainability score with a refactor priority

Supported languages: Python, Ruby, Go, JavaScript, TypeScript, Java, C, C++.
Unsupported and oversized files are reported as per-file errors and
never abort the run.

Examples:
  # Analyze the current directory
  projscan quality

  # Focus on the worst files in a service
  projscan quality ./services/api --limit 10

  # Export every metric for dashboarding
  projscan quality . --output parquet --output-file quality.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteQuality(rootCtx, cfg, treeparse.NewRegistry()); err != nil {
			contract.LogFatal("Cannot run quality analysis", err)
		}
	},
}
