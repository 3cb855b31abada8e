// Package quality computes per-file and per-directory code quality metrics
// from syntax trees: complexity, line classification, maintainability
// scoring and issue scanning.
package quality

import (
	"math"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// Per-function refactor thresholds. A function crossing any one of them is
// flagged as a refactor candidate.
const (
	maxFunctionLines      = 50
	maxFunctionComplexity = 10
	maxFunctionParams     = 5
)

// Score thresholds for bucketing files by refactor priority.
const (
	highScoreCutoff      = 40.0
	highWithFlagCutoff   = 60.0
	mediumScoreCutoff    = 70.0
	targetCommentPercent = 20.0
)

// computeMaintainability calculates a file's maintainability score (0-100)
// as an explainable heuristic over complexity, comment density and average
// function length. Each penalty is capped so no single dimension dominates.
func computeMaintainability(complexity, codeLines, commentLines, functionCount int) float64 {
	complexityPenalty := math.Min(40, float64(complexity)*2)

	commentRatio := 0.0
	if codeLines+commentLines > 0 {
		commentRatio = float64(commentLines) / float64(codeLines+commentLines) * 100
	}
	commentPenalty := math.Max(0, targetCommentPercent-commentRatio)

	avgFuncLength := float64(codeLines) / math.Max(1, float64(functionCount))
	lengthPenalty := math.Min(20, avgFuncLength/5)

	score := 100 - complexityPenalty - commentPenalty - lengthPenalty
	return math.Max(0, math.Min(100, score))
}

// needsRefactor applies the per-function thresholds.
func needsRefactor(lines, complexity, paramCount int) bool {
	return lines > maxFunctionLines ||
		complexity > maxFunctionComplexity ||
		paramCount > maxFunctionParams
}

// refactorPriorityFor buckets a file by score and per-function flags.
func refactorPriorityFor(score float64, anyFunctionFlagged bool) schema.RefactorPriority {
	switch {
	case score < highScoreCutoff || (score < highWithFlagCutoff && anyFunctionFlagged):
		return schema.PriorityHigh
	case score < mediumScoreCutoff || anyFunctionFlagged:
		return schema.PriorityMedium
	default:
		return schema.PriorityLow
	}
}
