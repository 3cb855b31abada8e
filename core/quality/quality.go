package quality

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// topFunctionLimit bounds how many functions a file profile retains.
const topFunctionLimit = 5

// excludedDirNames is the fixed set of build, dependency and VCS directory
// names never descended into during directory analysis.
var excludedDirNames = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	".idea":        {},
	".vscode":      {},
	"node_modules": {},
	"vendor":       {},
	"venv":         {},
	"__pycache__":  {},
	"dist":         {},
	"build":        {},
	"target":       {},
}

// AnalyzeSource builds the quality profile of one source file. The second
// return is the count of functions crossing a refactor threshold, which
// includes functions beyond the retained top list. Parse failures are the
// only error; a tree with internal parse errors degrades to a warning.
func AnalyzeSource(path string, src []byte, parser contract.SyntaxParser) (*schema.FileQualityMetrics, int, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, 0, fmt.Errorf("parse failed: %w", err)
	}

	lines := splitLines(src)
	comments := commentRows(tree.Root)

	metrics := &schema.FileQualityMetrics{
		Path:       path,
		Language:   parser.Language(),
		TotalLines: len(lines),
	}

	// --- 1. Line classification ---
	for i, line := range lines {
		if _, isComment := comments[i]; isComment {
			metrics.CommentLines++
		} else if strings.TrimSpace(line) == "" {
			metrics.BlankLines++
		} else {
			metrics.CodeLines++
		}
	}

	// --- 2. Structural counts and per-function metrics ---
	var functions []schema.FunctionMetrics
	walkNodes(tree.Root, func(n *contract.SyntaxNode) bool {
		switch n.Type {
		case nodeClassDefinition:
			metrics.ClassCount++
		case nodeFunctionDefinition:
			functions = append(functions, buildFunctionMetrics(n))
		}
		return true
	})
	metrics.FunctionCount = len(functions)
	metrics.AggregateComplexity = 1 + countBranches(tree.Root)

	flagged := 0
	for _, fn := range functions {
		if fn.NeedsRefactor {
			flagged++
		}
	}
	metrics.TopFunctions = topFunctions(functions)

	// --- 3. Issue scanning ---
	metrics.SecurityIssues = scanSecurityIssues(lines, comments)
	metrics.TodoMarkers = scanTodoMarkers(lines)
	if tree.HasError {
		metrics.Warnings = append(metrics.Warnings, "syntax tree reported parse errors; metrics may be incomplete")
	}

	// --- 4. Derived score and priority ---
	metrics.MaintainabilityScore = computeMaintainability(
		metrics.AggregateComplexity, metrics.CodeLines, metrics.CommentLines, metrics.FunctionCount)
	metrics.RefactorPriority = refactorPriorityFor(metrics.MaintainabilityScore, flagged > 0)

	return metrics, flagged, nil
}

// buildFunctionMetrics derives the metrics of one function node.
func buildFunctionMetrics(fn *contract.SyntaxNode) schema.FunctionMetrics {
	lines := fn.EndRow - fn.StartRow + 1
	complexity := 1 + countBranches(fn)
	params := functionParamCount(fn)
	return schema.FunctionMetrics{
		Name:          functionName(fn),
		StartLine:     fn.StartRow + 1,
		EndLine:       fn.EndRow + 1,
		Lines:         lines,
		Complexity:    complexity,
		ParamCount:    params,
		NeedsRefactor: needsRefactor(lines, complexity, params),
	}
}

// topFunctions keeps the top functions by complexity*2+lines, descending,
// with start line as tiebreak for determinism.
func topFunctions(functions []schema.FunctionMetrics) []schema.FunctionMetrics {
	ranked := append([]schema.FunctionMetrics(nil), functions...)
	sort.SliceStable(ranked, func(i, j int) bool {
		wi := ranked[i].Complexity*2 + ranked[i].Lines
		wj := ranked[j].Complexity*2 + ranked[j].Lines
		if wi != wj {
			return wi > wj
		}
		return ranked[i].StartLine < ranked[j].StartLine
	})
	if len(ranked) > topFunctionLimit {
		ranked = ranked[:topFunctionLimit]
	}
	return ranked
}

// fileOutcome carries one candidate's result out of the worker pool.
type fileOutcome struct {
	metrics *schema.FileQualityMetrics
	flagged int
	failure *schema.FileError
}

// AnalyzeDirectory walks a source tree and aggregates per-file quality
// metrics. The walk is depth-bounded and skips hidden directories plus the
// fixed exclusion set; oversized or unsupported files become per-file
// errors, never a batch failure. Analysis runs across cfg.Workers
// goroutines and results are re-sorted by path.
func AnalyzeDirectory(ctx context.Context, cfg *contract.Config, resolver contract.ParserResolver) (*schema.DirectoryQualityResult, error) {
	root := cfg.TargetPath
	if root == "" {
		return nil, fmt.Errorf("quality analysis requires a target directory")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot stat target: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target %q is not a directory", root)
	}

	// --- 1. Candidate discovery ---
	candidates, err := discoverCandidates(root, cfg.MaxDepth)
	if err != nil {
		return nil, err
	}

	// --- 2. Parallel per-file analysis ---
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	pathCh := make(chan string, len(candidates))
	outcomeCh := make(chan fileOutcome, len(candidates))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for p := range pathCh {
				outcomeCh <- analyzeCandidate(root, p, cfg.Preferences.MaxFileSizeBytes, resolver)
			}
		})
	}
	for _, p := range candidates {
		pathCh <- p
	}
	close(pathCh)
	wg.Wait()
	close(outcomeCh)

	// --- 3. Deterministic assembly and aggregation ---
	result := &schema.DirectoryQualityResult{
		Summary: schema.QualitySummary{
			TotalFiles:      len(candidates),
			FilesByLanguage: make(map[schema.Language]int),
		},
	}
	var totalComplexity, totalFlagged int
	var totalMaintainability float64
	for outcome := range outcomeCh {
		if outcome.failure != nil {
			result.Errors = append(result.Errors, *outcome.failure)
			continue
		}
		m := outcome.metrics
		result.Files = append(result.Files, *m)
		result.Summary.AnalyzedFiles++
		result.Summary.TotalLines += m.TotalLines
		result.Summary.TotalFunctions += m.FunctionCount
		result.Summary.TotalClasses += m.ClassCount
		result.Summary.FilesByLanguage[m.Language]++
		totalComplexity += m.AggregateComplexity
		totalMaintainability += m.MaintainabilityScore
		totalFlagged += outcome.flagged
		if m.RefactorPriority == schema.PriorityHigh {
			result.Summary.HighPriorityFiles++
		}
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].Path < result.Errors[j].Path })

	if result.Summary.AnalyzedFiles > 0 {
		result.Summary.AvgComplexity = float64(totalComplexity) / float64(result.Summary.AnalyzedFiles)
		result.Summary.AvgMaintainability = totalMaintainability / float64(result.Summary.AnalyzedFiles)
	}
	result.Summary.FunctionsNeedingRefactor = totalFlagged

	return result, nil
}

// discoverCandidates lists the files under root eligible for analysis,
// honoring the depth bound and directory exclusions.
func discoverCandidates(root string, maxDepth int) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			name := d.Name()
			if _, excluded := excludedDirNames[name]; excluded {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if maxDepth > 0 && strings.Count(rel, "/")+1 >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		candidates = append(candidates, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk target: %w", err)
	}
	return candidates, nil
}

// analyzeCandidate runs one file through the analyzer, translating every
// failure mode into a per-file error.
func analyzeCandidate(root, p string, maxFileSize int64, resolver contract.ParserResolver) fileOutcome {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)

	parser, ok := resolver.ResolveParser(p)
	if !ok {
		return fileOutcome{failure: &schema.FileError{Path: rel, Message: "unsupported file type"}}
	}

	info, err := os.Stat(p)
	if err != nil {
		return fileOutcome{failure: &schema.FileError{Path: rel, Message: err.Error()}}
	}
	if maxFileSize > 0 && info.Size() > maxFileSize {
		return fileOutcome{failure: &schema.FileError{
			Path:    rel,
			Message: fmt.Sprintf("exceeds the maximum file size of %d bytes (got %d)", maxFileSize, info.Size()),
		}}
	}

	src, err := os.ReadFile(p)
	if err != nil {
		return fileOutcome{failure: &schema.FileError{Path: rel, Message: err.Error()}}
	}

	metrics, flagged, err := AnalyzeSource(rel, src, parser)
	if err != nil {
		return fileOutcome{failure: &schema.FileError{Path: rel, Message: err.Error()}}
	}
	return fileOutcome{metrics: metrics, flagged: flagged}
}

// RefactorCandidates returns the analyzed files sorted worst-first by
// maintainability score, truncated to limit.
func RefactorCandidates(result *schema.DirectoryQualityResult, limit int) []schema.FileQualityMetrics {
	candidates := append([]schema.FileQualityMetrics(nil), result.Files...)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].MaintainabilityScore != candidates[j].MaintainabilityScore {
			return candidates[i].MaintainabilityScore < candidates[j].MaintainabilityScore
		}
		return candidates[i].Path < candidates[j].Path
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// splitLines splits source bytes into lines without a trailing phantom
// line for newline-terminated files.
func splitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}
	lines := strings.Split(string(src), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
