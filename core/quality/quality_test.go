package quality

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/treeparse"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

const pythonSample = `#!/usr/bin/env python
"""Small sample module."""


def add(a, b):
    # sum two values
    return a + b


def classify(x):
    if x > 0:
        return 1
    elif x < 0:
        return -1
    else:
        return 0


class Calculator:
    def square(self, x):
        return x * x
`

// resolveParser fetches a parser for an extension, failing the test when missing.
func resolveParser(t *testing.T, path string) contract.SyntaxParser {
	t.Helper()
	parser, ok := treeparse.NewRegistry().ResolveParser(path)
	require.True(t, ok, "no parser for %s", path)
	return parser
}

func TestAnalyzeSourcePython(t *testing.T) {
	parser := resolveParser(t, "sample.py")
	metrics, flagged, err := AnalyzeSource("sample.py", []byte(pythonSample), parser)
	require.NoError(t, err)

	assert.Equal(t, schema.LangPython, metrics.Language)
	assert.Equal(t, 3, metrics.FunctionCount)
	assert.Equal(t, 1, metrics.ClassCount)
	// 1 + if + elif + else
	assert.Equal(t, 4, metrics.AggregateComplexity)
	assert.Equal(t, 3, metrics.CommentLines, "shebang, docstring and inline comment")
	assert.Equal(t, metrics.TotalLines, metrics.CodeLines+metrics.CommentLines+metrics.BlankLines)
	assert.Equal(t, 0, flagged)
	assert.Empty(t, metrics.Warnings)

	require.NotEmpty(t, metrics.TopFunctions)
	assert.Equal(t, "classify", metrics.TopFunctions[0].Name, "branchiest function ranks first")
	assert.Equal(t, 1, metrics.TopFunctions[0].ParamCount)
	assert.Equal(t, 4, metrics.TopFunctions[0].Complexity)

	assert.GreaterOrEqual(t, metrics.MaintainabilityScore, 0.0)
	assert.LessOrEqual(t, metrics.MaintainabilityScore, 100.0)
}

func TestAnalyzeSourceFlagsLongFunctions(t *testing.T) {
	src := "def long_one():\n"
	for range 60 {
		src += "    x = 1\n"
	}
	parser := resolveParser(t, "long.py")

	metrics, flagged, err := AnalyzeSource("long.py", []byte(src), parser)
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
	require.Len(t, metrics.TopFunctions, 1)
	assert.True(t, metrics.TopFunctions[0].NeedsRefactor)
}

func TestAnalyzeSourceGo(t *testing.T) {
	src := `package sample

// Greet says hello.
func Greet(name string) string {
	if name == "" {
		name = "world"
	}
	return "hello " + name
}
`
	parser := resolveParser(t, "sample.go")
	metrics, _, err := AnalyzeSource("sample.go", []byte(src), parser)
	require.NoError(t, err)

	assert.Equal(t, schema.LangGo, metrics.Language)
	assert.Equal(t, 1, metrics.FunctionCount)
	assert.Equal(t, 2, metrics.AggregateComplexity)
	require.Len(t, metrics.TopFunctions, 1)
	assert.Equal(t, "Greet", metrics.TopFunctions[0].Name)
}

func TestTopFunctionsLimit(t *testing.T) {
	var functions []schema.FunctionMetrics
	for i := range 8 {
		functions = append(functions, schema.FunctionMetrics{
			Name:       string(rune('a' + i)),
			StartLine:  i + 1,
			Lines:      10 + i,
			Complexity: 1,
		})
	}

	top := topFunctions(functions)
	require.Len(t, top, topFunctionLimit)
	// Heaviest function (most lines) first
	assert.Equal(t, "h", top[0].Name)
}

func TestWalkNodesPruning(t *testing.T) {
	root := &contract.SyntaxNode{Type: "module", Children: []*contract.SyntaxNode{
		{Type: "function_definition", Children: []*contract.SyntaxNode{
			{Type: "if_statement"},
		}},
		{Type: "if_statement"},
	}}

	var visited []string
	walkNodes(root, func(n *contract.SyntaxNode) bool {
		visited = append(visited, n.Type)
		return n.Type != "function_definition" // Prune the function subtree
	})
	assert.Equal(t, []string{"module", "function_definition", "if_statement"}, visited)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(nil))
	assert.Equal(t, []string{"a", "b"}, splitLines([]byte("a\nb")))
	assert.Equal(t, []string{"a", "b"}, splitLines([]byte("a\nb\n")))
	assert.Equal(t, []string{"a", "", "b"}, splitLines([]byte("a\n\nb\n")))
}

func TestAnalyzeDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "dep"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), []byte(pythonSample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "util.go"), []byte("package pkg\n\nfunc Noop() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.csv"), []byte("a,b\n1,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "dep", "index.js"), []byte("module.exports = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "config"), []byte("[core]\n"), 0o644))

	cfg := &contract.Config{
		TargetPath: root,
		Workers:    2,
		MaxDepth:   contract.DefaultMaxDepth,
	}
	result, err := AnalyzeDirectory(context.Background(), cfg, treeparse.NewRegistry())
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "main.py", result.Files[0].Path)
	assert.Equal(t, "pkg/util.go", result.Files[1].Path)

	// The CSV is a candidate that fails with an unsupported-type error;
	// excluded directories never become candidates at all.
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "data.csv", result.Errors[0].Path)
	assert.Equal(t, "unsupported file type", result.Errors[0].Message)

	assert.Equal(t, 3, result.Summary.TotalFiles)
	assert.Equal(t, 2, result.Summary.AnalyzedFiles)
	assert.Equal(t, 1, result.Summary.FilesByLanguage[schema.LangPython])
	assert.Equal(t, 1, result.Summary.FilesByLanguage[schema.LangGo])
	assert.Positive(t, result.Summary.AvgMaintainability)
}

func TestAnalyzeDirectoryOversizedFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.py"), []byte(pythonSample), 0o644))

	cfg := &contract.Config{
		TargetPath: root,
		Workers:    1,
		MaxDepth:   contract.DefaultMaxDepth,
	}
	cfg.Preferences.MaxFileSizeBytes = 10

	result, err := AnalyzeDirectory(context.Background(), cfg, treeparse.NewRegistry())
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "maximum file size")
}

func TestAnalyzeDirectoryInvalidTarget(t *testing.T) {
	cfg := &contract.Config{TargetPath: filepath.Join(t.TempDir(), "missing"), Workers: 1}
	_, err := AnalyzeDirectory(context.Background(), cfg, treeparse.NewRegistry())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg = &contract.Config{TargetPath: file, Workers: 1}
	_, err = AnalyzeDirectory(context.Background(), cfg, treeparse.NewRegistry())
	assert.Error(t, err)
}

func TestRefactorCandidates(t *testing.T) {
	result := &schema.DirectoryQualityResult{Files: []schema.FileQualityMetrics{
		{Path: "good.py", MaintainabilityScore: 90},
		{Path: "bad.py", MaintainabilityScore: 30},
		{Path: "mid.py", MaintainabilityScore: 60},
	}}

	candidates := RefactorCandidates(result, 2)
	require.Len(t, candidates, 2)
	assert.Equal(t, "bad.py", candidates[0].Path)
	assert.Equal(t, "mid.py", candidates[1].Path)
}
