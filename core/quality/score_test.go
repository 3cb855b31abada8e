package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

func TestComputeMaintainability(t *testing.T) {
	tests := []struct {
		name          string
		complexity    int
		codeLines     int
		commentLines  int
		functionCount int
		expected      float64
	}{
		{
			// 100 - 2 (complexity) - 0 (25% comments) - 3 (15/1/5 length)
			name:       "well commented small file",
			complexity: 1, codeLines: 15, commentLines: 5, functionCount: 1,
			expected: 95,
		},
		{
			// 100 - 2 - 20 (no comments) - 2
			name:       "no comments",
			complexity: 1, codeLines: 10, commentLines: 0, functionCount: 1,
			expected: 76,
		},
		{
			// Complexity penalty caps at 40
			name:       "extreme complexity caps",
			complexity: 100, codeLines: 100, commentLines: 100, functionCount: 10,
			expected: 58,
		},
		{
			name:       "empty file floors at zero penalty input",
			complexity: 0, codeLines: 0, commentLines: 0, functionCount: 0,
			expected: 80, // 100 - 0 - 20 (no comments) - 0
		},
		{
			// All penalties maxed: 100 - 40 - 20 - 20 = 20
			name:       "all penalties maxed",
			complexity: 50, codeLines: 1000, commentLines: 0, functionCount: 1,
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := computeMaintainability(tt.complexity, tt.codeLines, tt.commentLines, tt.functionCount)
			assert.InDelta(t, tt.expected, score, 0.001)
		})
	}
}

func TestComputeMaintainabilityBounds(t *testing.T) {
	cases := [][4]int{
		{0, 0, 0, 0},
		{1000, 0, 0, 0},
		{0, 1 << 20, 0, 1},
		{40, 500, 0, 1},
	}
	for _, c := range cases {
		score := computeMaintainability(c[0], c[1], c[2], c[3])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestNeedsRefactor(t *testing.T) {
	tests := []struct {
		name     string
		lines    int
		cmplx    int
		params   int
		expected bool
	}{
		{"all under thresholds", 50, 10, 5, false},
		{"too many lines", 51, 1, 1, true},
		{"too complex", 10, 11, 1, true},
		{"too many params", 10, 1, 6, true},
		{"tiny function", 3, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, needsRefactor(tt.lines, tt.cmplx, tt.params))
		})
	}
}

func TestRefactorPriorityFor(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		flagged  bool
		expected schema.RefactorPriority
	}{
		{"very low score", 30, false, schema.PriorityHigh},
		{"low score with flags", 55, true, schema.PriorityHigh},
		{"mid score without flags", 55, false, schema.PriorityMedium},
		{"good score with flags", 85, true, schema.PriorityMedium},
		{"boundary below medium", 69.9, false, schema.PriorityMedium},
		{"clean file", 90, false, schema.PriorityLow},
		{"exactly at medium cutoff", 70, false, schema.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, refactorPriorityFor(tt.score, tt.flagged))
		})
	}
}
