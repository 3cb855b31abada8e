package quality

import (
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
)

// Node types forming the fixed classification sets. Parsers emit these
// generic types regardless of source language.
var (
	// branchNodeTypes are the decision points counted toward cyclomatic
	// complexity.
	branchNodeTypes = map[string]struct{}{
		"if_statement":           {},
		"elif_clause":            {},
		"else_clause":            {},
		"for_statement":          {},
		"while_statement":        {},
		"case_clause":            {},
		"catch_clause":           {},
		"conditional_expression": {},
	}

	// commentNodeTypes mark rows as comment lines.
	commentNodeTypes = map[string]struct{}{
		"comment":       {},
		"block_comment": {},
	}
)

// Structural node types emitted by the parsers.
const (
	nodeFunctionDefinition = "function_definition"
	nodeClassDefinition    = "class_definition"
	nodeIdentifier         = "identifier"
	nodeParameters         = "parameters"
	nodeParameter          = "parameter"
)

// walkNodes visits every node reachable from root in source order using an
// explicit stack, so adversarially deep trees cannot blow the call stack.
// Returning false from visit prunes the node's subtree.
func walkNodes(root *contract.SyntaxNode, visit func(*contract.SyntaxNode) bool) {
	if root == nil {
		return
	}
	stack := []*contract.SyntaxNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(node) {
			continue
		}
		// Children push in reverse so the leftmost pops first.
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// countBranches counts descendant branch nodes under root, root included.
func countBranches(root *contract.SyntaxNode) int {
	count := 0
	walkNodes(root, func(n *contract.SyntaxNode) bool {
		if _, ok := branchNodeTypes[n.Type]; ok {
			count++
		}
		return true
	})
	return count
}

// commentRows returns the set of 0-based rows covered by comment nodes.
func commentRows(root *contract.SyntaxNode) map[int]struct{} {
	rows := make(map[int]struct{})
	walkNodes(root, func(n *contract.SyntaxNode) bool {
		if _, ok := commentNodeTypes[n.Type]; ok {
			for row := n.StartRow; row <= n.EndRow; row++ {
				rows[row] = struct{}{}
			}
		}
		return true
	})
	return rows
}

// functionName extracts the name from the first identifier child, or
// "<anonymous>" when the function carries none.
func functionName(fn *contract.SyntaxNode) string {
	for _, child := range fn.Children {
		if child.Type == nodeIdentifier {
			return child.Text
		}
	}
	return "<anonymous>"
}

// functionParamCount counts the non-punctuation children of the
// parameter-list child.
func functionParamCount(fn *contract.SyntaxNode) int {
	for _, child := range fn.Children {
		if child.Type != nodeParameters {
			continue
		}
		count := 0
		for _, param := range child.Children {
			if param.Type == nodeParameter {
				count++
			}
		}
		return count
	}
	return 0
}
