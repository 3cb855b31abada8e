package treeparse

import (
	"strings"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// pythonParser approximates a Python syntax tree from indentation. Blocks
// nest by leading whitespace; def and class open frames, branch keywords
// become branch nodes attached to the innermost frame.
type pythonParser struct{}

// Compile-time check.
var _ contract.SyntaxParser = &pythonParser{}

// Language implements contract.SyntaxParser.
func (p *pythonParser) Language() schema.Language { return schema.LangPython }

// pyFrame is one open indentation block.
type pyFrame struct {
	indent int
	node   *contract.SyntaxNode
}

// Parse implements contract.SyntaxParser.
func (p *pythonParser) Parse(src []byte) (*contract.SyntaxTree, error) {
	lines := splitLines(src)
	root := &contract.SyntaxNode{Type: "module", StartRow: 0, EndRow: max(0, len(lines)-1)}
	tree := &contract.SyntaxTree{Root: root}

	stack := []pyFrame{{indent: -1, node: root}}
	lastContent := 0

	inDocstring := false
	var docDelim string
	var docStart int

	for i, raw := range lines {
		if inDocstring {
			lastContent = i
			if strings.Contains(raw, docDelim) {
				doc := &contract.SyntaxNode{Type: "block_comment", StartRow: docStart, EndRow: i}
				attach(stack[len(stack)-1].node, doc)
				inDocstring = false
			}
			continue
		}

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		indent := leadingIndent(raw)

		// Close every frame the dedent leaves behind.
		for len(stack) > 1 && indent <= stack[len(stack)-1].indent {
			stack[len(stack)-1].node.EndRow = lastContent
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		lastContent = i

		switch {
		case strings.HasPrefix(trimmed, "#"):
			attach(parent, lineNode("comment", i))

		case strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''"):
			delim := trimmed[:3]
			if len(trimmed) >= 6 && strings.Contains(trimmed[3:], delim) {
				attach(parent, lineNode("block_comment", i))
			} else {
				inDocstring = true
				docDelim = delim
				docStart = i
			}

		case strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "async def "):
			fn := p.functionNode(trimmed, i, tree)
			attach(parent, fn)
			stack = append(stack, pyFrame{indent: indent, node: fn})

		case strings.HasPrefix(trimmed, "class "):
			cls := &contract.SyntaxNode{Type: "class_definition", StartRow: i, EndRow: i}
			name := strings.TrimPrefix(trimmed, "class ")
			name = strings.TrimRight(strings.SplitN(name, "(", 2)[0], ": \t")
			ident := lineNode("identifier", i)
			ident.Text = name
			attach(cls, ident)
			attach(parent, cls)
			stack = append(stack, pyFrame{indent: indent, node: cls})

		default:
			if branch := pythonBranchType(trimmed); branch != "" {
				attach(parent, lineNode(branch, i))
			} else if isPythonTernary(trimmed) {
				attach(parent, lineNode("conditional_expression", i))
			}
		}
	}

	if inDocstring {
		tree.HasError = true
		doc := &contract.SyntaxNode{Type: "block_comment", StartRow: docStart, EndRow: max(0, len(lines)-1)}
		attach(stack[len(stack)-1].node, doc)
	}
	for len(stack) > 1 {
		stack[len(stack)-1].node.EndRow = lastContent
		stack = stack[:len(stack)-1]
	}
	if len(lines) > 0 {
		root.EndRow = len(lines) - 1
	}
	return tree, nil
}

// functionNode builds a function_definition node from a def line.
func (p *pythonParser) functionNode(trimmed string, row int, tree *contract.SyntaxTree) *contract.SyntaxNode {
	fn := &contract.SyntaxNode{Type: "function_definition", StartRow: row, EndRow: row}

	rest := strings.TrimPrefix(trimmed, "async ")
	rest = strings.TrimPrefix(rest, "def ")
	nameEnd := strings.IndexByte(rest, '(')
	if nameEnd < 0 {
		tree.HasError = true
		nameEnd = len(rest)
	}
	ident := lineNode("identifier", row)
	ident.Text = strings.TrimSpace(rest[:nameEnd])
	attach(fn, ident)

	var rawParams string
	if nameEnd < len(rest) {
		rawParams = rest[nameEnd+1:]
		if end := strings.LastIndexByte(rawParams, ')'); end >= 0 {
			rawParams = rawParams[:end]
		} else {
			// Multi-line signature; only the first line's parameters count.
			tree.HasError = true
		}
	}
	attach(fn, parameterListNode(row, splitParams(rawParams)))
	return fn
}

// pythonBranchType classifies a statement-leading branch keyword.
func pythonBranchType(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "if ") || strings.HasPrefix(trimmed, "if("):
		return "if_statement"
	case strings.HasPrefix(trimmed, "elif ") || strings.HasPrefix(trimmed, "elif("):
		return "elif_clause"
	case trimmed == "else:" || strings.HasPrefix(trimmed, "else:") || strings.HasPrefix(trimmed, "else :"):
		return "else_clause"
	case strings.HasPrefix(trimmed, "for "):
		return "for_statement"
	case strings.HasPrefix(trimmed, "while ") || strings.HasPrefix(trimmed, "while("):
		return "while_statement"
	case strings.HasPrefix(trimmed, "except"):
		return "catch_clause"
	case strings.HasPrefix(trimmed, "case "):
		return "case_clause"
	default:
		return ""
	}
}

// isPythonTernary detects an inline conditional expression on a line that
// is not itself a branch statement.
func isPythonTernary(trimmed string) bool {
	ifIdx := strings.Index(trimmed, " if ")
	if ifIdx < 0 {
		return false
	}
	return strings.Contains(trimmed[ifIdx:], " else ")
}

// leadingIndent measures leading whitespace with tabs expanded to 4.
func leadingIndent(line string) int {
	indent := 0
	for _, r := range line {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 4
		default:
			return indent
		}
	}
	return indent
}
