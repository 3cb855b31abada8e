package treeparse

import (
	"strings"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// rubyParser approximates a Ruby syntax tree from def/end keyword pairs.
// def, class and module open frames closed by end; the other end-terminated
// keywords (if, case, while, do blocks) push anonymous frames so the pairing
// stays balanced.
type rubyParser struct{}

// Compile-time check.
var _ contract.SyntaxParser = &rubyParser{}

// Language implements contract.SyntaxParser.
func (p *rubyParser) Language() schema.Language { return schema.LangRuby }

// rubyFrame is one open end-terminated block. node is nil for blocks that
// produce no tree node of their own.
type rubyFrame struct {
	node *contract.SyntaxNode
}

// Parse implements contract.SyntaxParser.
func (p *rubyParser) Parse(src []byte) (*contract.SyntaxTree, error) {
	lines := splitLines(src)
	root := &contract.SyntaxNode{Type: "module", StartRow: 0, EndRow: max(0, len(lines)-1)}
	tree := &contract.SyntaxTree{Root: root}

	stack := []rubyFrame{{node: root}}
	lastContent := 0

	inBlockComment := false
	blockStart := 0

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if inBlockComment {
			lastContent = i
			if strings.HasPrefix(trimmed, "=end") {
				doc := &contract.SyntaxNode{Type: "block_comment", StartRow: blockStart, EndRow: i}
				attach(stack[len(stack)-1].node, doc)
				inBlockComment = false
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		parent := stack[len(stack)-1].node
		lastContent = i

		if strings.HasPrefix(trimmed, "#") {
			attach(parent, lineNode("comment", i))
			continue
		}
		if strings.HasPrefix(trimmed, "=begin") {
			inBlockComment = true
			blockStart = i
			continue
		}

		code := strings.TrimSpace(rubyStrip(trimmed))
		if code == "" {
			continue
		}

		switch rubyLeadingWord(code) {
		case "def":
			fn, opens := rubyFunctionNode(code, i)
			attach(parent, fn)
			if opens {
				stack = append(stack, rubyFrame{node: fn})
			}

		case "class", "module":
			cls := rubyClassNode(code, i)
			attach(parent, cls)
			stack = append(stack, rubyFrame{node: cls})

		case "if", "unless":
			attach(parent, lineNode("if_statement", i))
			stack = append(stack, rubyFrame{})

		case "elsif":
			attach(parent, lineNode("elif_clause", i))

		case "else":
			attach(parent, lineNode("else_clause", i))

		case "when", "in":
			attach(parent, lineNode("case_clause", i))

		case "while", "until":
			attach(parent, lineNode("while_statement", i))
			stack = append(stack, rubyFrame{})

		case "for":
			attach(parent, lineNode("for_statement", i))
			stack = append(stack, rubyFrame{})

		case "case", "begin":
			stack = append(stack, rubyFrame{})

		case "rescue":
			attach(parent, lineNode("catch_clause", i))

		case "end":
			if len(stack) == 1 {
				tree.HasError = true
				break
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if frame.node != nil {
				frame.node.EndRow = i
			}

		default:
			if rubyOpensDoBlock(code) {
				stack = append(stack, rubyFrame{})
			} else if isClikeTernary(code) {
				attach(parent, lineNode("conditional_expression", i))
			}
		}
	}

	if inBlockComment {
		tree.HasError = true
		doc := &contract.SyntaxNode{Type: "block_comment", StartRow: blockStart, EndRow: max(0, len(lines)-1)}
		attach(stack[len(stack)-1].node, doc)
	}
	if len(stack) > 1 {
		tree.HasError = true
	}
	for len(stack) > 1 {
		if node := stack[len(stack)-1].node; node != nil {
			node.EndRow = lastContent
		}
		stack = stack[:len(stack)-1]
	}
	if len(lines) > 0 {
		root.EndRow = len(lines) - 1
	}
	return tree, nil
}

// rubyFunctionNode builds a function_definition node from a def line. The
// second return is false for endless definitions, which have no end keyword.
func rubyFunctionNode(code string, row int) (*contract.SyntaxNode, bool) {
	fn := &contract.SyntaxNode{Type: "function_definition", StartRow: row, EndRow: row}

	rest := strings.TrimSpace(strings.TrimPrefix(code, "def"))
	rest = strings.TrimPrefix(rest, "self.")
	name := rest
	var rawParams, tail string
	if open := strings.IndexByte(rest, '('); open >= 0 {
		name = strings.TrimSpace(rest[:open])
		rawParams = rest[open+1:]
		if end := strings.IndexByte(rawParams, ')'); end >= 0 {
			tail = strings.TrimSpace(rawParams[end+1:])
			rawParams = rawParams[:end]
		}
	} else if sp := strings.IndexAny(rest, " \t"); sp >= 0 {
		name = rest[:sp]
		tail = strings.TrimSpace(rest[sp:])
		if !strings.HasPrefix(tail, "=") {
			// Parenthesis-free parameter list: def greet name, greeting
			rawParams = tail
			tail = ""
		}
	}

	ident := lineNode("identifier", row)
	ident.Text = name
	attach(fn, ident)
	attach(fn, parameterListNode(row, splitParams(rawParams)))

	opens := !strings.HasPrefix(tail, "=") || strings.HasPrefix(tail, "==")
	return fn, opens
}

// rubyClassNode builds a class_definition node from a class or module line.
func rubyClassNode(code string, row int) *contract.SyntaxNode {
	cls := &contract.SyntaxNode{Type: "class_definition", StartRow: row, EndRow: row}
	name := code
	if sp := strings.IndexAny(name, " \t"); sp >= 0 {
		name = strings.TrimSpace(name[sp:])
	}
	if idx := strings.IndexAny(name, " <;("); idx >= 0 {
		name = name[:idx]
	}
	ident := lineNode("identifier", row)
	ident.Text = name
	attach(cls, ident)
	return cls
}

// rubyLeadingWord returns the first word of a code line.
func rubyLeadingWord(code string) string {
	if idx := strings.IndexAny(code, " \t("); idx >= 0 {
		return code[:idx]
	}
	return code
}

// rubyOpensDoBlock reports whether a line opens an end-terminated do block,
// as in list.each do |item|.
func rubyOpensDoBlock(code string) bool {
	return code == "do" || strings.HasSuffix(code, " do") || strings.Contains(code, " do |")
}

// rubyStrip removes string literals and trailing comments so the keyword
// heuristics never fire inside quoted text.
func rubyStrip(line string) string {
	var b strings.Builder
	var quote byte
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case quote:
				quote = 0
				b.WriteByte(c)
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
			b.WriteByte(c)
		case '#':
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
